package controllers

import (
	"net/http"

	"github.com/angelmondragon/beanwagon-backend/api/responses"
	"github.com/angelmondragon/beanwagon-backend/api/validators"
	"github.com/angelmondragon/beanwagon-backend/internal/records"
	"github.com/angelmondragon/beanwagon-backend/internal/storage"
	pkgerrors "github.com/angelmondragon/beanwagon-backend/pkg/errors"
	"github.com/angelmondragon/beanwagon-backend/pkg/logger"
)

func GetSettings(store *storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		settings := store.Settings(ctx)
		if settings == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "settings not initialized"))
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

type saveSettingsRequest struct {
	UserPreferences records.UserPreferences `json:"userPreferences"`
	CartConfig      records.CartConfig      `json:"cartConfig" validate:"required"`
}

// SaveSettings updates preferences and cart config. Schema version and
// migration history are owned by the storage core and cannot be set over
// the API.
func SaveSettings(store *storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req saveSettingsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		settings := store.Settings(ctx)
		if settings == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "settings not initialized"))
			return
		}
		settings.UserPreferences = req.UserPreferences
		settings.CartConfig = req.CartConfig
		store.SaveSettings(ctx, *settings)
		responses.WriteSuccess(w, store.Settings(ctx))
	}
}

func GetScalarSetting(store *storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		value, ok, err := store.Setting(ctx, storage.ScalarPrinterAddress)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "printer address not set"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"printerAddress": value})
	}
}

type scalarSettingRequest struct {
	PrinterAddress string `json:"printerAddress" validate:"required,max=128"`
}

// PutScalarSetting writes the printer address. This path surfaces store
// failures to the admin instead of swallowing them.
func PutScalarSetting(store *storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req scalarSettingRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := store.SetSetting(ctx, storage.ScalarPrinterAddress, req.PrinterAddress); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"printerAddress": req.PrinterAddress})
	}
}
