package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/beanwagon-backend/api/responses"
	"github.com/angelmondragon/beanwagon-backend/api/validators"
	"github.com/angelmondragon/beanwagon-backend/internal/records"
	"github.com/angelmondragon/beanwagon-backend/internal/storage"
	pkgerrors "github.com/angelmondragon/beanwagon-backend/pkg/errors"
	"github.com/angelmondragon/beanwagon-backend/pkg/logger"
)

func ListSyrups(store *storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Syrups(r.Context()))
	}
}

type addSyrupRequest struct {
	Name   string `json:"name" validate:"required,max=64"`
	Status string `json:"status" validate:"omitempty,oneof=available soldOut"`
}

// AddSyrup creates a flavor additive. A duplicate name (case-insensitive)
// comes back as a 409 the admin screen can show directly.
func AddSyrup(store *storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req addSyrupRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		status := records.SyrupStatusAvailable
		if req.Status != "" {
			parsed, err := records.ParseSyrupStatus(req.Status)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid syrup status"))
				return
			}
			status = parsed
		}

		syrup, err := store.AddSyrup(ctx, req.Name, status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, syrup)
	}
}

type syrupStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available soldOut"`
}

func UpdateSyrupStatus(store *storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req syrupStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		status, err := records.ParseSyrupStatus(req.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid syrup status"))
			return
		}

		store.UpdateSyrupStatus(ctx, chi.URLParam(r, "syrupID"), status)
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

func DeleteSyrup(store *storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.DeleteSyrup(r.Context(), chi.URLParam(r, "syrupID"))
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
