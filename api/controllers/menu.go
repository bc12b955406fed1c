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

// ListMenu returns the customer-facing menu: visible items only. Admin
// screens pass ?all=true to include hidden items.
func ListMenu(store *storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := store.MenuItems(r.Context())
		if r.URL.Query().Get("all") == "true" {
			responses.WriteSuccess(w, items)
			return
		}
		visible := make([]records.MenuItem, 0, len(items))
		for _, item := range items {
			if item.Visible() {
				visible = append(visible, item)
			}
		}
		responses.WriteSuccess(w, visible)
	}
}

type menuFlagsRequest struct {
	IsAvailable *bool `json:"isAvailable"`
	IsVisible   *bool `json:"isVisible"`
}

// UpdateMenuFlags toggles the stock and seasonal-display flags on one drink.
// The two flags have independent lifecycles, so either may arrive alone.
func UpdateMenuFlags(store *storage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req menuFlagsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if req.IsAvailable == nil && req.IsVisible == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "at least one of isAvailable, isVisible required"))
			return
		}

		drinkID := chi.URLParam(r, "drinkID")
		items := store.MenuItems(ctx)
		for i := range items {
			if items[i].ID != drinkID {
				continue
			}
			if req.IsAvailable != nil {
				items[i].IsAvailable = *req.IsAvailable
			}
			if req.IsVisible != nil {
				items[i].IsVisible = req.IsVisible
			}
			store.SaveMenuItems(ctx, items)
			responses.WriteSuccess(w, items[i])
			return
		}
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "drink not found"))
	}
}
