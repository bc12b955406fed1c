package controllers

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/beanwagon-backend/api/responses"
	"github.com/angelmondragon/beanwagon-backend/api/validators"
	"github.com/angelmondragon/beanwagon-backend/internal/orders"
	"github.com/angelmondragon/beanwagon-backend/internal/records"
	pkgerrors "github.com/angelmondragon/beanwagon-backend/pkg/errors"
	"github.com/angelmondragon/beanwagon-backend/pkg/logger"
	"github.com/angelmondragon/beanwagon-backend/pkg/pagination"
)

type checkoutRequest struct {
	CustomerName  string                `json:"customerName" validate:"required"`
	CustomerPhone string                `json:"customerPhone"`
	Notes         string                `json:"notes"`
	Items         []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

type checkoutItemRequest struct {
	DrinkID           string   `json:"drinkId" validate:"required"`
	Quantity          int      `json:"quantity" validate:"gte=1"`
	SelectedOptionIDs []string `json:"selectedOptionIds"`
}

func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := orders.CheckoutInput{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Notes:         req.Notes,
		}
		for _, item := range req.Items {
			input.Items = append(input.Items, orders.CheckoutItem{
				DrinkID:           item.DrinkID,
				Quantity:          item.Quantity,
				SelectedOptionIDs: item.SelectedOptionIDs,
			})
		}

		order, err := svc.Checkout(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

type orderListResponse struct {
	Orders     []records.Order `json:"orders"`
	NextCursor string          `json:"nextCursor,omitempty"`
}

// ListOrders returns orders newest-first with cursor pagination. The barista
// screen polls this, so pages keep payloads bounded even on a busy day.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params := pagination.FromQuery(r.URL.Query())
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}

		all := svc.List(ctx)
		sort.Slice(all, func(i, j int) bool {
			if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].CreatedAt.After(all[j].CreatedAt)
			}
			return all[i].ID < all[j].ID
		})

		limit := pagination.NormalizeLimit(params.Limit)
		page := orderListResponse{Orders: []records.Order{}}
		for i := range all {
			if !cursor.After(all[i].CreatedAt, all[i].ID) {
				continue
			}
			if len(page.Orders) == limit {
				last := page.Orders[limit-1]
				page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
					CreatedAt: last.CreatedAt,
					ID:        last.ID,
				})
				break
			}
			page.Orders = append(page.Orders, all[i])
		}
		responses.WriteSuccess(w, page)
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func UpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req orderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		status, err := records.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
			return
		}

		order, updateErr := svc.UpdateStatus(ctx, chi.URLParam(r, "orderID"), status)
		if updateErr != nil {
			responses.WriteError(ctx, logg, w, updateErr)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
