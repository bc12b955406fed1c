// Package orders implements checkout and status transitions on top of the
// record store. It holds no state of its own; the store's collection is the
// source of truth and saves are last-writer-wins at collection granularity.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/beanwagon-backend/internal/records"
	"github.com/angelmondragon/beanwagon-backend/internal/storage"
	pkgerrors "github.com/angelmondragon/beanwagon-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service defines order operations exposed to the app shell.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*records.Order, error)
	UpdateStatus(ctx context.Context, orderID string, next records.OrderStatus) (*records.Order, error)
	List(ctx context.Context) []records.Order
}

type service struct {
	store *storage.Service
}

// CheckoutInput is everything the cart screen submits.
type CheckoutInput struct {
	CustomerName  string
	CustomerPhone string
	Notes         string
	Items         []CheckoutItem
}

// CheckoutItem references a drink plus the selected option ids.
type CheckoutItem struct {
	DrinkID           string
	Quantity          int
	SelectedOptionIDs []string
}

// NewService builds the order service.
func NewService(store *storage.Service) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("record store required")
	}
	return &service{store: store}, nil
}

// Checkout creates a pending order. Line names and totals are resolved
// server-side from the menu so an edited menu never corrupts history.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*records.Order, error) {
	if input.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	settings := s.store.Settings(ctx)
	if settings != nil && settings.CartConfig.MaxItemsPerOrder > 0 && len(input.Items) > settings.CartConfig.MaxItemsPerOrder {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("orders are limited to %d items", settings.CartConfig.MaxItemsPerOrder))
	}
	if settings != nil && !settings.CartConfig.AllowNotes {
		input.Notes = ""
	}

	menu := make(map[string]records.MenuItem)
	for _, item := range s.store.MenuItems(ctx) {
		menu[item.ID] = item
	}

	now := time.Now().UTC()
	var total int64
	lines := make([]records.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		drink, ok := menu[line.DrinkID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown drink").
				WithDetails(map[string]string{"drinkId": line.DrinkID})
		}
		if !drink.IsAvailable || !drink.Visible() {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "drink is not available").
				WithDetails(map[string]string{"drinkId": line.DrinkID})
		}
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		lineTotal, err := priceLine(drink, line)
		if err != nil {
			return nil, err
		}
		total += lineTotal
		lines = append(lines, records.OrderItem{
			DrinkID:           drink.ID,
			Name:              drink.Name,
			Quantity:          line.Quantity,
			SelectedOptionIDs: append([]string{}, line.SelectedOptionIDs...),
			LineTotal:         lineTotal,
		})
	}

	order := records.Order{
		ID:            uuid.NewString(),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Items:         lines,
		TotalAmount:   total,
		Status:        records.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
		Notes:         input.Notes,
	}
	if settings != nil && settings.CartConfig.PickupLeadMinutes > 0 {
		eta := now.Add(time.Duration(settings.CartConfig.PickupLeadMinutes) * time.Minute)
		order.EstimatedCompletionTime = &eta
	}

	s.store.SaveOrders(ctx, append(s.store.Orders(ctx), order))
	return &order, nil
}

func priceLine(drink records.MenuItem, line CheckoutItem) (int64, error) {
	options := make(map[string]records.DrinkOption, len(drink.Options))
	for _, option := range drink.Options {
		options[option.ID] = option
	}
	perUnit := drink.BasePrice
	for _, optionID := range line.SelectedOptionIDs {
		option, ok := options[optionID]
		if !ok {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown option for drink").
				WithDetails(map[string]string{"drinkId": drink.ID, "optionId": optionID})
		}
		if !option.IsAvailable {
			return 0, pkgerrors.New(pkgerrors.CodeStateConflict, "option is not available").
				WithDetails(map[string]string{"optionId": optionID})
		}
		perUnit += option.AdditionalCost
	}
	return perUnit * int64(line.Quantity), nil
}

// UpdateStatus moves an order along pending -> in-progress -> ready ->
// completed, or cancels a non-terminal order.
func (s *service) UpdateStatus(ctx context.Context, orderID string, next records.OrderStatus) (*records.Order, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	all := s.store.Orders(ctx)
	for i := range all {
		if all[i].ID != orderID {
			continue
		}
		if !all[i].Status.CanTransitionTo(next) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
				WithDetails(map[string]string{
					"from": string(all[i].Status),
					"to":   string(next),
				})
		}
		all[i].Status = next
		all[i].UpdatedAt = time.Now().UTC()
		s.store.SaveOrders(ctx, all)
		updated := all[i]
		return &updated, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

// List returns all stored orders, oldest first.
func (s *service) List(ctx context.Context) []records.Order {
	return s.store.Orders(ctx)
}
