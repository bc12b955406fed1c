package orders

import (
	"context"
	"io"
	"testing"

	"github.com/angelmondragon/beanwagon-backend/internal/records"
	"github.com/angelmondragon/beanwagon-backend/internal/storage"
	"github.com/angelmondragon/beanwagon-backend/internal/validate"
	pkgerrors "github.com/angelmondragon/beanwagon-backend/pkg/errors"
	"github.com/angelmondragon/beanwagon-backend/pkg/kv"
	"github.com/angelmondragon/beanwagon-backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newTestOrders(t *testing.T) (Service, *storage.Service) {
	t.Helper()
	store := kv.NewMemory()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := storage.NewService(store, storage.NewKeys("bw"), logg, nil, validate.New())
	require.NoError(t, err)
	svc.SeedInitialData(context.Background())
	orderSvc, err := NewService(svc)
	require.NoError(t, err)
	return orderSvc, svc
}

func TestCheckoutHappyPath(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestOrders(t)

	order, err := svc.Checkout(ctx, CheckoutInput{
		CustomerName: "Rosa",
		Items: []CheckoutItem{
			{DrinkID: "latte", Quantity: 2, SelectedOptionIDs: []string{"size-large", "milk-oat"}},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, records.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	require.Equal(t, "Latte", order.Items[0].Name)
	require.Zero(t, order.TotalAmount, "seed menu is free")
	require.NotNil(t, order.EstimatedCompletionTime, "eta derives from cart config lead time")

	stored := store.Orders(ctx)
	require.Len(t, stored, 1)
	require.Equal(t, order.ID, stored[0].ID)
}

func TestCheckoutRejectsEmptyOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestOrders(t)

	_, err := svc.Checkout(ctx, CheckoutInput{CustomerName: "Rosa"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCheckoutRejectsUnknownDrinkAndOption(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestOrders(t)

	_, err := svc.Checkout(ctx, CheckoutInput{
		CustomerName: "Rosa",
		Items:        []CheckoutItem{{DrinkID: "mystery", Quantity: 1}},
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.Checkout(ctx, CheckoutInput{
		CustomerName: "Rosa",
		Items:        []CheckoutItem{{DrinkID: "latte", Quantity: 1, SelectedOptionIDs: []string{"milk-unicorn"}}},
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCheckoutRejectsUnavailableDrink(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestOrders(t)

	menu := store.MenuItems(ctx)
	for i := range menu {
		if menu[i].ID == "latte" {
			menu[i].IsAvailable = false
		}
	}
	store.SaveMenuItems(ctx, menu)

	_, err := svc.Checkout(ctx, CheckoutInput{
		CustomerName: "Rosa",
		Items:        []CheckoutItem{{DrinkID: "latte", Quantity: 1}},
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
}

func TestCheckoutEnforcesMaxItems(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestOrders(t)

	settings := store.Settings(ctx)
	settings.CartConfig.MaxItemsPerOrder = 1
	store.SaveSettings(ctx, *settings)

	_, err := svc.Checkout(ctx, CheckoutInput{
		CustomerName: "Rosa",
		Items: []CheckoutItem{
			{DrinkID: "latte", Quantity: 1},
			{DrinkID: "drip", Quantity: 1},
		},
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateStatusWalksTransitions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestOrders(t)

	order, err := svc.Checkout(ctx, CheckoutInput{
		CustomerName: "Rosa",
		Items:        []CheckoutItem{{DrinkID: "drip", Quantity: 1}},
	})
	require.NoError(t, err)

	for _, next := range []records.OrderStatus{
		records.OrderStatusInProgress,
		records.OrderStatusReady,
		records.OrderStatusCompleted,
	} {
		updated, err := svc.UpdateStatus(ctx, order.ID, next)
		require.NoError(t, err)
		require.Equal(t, next, updated.Status)
	}

	// Completed is terminal.
	_, err = svc.UpdateStatus(ctx, order.ID, records.OrderStatusCancelled)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
}

func TestUpdateStatusRejectsSkippedState(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestOrders(t)

	order, err := svc.Checkout(ctx, CheckoutInput{
		CustomerName: "Rosa",
		Items:        []CheckoutItem{{DrinkID: "drip", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, records.OrderStatusReady)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	_, err = svc.UpdateStatus(ctx, "missing-order", records.OrderStatusInProgress)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
