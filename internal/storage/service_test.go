package storage

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/angelmondragon/beanwagon-backend/internal/records"
	"github.com/angelmondragon/beanwagon-backend/internal/validate"
	"github.com/angelmondragon/beanwagon-backend/pkg/kv"
	"github.com/angelmondragon/beanwagon-backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(store, NewKeys("bw"), logg, nil, validate.New())
	require.NoError(t, err)
	return svc, store
}

func TestMissingDataDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NotNil(t, svc.Orders(ctx))
	require.Empty(t, svc.Orders(ctx))
	require.NotNil(t, svc.MenuItems(ctx))
	require.Empty(t, svc.MenuItems(ctx))
	require.NotNil(t, svc.Syrups(ctx))
	require.Empty(t, svc.Syrups(ctx))
	require.Nil(t, svc.Settings(ctx))
}

func TestOrderRoundTripDates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created := time.Date(2025, 6, 2, 8, 15, 0, 0, time.UTC)
	eta := created.Add(12 * time.Minute)
	order := records.Order{
		ID:           "order-1",
		CustomerName: "Miriam",
		Items: []records.OrderItem{
			{DrinkID: "latte", Name: "Latte", Quantity: 2, SelectedOptionIDs: []string{"size-large"}},
		},
		Status:                  records.OrderStatusPending,
		CreatedAt:               created,
		UpdatedAt:               created,
		EstimatedCompletionTime: &eta,
		Notes:                   "2025-06-02T08:15:00Z", // date-looking free text must stay text
	}

	svc.SaveOrders(ctx, []records.Order{order})
	loaded := svc.Orders(ctx)

	require.Len(t, loaded, 1)
	require.True(t, loaded[0].CreatedAt.Equal(created))
	require.True(t, loaded[0].UpdatedAt.Equal(created))
	require.NotNil(t, loaded[0].EstimatedCompletionTime)
	require.True(t, loaded[0].EstimatedCompletionTime.Equal(eta))
	require.Equal(t, order.Notes, loaded[0].Notes)
	require.Equal(t, order.Items, loaded[0].Items)
}

func TestReadFailureFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	store.FailGet = func(string) error { return fmt.Errorf("store offline") }
	require.Empty(t, svc.Orders(ctx))
	require.Nil(t, svc.Settings(ctx))
}

func TestCorruptPayloadFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	require.NoError(t, store.Set(ctx, svc.Keys().Orders(), "{definitely not json"))
	require.Empty(t, svc.Orders(ctx))

	// Wrong shape (object where an array belongs) reads the same way.
	require.NoError(t, store.Set(ctx, svc.Keys().Drinks(), `{"id":"drip"}`))
	require.Empty(t, svc.MenuItems(ctx))
}

func TestBulkSaveSwallowsStoreFailure(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	store.FailSet = func(string) error { return fmt.Errorf("disk full") }
	// Must not panic or surface the failure.
	svc.SaveOrders(ctx, []records.Order{{ID: "order-1"}})
}

func TestSaveNilCollectionWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	svc.SaveSyrups(ctx, nil)
	value, ok, err := store.Get(ctx, svc.Keys().Syrups())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", value)
}

func TestClearAllRemovesEveryNamespacedKey(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	svc.SaveOrders(ctx, []records.Order{})
	svc.SaveMenuItems(ctx, []records.MenuItem{})
	svc.SaveSyrups(ctx, []records.Syrup{})
	svc.SaveSettings(ctx, records.Settings{})
	require.NoError(t, svc.SetSetting(ctx, ScalarPrinterAddress, "192.168.0.42"))
	require.Positive(t, store.Len())

	svc.ClearAll(ctx)
	require.Zero(t, store.Len())
}

func TestSaveSettingsStampsLastUpdated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.SaveSettings(ctx, records.Settings{SchemaVersion: 3, LastUpdated: stale})

	loaded := svc.Settings(ctx)
	require.NotNil(t, loaded)
	require.Equal(t, 3, loaded.SchemaVersion)
	require.False(t, loaded.LastUpdated.Equal(stale), "LastUpdated must be restamped on every save")
	require.WithinDuration(t, time.Now().UTC(), loaded.LastUpdated, time.Minute)
}

func TestScalarSettingLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, ok, err := svc.Setting(ctx, ScalarPrinterAddress)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, svc.SetSetting(ctx, ScalarPrinterAddress, "192.168.0.42"))
	value, ok, err := svc.Setting(ctx, ScalarPrinterAddress)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "192.168.0.42", value)

	// Scalar writes propagate failure, unlike the bulk saves.
	store.FailSet = func(string) error { return fmt.Errorf("disk full") }
	require.Error(t, svc.SetSetting(ctx, ScalarPrinterAddress, "10.0.0.1"))
}
