// Package storage is the record store: four independently keyed collections
// and a settings singleton over a plain string key-value store. Reads fall
// back to empty on any failure and bulk writes are best-effort; the app layer
// holds the authoritative in-memory state for the session, so persistence
// problems degrade to defaults instead of crashing the cart.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/beanwagon-backend/internal/codec"
	"github.com/angelmondragon/beanwagon-backend/internal/records"
	"github.com/angelmondragon/beanwagon-backend/pkg/kv"
	"github.com/angelmondragon/beanwagon-backend/pkg/logger"
	"github.com/angelmondragon/beanwagon-backend/pkg/metrics"
)

// Validator is the injected structural-validity capability. The predicates
// judge raw stored bytes and never error.
type Validator interface {
	ValidOrder(raw json.RawMessage) bool
	ValidMenuItem(raw json.RawMessage) bool
}

// Service owns the serialized representation of every collection. Callers
// get transient copies; concurrent read-modify-save cycles on the same
// collection are a caller error, not something this layer locks against.
type Service struct {
	store   kv.Store
	keys    Keys
	logg    *logger.Logger
	metrics *metrics.StorageMetrics
	checker Validator
}

// NewService wires the record store. The metrics handle may be nil.
func NewService(store kv.Store, keys Keys, logg *logger.Logger, m *metrics.StorageMetrics, checker Validator) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if checker == nil {
		return nil, fmt.Errorf("validator required")
	}
	return &Service{store: store, keys: keys, logg: logg, metrics: m, checker: checker}, nil
}

// Keys exposes the key layout to the migration engine.
func (s *Service) Keys() Keys {
	return s.keys
}

// Store exposes the raw key-value capability to the migration engine, which
// needs byte-level backup and restore.
func (s *Service) Store() kv.Store {
	return s.store
}

// Orders returns every stored order, oldest first. Missing key, store error
// or corrupt payload all yield an empty slice.
func (s *Service) Orders(ctx context.Context) []records.Order {
	return loadCollection[records.Order](ctx, s, s.keys.Orders(), collectionOrders)
}

// SaveOrders writes the full order collection. Best-effort.
func (s *Service) SaveOrders(ctx context.Context, orders []records.Order) {
	saveCollection(ctx, s, s.keys.Orders(), collectionOrders, orders)
}

// MenuItems returns the stored menu. Same fallback contract as Orders.
func (s *Service) MenuItems(ctx context.Context) []records.MenuItem {
	return loadCollection[records.MenuItem](ctx, s, s.keys.Drinks(), collectionDrinks)
}

// SaveMenuItems writes the full menu collection. Best-effort.
func (s *Service) SaveMenuItems(ctx context.Context, items []records.MenuItem) {
	saveCollection(ctx, s, s.keys.Drinks(), collectionDrinks, items)
}

// Syrups returns the stored flavor additives.
func (s *Service) Syrups(ctx context.Context) []records.Syrup {
	return loadCollection[records.Syrup](ctx, s, s.keys.Syrups(), collectionSyrups)
}

// SaveSyrups writes the full syrup collection. Best-effort.
func (s *Service) SaveSyrups(ctx context.Context, syrups []records.Syrup) {
	saveCollection(ctx, s, s.keys.Syrups(), collectionSyrups, syrups)
}

// ClearAll removes every namespaced key in one batched call. Best-effort.
func (s *Service) ClearAll(ctx context.Context) {
	if err := s.store.Del(ctx, s.keys.All()...); err != nil {
		s.logg.Error(ctx, "clearing storage failed", err)
	}
}

func loadCollection[T any](ctx context.Context, s *Service, key, name string) []T {
	s.metrics.IncRead(name)
	ctx = s.logg.WithCollection(ctx, name)

	text, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logg.Error(ctx, "reading collection failed, falling back to empty", err)
		return []T{}
	}
	if !ok {
		return []T{}
	}

	var items []T
	if err := codec.Decode(text, &items); err != nil {
		s.logg.Error(ctx, "decoding collection failed, falling back to empty", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func saveCollection[T any](ctx context.Context, s *Service, key, name string, items []T) {
	s.metrics.IncWrite(name)
	ctx = s.logg.WithCollection(ctx, name)

	if items == nil {
		items = []T{}
	}
	text, err := codec.Encode(items)
	if err != nil {
		s.metrics.IncWriteFailure(name)
		s.logg.Error(ctx, "encoding collection failed, write skipped", err)
		return
	}
	if err := s.store.Set(ctx, key, text); err != nil {
		s.metrics.IncWriteFailure(name)
		s.logg.Error(ctx, "writing collection failed", err)
	}
}
