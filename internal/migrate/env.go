package migrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/beanwagon-backend/internal/codec"
	"github.com/angelmondragon/beanwagon-backend/internal/storage"
	"github.com/angelmondragon/beanwagon-backend/pkg/kv"
)

// Env is the surface a migration step works against: raw, loosely-typed
// access to the stored collections. Steps reshape data whose typed form may
// no longer exist in the codebase, so everything here is maps and slices.
type Env struct {
	store kv.Store
	keys  storage.Keys
}

// Keys exposes the key layout to steps.
func (e *Env) Keys() storage.Keys {
	return e.keys
}

// ReadRaw returns the stored bytes at key.
func (e *Env) ReadRaw(ctx context.Context, key string) (string, bool, error) {
	return e.store.Get(ctx, key)
}

// WriteRaw replaces the stored bytes at key.
func (e *Env) WriteRaw(ctx context.Context, key, value string) error {
	return e.store.Set(ctx, key, value)
}

// TransformCollection applies fn to every record in the collection at key.
// A missing collection is a no-op; records travel as date-revived loose maps.
func (e *Env) TransformCollection(ctx context.Context, key string, fn func(record map[string]any) (map[string]any, error)) error {
	text, ok, err := e.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return nil
	}

	loose, err := codec.DecodeLoose(text)
	if err != nil {
		if errors.Is(err, codec.ErrAbsent) {
			return nil
		}
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	items, ok := loose.([]any)
	if !ok {
		return fmt.Errorf("collection %s is not an array", key)
	}

	transformed := make([]any, 0, len(items))
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("record %d in %s is not an object", i, key)
		}
		next, err := fn(record)
		if err != nil {
			return fmt.Errorf("transforming record %d in %s: %w", i, key, err)
		}
		transformed = append(transformed, next)
	}

	encoded, err := codec.Encode(transformed)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return e.store.Set(ctx, key, encoded)
}

// TransformSingleton applies fn to the single record at key. A missing
// record is a no-op.
func (e *Env) TransformSingleton(ctx context.Context, key string, fn func(record map[string]any) (map[string]any, error)) error {
	text, ok, err := e.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return nil
	}

	loose, err := codec.DecodeLoose(text)
	if err != nil {
		if errors.Is(err, codec.ErrAbsent) {
			return nil
		}
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	record, ok := loose.(map[string]any)
	if !ok {
		return fmt.Errorf("record at %s is not an object", key)
	}

	next, err := fn(record)
	if err != nil {
		return fmt.Errorf("transforming %s: %w", key, err)
	}
	encoded, err := codec.Encode(next)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return e.store.Set(ctx, key, encoded)
}
