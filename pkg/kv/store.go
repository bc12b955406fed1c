// Package kv provides the string key-value capability the record store is
// built on. Values persist until deleted; there is no transaction support and
// no cross-key atomicity, which is exactly the contract the storage layer is
// designed around.
package kv

import "context"

// Store is the narrow surface consumed by the storage layer.
type Store interface {
	// Get returns the value at key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes value at key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Del removes the given keys in one call. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error
}
