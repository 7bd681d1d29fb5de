package ports

import (
	"context"
)

// KVStore defines the interface for persisting the serialized entry list.
// It mirrors a browser's local storage: string keys, string values.
type KVStore interface {
	// Get retrieves the value stored under key.
	// Returns domain.ErrKeyNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
