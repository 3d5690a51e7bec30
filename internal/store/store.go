// Package store provides the key-value persistence port for the GeoJourney
// backend and its implementations. The application persists three independent
// keys holding JSON-encoded collections; everything above this package talks
// in opaque byte slices.
package store

import (
	"context"
	"errors"
)

// ErrNoValue is returned by Get when the key has never been set
// (or was deleted). Callers generally treat it as "use the default".
var ErrNoValue = errors.New("store: no value for key")

// KV is the storage port: get/set/remove by key, values are serialized bytes.
// Implementations must be safe for concurrent use.
type KV interface {
	// Get returns the value stored under key, or ErrNoValue if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
