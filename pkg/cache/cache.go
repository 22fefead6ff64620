// Package cache provides content-addressed caching for pipeline
// results. Placements and density fields are pure functions of their
// inputs and options, so cache keys are hashes of both and entries can
// live for days.
package cache

import (
	"context"
	"time"
)

// TTLs for the different entry types.
const (
	// TTLPlacement applies to positioned post collections.
	TTLPlacement = 7 * 24 * time.Hour

	// TTLField applies to generated density fields.
	TTLField = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with a TTL.
// A zero TTL means the entry never expires.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
