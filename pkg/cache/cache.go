// Package cache stores computed layouts between runs.
//
// Layout snapshots are pure functions of a chart document and a few
// overrides, so they are cached under a content hash of both. Three
// backends implement [Cache]:
//
//   - [NullCache] never stores anything (--no-cache)
//   - [FileCache] keeps entries under the user cache directory (CLI default)
//   - [RedisCache] shares entries between API server instances (--redis)
//
// Keys are built by a [Keyer] so callers never concatenate key strings by
// hand, and [Instrument] reports hits and misses to the observability hooks.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long layout entries stay valid.
const DefaultTTL = 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is reported through the bool,
	// never as an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
