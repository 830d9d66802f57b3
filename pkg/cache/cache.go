// Package cache provides the response cache used by the npm registry client
// and the suggestion daemon.
//
// Suggestion lookups themselves are stateless; caching is a transport-level
// concern. Three backends are provided:
//   - FileCache: TTL cache on disk for CLI usage
//   - NullCache: no-op cache for --no-cache and tests
//   - RedisCache: shared cache for daemon deployments
package cache

import (
	"context"
	"time"
)

// Cache stores raw response bytes keyed by string with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
