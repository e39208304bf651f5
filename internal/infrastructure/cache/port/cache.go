package port

import (
	"context"
	"time"
)

// Cache is the key-value contract used for display metadata (company names,
// contact labels). Ownership state is never cached: the resolver must always
// read committed listing/member rows. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get fetches the value for key, returning ErrMiss when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key with the provided TTL. Zero or negative TTL
	// means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes keys and returns the number actually removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Close releases any resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss in a typed way so callers can tell misses from
// transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
