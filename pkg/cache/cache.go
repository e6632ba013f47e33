// Package cache holds the shared key/value store used for read caching,
// rate-limit counters and login lockouts. Redis backs it in deployments;
// an in-process store is used when REDIS_URL is not set.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values with a TTL.
type Cache interface {
	// Get decodes the value stored at key into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Incr increments a counter. The window starts on the first increment;
	// the returned ttl is what remains of it.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
	// Backend names the implementation for health output.
	Backend() string
}
