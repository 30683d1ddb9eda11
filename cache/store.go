package cache

import (
	"context"
	"time"
)

// Store defines the interface for cache persistence backends.
// Implementations can use different mechanisms (in-memory, Redis, etc.)
// to hold fetched carts for a bounded time.
type Store interface {
	// Get returns the cached value for key and whether it was present.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the given TTL. A zero TTL means the
	// entry does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close cleans up any resources held by the store (connections, etc.)
	Close() error
}
