// Package redis implements the cache store on a Redis instance so several
// processes can share one cart cache.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/cartlab/cart-fetch/cache"
	goredis "github.com/redis/go-redis/v9"
)

// Store is a Redis-backed cache backend
type Store struct {
	client *goredis.Client
}

var _ cache.Store = (*Store)(nil)

// NewStore creates a Redis cache backend for the given address. The
// connection is established lazily; a Ping surfaces config problems early.
func NewStore(addr string, password string, db int) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Store{client: client}, nil
}

// Get returns the value for key, with a Redis miss reported as absent
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores value under key with the given TTL (zero means no expiry)
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	return s.client.Close()
}
