package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cartlab/cart-fetch/cache"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// Store is an in-memory cache backend for single-process scenarios.
// Expired entries are dropped lazily on read.
type Store struct {
	entries map[string]entry
	mu      sync.RWMutex
	now     func() time.Time
}

var _ cache.Store = (*Store)(nil)

// NewStore creates a new in-memory cache backend
func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the value for key if present and not expired
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}

	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}

	return e.value, true, nil
}

// Set stores value under key; a zero ttl means the entry never expires
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e

	return nil
}

// Close is a no-op for the in-memory backend (no resources to clean up)
func (s *Store) Close() error {
	return nil
}

// SetNowForTests overrides the time source so expiry can be tested without
// real waiting
func (s *Store) SetNowForTests(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
