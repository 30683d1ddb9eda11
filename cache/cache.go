// Package cache adds a read-through cache in front of a cart fetcher so
// repeated lookups for the same user skip the remote endpoint entirely.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cartlab/cart-fetch/clients/cartapi"
	"github.com/cartlab/cart-fetch/utils/logger"
)

// Fetcher is the contract the cache decorates. *cart_fetch.Fetcher
// satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, req cartapi.Request) ([]cartapi.CartItem, error)
}

// CachedFetcher wraps a Fetcher with a Store. Cache problems are logged and
// treated as misses; they never fail a fetch the remote could still serve.
type CachedFetcher struct {
	inner  Fetcher
	store  Store
	ttl    time.Duration
	logger logger.Logger
}

var _ Fetcher = (*CachedFetcher)(nil)

// NewCachedFetcher creates a read-through cache around inner. Entries live
// for ttl; a zero ttl caches forever.
func NewCachedFetcher(inner Fetcher, store Store, ttl time.Duration, l logger.Logger) *CachedFetcher {
	if l == nil {
		l = logger.NewNoopLogger()
	}
	return &CachedFetcher{
		inner:  inner,
		store:  store,
		ttl:    ttl,
		logger: l,
	}
}

// Fetch returns the cached cart when present, otherwise delegates to the
// inner fetcher and stores the result best-effort.
func (c *CachedFetcher) Fetch(ctx context.Context, req cartapi.Request) ([]cartapi.CartItem, error) {
	key := cartKey(req.UserID)

	data, hit, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Printf("cache: get %s failed: %v", key, err)
	} else if hit {
		var items []cartapi.CartItem
		if err := json.Unmarshal(data, &items); err != nil {
			// Corrupt entry, fall through to the remote
			c.logger.Printf("cache: corrupt entry for %s: %v", key, err)
		} else {
			return items, nil
		}
	}

	items, err := c.inner.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Printf("cache: set %s failed: %v", key, err)
		}
	}

	return items, nil
}

// cartKey builds the hierarchical cache key for a user's cart
func cartKey(userID int) string {
	return fmt.Sprintf("cart:%d", userID)
}
