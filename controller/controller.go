// Package controller is the consuming layer: it asks the fetcher for a
// user's cart and writes a plain-text rendering of the records.
package controller

import (
	"context"
	"fmt"
	"io"

	"github.com/cartlab/cart-fetch/cache"
	"github.com/cartlab/cart-fetch/clients/cartapi"
	"github.com/cartlab/cart-fetch/utils/logger"
)

// CartController renders fetched carts as one line per record
type CartController struct {
	fetcher cache.Fetcher
	logger  logger.Logger
}

// NewCartController creates a controller over any cart fetcher, cached or not
func NewCartController(fetcher cache.Fetcher, l logger.Logger) *CartController {
	if l == nil {
		l = logger.NewNoopLogger()
	}
	return &CartController{
		fetcher: fetcher,
		logger:  l,
	}
}

// RenderCart fetches the cart for userID and writes it to w. Fetch errors
// are logged and returned to the caller.
func (c *CartController) RenderCart(ctx context.Context, userID int, w io.Writer) error {
	items, err := c.fetcher.Fetch(ctx, cartapi.Request{UserID: userID})
	if err != nil {
		c.logger.Printf("controller: fetching cart for user %d: %v", userID, err)
		return err
	}

	if len(items) == 0 {
		_, err := fmt.Fprintf(w, "cart for user %d is empty\n", userID)
		return err
	}

	for _, item := range items {
		if _, err := fmt.Fprintf(w, "%d x %s\n", item.Quantity, item.Name); err != nil {
			return err
		}
	}

	return nil
}
