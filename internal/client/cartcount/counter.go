// Package cartcount keeps the number of items in the signed-in user's cart.
//
// The count is never adjusted locally: it is re-derived from
// /collection/cart/total on each refresh. A refresh without a persisted
// credential is skipped, and a failed refresh keeps the previous value, so
// readers must tolerate a stale or unknown count.
package cartcount

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/shopfront/internal/client/kvstore"
	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/common"
	"github.com/dmitrijs2005/shopfront/internal/logging"
)

var ErrNegativeCount = errors.New("cart count must not be negative")

// Totaler returns the cart total for the current credential.
type Totaler interface {
	Total(ctx context.Context) (models.CartTotal, error)
}

type Counter struct {
	kv     kvstore.Store
	carts  Totaler
	logger logging.Logger

	mu    sync.RWMutex
	count *int
}

func New(kv kvstore.Store, carts Totaler, logger logging.Logger) *Counter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Counter{kv: kv, carts: carts, logger: logger.With("component", "cartcount")}
}

// SetCount assigns n; nil means unknown.
func (c *Counter) SetCount(n *int) error {
	if n != nil && *n < 0 {
		return ErrNegativeCount
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if n == nil {
		c.count = nil
		return nil
	}
	v := *n
	c.count = &v
	return nil
}

// Reset makes the count unknown.
func (c *Counter) Reset() {
	_ = c.SetCount(nil)
}

// Count returns the last derived value; ok is false while unknown.
func (c *Counter) Count() (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.count == nil {
		return 0, false
	}
	return *c.count, true
}

// RefreshCount re-derives the count from the server. Without a persisted
// credential no request is made and the value is left as is. Failures are
// logged and the previous value is retained.
func (c *Counter) RefreshCount(ctx context.Context) {
	if !kvstore.Has(ctx, c.kv, common.AccessTokenKey) {
		return
	}

	total, err := c.carts.Total(ctx)
	if err != nil {
		c.logger.Warn(ctx, "failed to fetch cart total", "error", err)
		return
	}

	if err := c.SetCount(&total.Total); err != nil {
		c.logger.Warn(ctx, "server sent invalid cart total", "total", total.Total, "error", err)
	}
}
