// Package cart keeps each owner's cart and favorites, persisted through a
// storage.Store under keys derived from the owner id passed to every call.
//
// An empty owner id means nobody is signed in: mutations are skipped and
// return an empty collection without touching the store.
package cart

import (
	"context"
	"math"

	"github.com/01moynul/foodie-cart/internal/models"
	"github.com/01moynul/foodie-cart/internal/storage"
)

// DefaultCartPrefix is the key prefix of persisted carts.
const DefaultCartPrefix = "cart-"

// Cart is the per-owner shopping cart.
type Cart struct {
	lines *collection[models.CartLine]
}

// New returns a Cart persisted in store.
func New(store storage.Store, opts ...Option) *Cart {
	return &Cart{
		lines: newCollection(store, DefaultCartPrefix, opts,
			func(l models.CartLine) models.ItemID { return l.ID },
			func(l models.CartLine) models.CartLine {
				l.CatalogItem = l.CatalogItem.Clone()
				return l
			},
			func(l models.CartLine) bool { return l.ID != "" && l.Quantity >= 1 },
		),
	}
}

// Key returns the storage key holding owner's cart.
func (c *Cart) Key(owner string) string {
	return c.lines.Key(owner)
}

// Lines returns a copy of owner's cart.
func (c *Cart) Lines(ctx context.Context, owner string) ([]models.CartLine, error) {
	return c.lines.list(ctx, owner)
}

// AddItem appends item with quantity 1. An item already in the cart is left
// as it is; adding it again does not raise its quantity.
func (c *Cart) AddItem(ctx context.Context, owner string, item models.CatalogItem) ([]models.CartLine, error) {
	return c.lines.mutate(ctx, owner, "add", func(lines []models.CartLine) ([]models.CartLine, bool) {
		if item.ID == "" || c.lines.indexOf(lines, item.ID) >= 0 {
			return lines, false
		}
		return append(lines, models.CartLine{CatalogItem: item.Clone(), Quantity: 1}), true
	})
}

// AdjustQuantity adds delta to the quantity of line id. A line whose
// quantity would fall below 1 is removed. Unknown ids are ignored.
func (c *Cart) AdjustQuantity(ctx context.Context, owner string, id models.ItemID, delta int) ([]models.CartLine, error) {
	return c.lines.mutate(ctx, owner, "adjust", func(lines []models.CartLine) ([]models.CartLine, bool) {
		i := c.lines.indexOf(lines, id)
		if i < 0 {
			return lines, false
		}
		qty := addQuantity(lines[i].Quantity, delta)
		if qty >= 1 {
			lines[i].Quantity = qty
			return lines, true
		}
		return append(lines[:i], lines[i+1:]...), true
	})
}

// Settle takes ordered lines out of owner's cart once an order for them was
// placed. Quantities are subtracted, so lines added or raised after the order
// was built stay behind. A cart left empty is cleared.
func (c *Cart) Settle(ctx context.Context, owner string, ordered []models.CartLine) ([]models.CartLine, error) {
	return c.lines.prune(ctx, owner, "settle", func(lines []models.CartLine) ([]models.CartLine, bool) {
		changed := false
		for _, o := range ordered {
			i := c.lines.indexOf(lines, o.ID)
			if i < 0 {
				continue
			}
			changed = true
			if qty := lines[i].Quantity - o.Quantity; qty >= 1 {
				lines[i].Quantity = qty
				continue
			}
			lines = append(lines[:i], lines[i+1:]...)
		}
		return lines, changed
	})
}

// Clear removes owner's persisted cart and empties it.
func (c *Cart) Clear(ctx context.Context, owner string) ([]models.CartLine, error) {
	return c.lines.clear(ctx, owner)
}

// Reload drops the cached cart so the next call reads it from the store.
func (c *Cart) Reload(owner string) {
	c.lines.forget(owner)
}

// addQuantity returns q + delta, saturating at math.MaxInt instead of
// wrapping. q is never negative, so only positive deltas can overflow.
func addQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	return q + delta
}
