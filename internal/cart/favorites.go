package cart

import (
	"context"

	"github.com/01moynul/foodie-cart/internal/models"
	"github.com/01moynul/foodie-cart/internal/storage"
)

// DefaultFavoritesPrefix is empty: favorites live under the bare owner id.
const DefaultFavoritesPrefix = ""

// Favorites is the per-owner wishlist.
type Favorites struct {
	items *collection[models.Favorite]
}

// NewFavorites returns a Favorites container persisted in store.
func NewFavorites(store storage.Store, opts ...Option) *Favorites {
	return &Favorites{
		items: newCollection(store, DefaultFavoritesPrefix, opts,
			func(f models.Favorite) models.ItemID { return f.ID },
			func(f models.Favorite) models.Favorite { return f.Clone() },
			func(f models.Favorite) bool { return f.ID != "" },
		),
	}
}

// Key returns the storage key holding owner's favorites.
func (f *Favorites) Key(owner string) string {
	return f.items.Key(owner)
}

// List returns a copy of owner's favorites.
func (f *Favorites) List(ctx context.Context, owner string) ([]models.Favorite, error) {
	return f.items.list(ctx, owner)
}

// Toggle removes item if it is a favorite and adds it otherwise.
func (f *Favorites) Toggle(ctx context.Context, owner string, item models.CatalogItem) ([]models.Favorite, error) {
	return f.items.mutate(ctx, owner, "toggle", func(items []models.Favorite) ([]models.Favorite, bool) {
		if item.ID == "" {
			return items, false
		}
		if i := f.items.indexOf(items, item.ID); i >= 0 {
			return append(items[:i], items[i+1:]...), true
		}
		return append(items, item.Clone()), true
	})
}

// Contains reports whether id is one of owner's favorites.
func (f *Favorites) Contains(ctx context.Context, owner string, id models.ItemID) (bool, error) {
	items, err := f.List(ctx, owner)
	if err != nil {
		return false, err
	}
	return f.items.indexOf(items, id) >= 0, nil
}

// Reload drops the cached favorites so the next call reads them from the store.
func (f *Favorites) Reload(owner string) {
	f.items.forget(owner)
}
