package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/01moynul/foodie-cart/internal/models"
	"github.com/01moynul/foodie-cart/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleIsInvolutive(t *testing.T) {
	ctx := context.Background()
	f := NewFavorites(storage.NewMemory())

	_, err := f.Toggle(ctx, "42", item("a", 1))
	require.NoError(t, err)
	before, err := f.List(ctx, "42")
	require.NoError(t, err)

	_, err = f.Toggle(ctx, "42", item("b", 2))
	require.NoError(t, err)
	after, err := f.Toggle(ctx, "42", item("b", 2))
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestToggleUniqueByID(t *testing.T) {
	ctx := context.Background()
	f := NewFavorites(storage.NewMemory())

	items, err := f.Toggle(ctx, "42", item("a", 1))
	require.NoError(t, err)
	require.Len(t, items, 1)

	on, err := f.Contains(ctx, "42", "a")
	require.NoError(t, err)
	assert.True(t, on)

	// A different price with the same id still counts as the same favorite.
	items, err = f.Toggle(ctx, "42", item("a", 5))
	require.NoError(t, err)
	assert.Empty(t, items)

	on, err = f.Contains(ctx, "42", "a")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestFavoritesPersistUnderOwnerID(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	f := NewFavorites(store)

	_, err := f.Toggle(ctx, "42", item("a", 1))
	require.NoError(t, err)

	raw, found, err := store.Get(ctx, "42")
	require.NoError(t, err)
	require.True(t, found)

	var saved []models.Favorite
	require.NoError(t, json.Unmarshal(raw, &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, models.ItemID("a"), saved[0].ID)

	reloaded, err := NewFavorites(store).List(ctx, "42")
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
}
