package handlers

import (
	"net/http"

	"github.com/01moynul/foodie-cart/internal/middleware"
	"github.com/01moynul/foodie-cart/internal/models"
	"github.com/gin-gonic/gin"
)

// GetFavorites is the handler for GET /v1/favorites
func (h *Handlers) GetFavorites(c *gin.Context) {
	items, err := h.Favorites.List(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.storageError(c, "load favorites", err)
		return
	}
	c.JSON(http.StatusOK, models.FavoritesResponse{Items: items})
}

// ToggleFavorite is the handler for POST /v1/favorites/toggle
func (h *Handlers) ToggleFavorite(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var item models.CatalogItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if err := item.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 2. --- Toggle ---
	owner := middleware.OwnerID(c)
	items, err := h.Favorites.Toggle(c.Request.Context(), owner, item)
	if err != nil {
		h.storageError(c, "toggle favorite", err)
		return
	}

	// 3. --- Report the item's new state ---
	resp := models.FavoritesResponse{Items: items}
	if owner != "" {
		on := false
		for _, f := range items {
			if f.ID == item.ID {
				on = true
				break
			}
		}
		resp.Favorite = &on
	}
	c.JSON(http.StatusOK, resp)
}
