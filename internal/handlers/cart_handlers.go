package handlers

import (
	"log/slog"
	"net/http"

	"github.com/01moynul/foodie-cart/internal/middleware"
	"github.com/01moynul/foodie-cart/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Cart Handlers ---
//
// Requests without an owner get an empty cart back and nothing is stored.
//

// GetCart is the handler for GET /v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	lines, err := h.Cart.Lines(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.storageError(c, "load cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(lines))
}

// AddToCart is the handler for POST /v1/cart/items
func (h *Handlers) AddToCart(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input models.CartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 2. --- Add (existing lines are left untouched) ---
	lines, err := h.Cart.AddItem(c.Request.Context(), middleware.OwnerID(c), input.CatalogItem)
	if err != nil {
		h.storageError(c, "add to cart", err)
		return
	}

	c.JSON(http.StatusOK, h.cartResponse(lines))
}

// AdjustCartItem is the handler for PATCH /v1/cart/items/:id
// A line whose quantity drops below 1 is removed.
func (h *Handlers) AdjustCartItem(c *gin.Context) {
	var input models.AdjustCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: delta must be a non-zero integer"})
		return
	}

	id := models.ItemID(c.Param("id"))
	lines, err := h.Cart.AdjustQuantity(c.Request.Context(), middleware.OwnerID(c), id, input.Delta)
	if err != nil {
		h.storageError(c, "adjust cart item", err)
		return
	}

	c.JSON(http.StatusOK, h.cartResponse(lines))
}

// ClearCart is the handler for DELETE /v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	lines, err := h.Cart.Clear(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.storageError(c, "clear cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(lines))
}

// GetOwnerCart is the handler for GET /v1/admin/carts/:owner
// It lets staff look at a customer's cart without changing it.
func (h *Handlers) GetOwnerCart(c *gin.Context) {
	owner := c.Param("owner")
	lines, err := h.Cart.Lines(c.Request.Context(), owner)
	if err != nil {
		h.storageError(c, "load cart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"owner": owner,
		"cart":  h.cartResponse(lines),
	})
}

// Me is the handler for GET /v1/me
func (h *Handlers) Me(c *gin.Context) {
	c.JSON(http.StatusOK, models.Owner{
		ID:    middleware.OwnerID(c),
		Role:  c.GetString(middleware.KeyUserRole),
		Email: c.GetString(middleware.KeyUserEmail),
	})
}

func (h *Handlers) storageError(c *gin.Context, op string, err error) {
	_ = c.Error(err)
	h.Log.Error(op+" failed",
		slog.String("owner", middleware.OwnerID(c)),
		slog.String("request_id", c.GetString(middleware.KeyRequestID)),
		slog.Any("err", err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
}
