package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/01moynul/foodie-cart/internal/middleware"
	"github.com/01moynul/foodie-cart/internal/models"
	"github.com/01moynul/foodie-cart/internal/orders"
	"github.com/gin-gonic/gin"
)

// Checkout is the handler for POST /v1/checkout
// It relays the cart to the ordering backend and, once accepted, removes the
// ordered lines from it.
func (h *Handlers) Checkout(c *gin.Context) {
	ctx := c.Request.Context()
	owner := middleware.OwnerID(c)

	// 1. --- Bind & Validate the shipping form ---
	var input models.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 2. --- Load the cart ---
	lines, err := h.Cart.Lines(ctx, owner)
	if err != nil {
		h.storageError(c, "load cart", err)
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Your cart is empty"})
		return
	}
	totals := h.cartResponse(lines).CartTotals

	// 3. --- Place the order ---
	_, err = h.Orders.PlaceOrder(ctx, middleware.AccessToken(c), models.OrderLinesFromCart(lines, input))
	if err != nil {
		_ = c.Error(err)
		h.Log.Warn("order not placed",
			slog.String("owner", owner),
			slog.Int("lines", len(lines)),
			slog.Any("err", err))
		if errors.Is(err, orders.ErrRejected) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Something went wrong on our end."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Ordering service unavailable"})
		return
	}

	// 4. --- Take the ordered lines out of the cart ---
	// The order exists now; a failure only leaves a stale cart behind.
	if _, err := h.Cart.Settle(ctx, owner, lines); err != nil {
		_ = c.Error(err)
		h.Log.Error("settle cart after checkout failed", slog.String("owner", owner), slog.Any("err", err))
	}

	h.Log.Info("order placed",
		slog.String("owner", owner),
		slog.Int("lines", len(lines)),
		slog.String("total", totals.Total.String()))

	c.JSON(http.StatusCreated, models.CheckoutResponse{
		Message: "Order placed successfully!",
		Lines:   len(lines),
		Totals:  totals,
	})
}
