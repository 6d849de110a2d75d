package handlers

import (
	"context"
	"log/slog"

	"github.com/01moynul/foodie-cart/internal/cart"
	"github.com/01moynul/foodie-cart/internal/models"
	"github.com/shopspring/decimal"
)

// OrderPlacer submits an order to the ordering backend.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, token string, lines []models.OrderLine) (models.OrderResult, error)
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Cart      *cart.Cart
	Favorites *cart.Favorites
	Orders    OrderPlacer
	TaxRate   decimal.Decimal
	Log       *slog.Logger
}

func (h *Handlers) cartResponse(lines []models.CartLine) models.CartResponse {
	return models.CartResponse{
		Items:      lines,
		CartTotals: cart.Summarize(lines, h.TaxRate),
	}
}
