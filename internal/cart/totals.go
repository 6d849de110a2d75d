package cart

import (
	"github.com/01moynul/foodie-cart/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat surcharge shown on the cart page.
var DefaultTaxRate = decimal.RequireFromString("0.05")

// Summarize computes subtotal, tax and total for lines. Tax is rounded to
// cents; subtotal is exact.
func Summarize(lines []models.CartLine, taxRate decimal.Decimal) models.CartTotals {
	subtotal := decimal.Zero
	count := 0
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
		count = addQuantity(count, l.Quantity)
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return models.CartTotals{
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      subtotal.Add(tax),
		TotalItems: count,
	}
}
