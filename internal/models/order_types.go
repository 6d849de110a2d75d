package models

import "github.com/shopspring/decimal"

// CheckoutInput is the shipping form submitted with POST /v1/checkout.
type CheckoutInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required,number,min=4,max=5"`
	Phone   string `json:"phone" binding:"required"`
}

// OrderLine is one record of the order payload the ordering backend accepts.
// The backend takes one record per cart line, each repeating the shipping form.
// UserID is always sent as null; the backend resolves the user from the token.
type OrderLine struct {
	Name    string          `json:"name"`
	Address string          `json:"address"`
	City    string          `json:"city"`
	ZipCode string          `json:"zipCode"`
	Phone   string          `json:"phone"`
	FoodID  ItemID          `json:"foodId"`
	Qty     int             `json:"qty"`
	Price   decimal.Decimal `json:"price"`
	UserID  *string         `json:"userID"`
}

// OrderLinesFromCart builds the order payload for the given cart and form.
func OrderLinesFromCart(lines []CartLine, in CheckoutInput) []OrderLine {
	out := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, OrderLine{
			Name:    in.Name,
			Address: in.Address,
			City:    in.City,
			ZipCode: in.ZipCode,
			Phone:   in.Phone,
			FoodID:  l.ID,
			Qty:     l.Quantity,
			Price:   l.Price,
		})
	}
	return out
}

// OrderResult is the ordering backend's reply envelope.
type OrderResult struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
}

// CheckoutResponse is returned after the backend accepted the order.
type CheckoutResponse struct {
	Message string     `json:"message"`
	Lines   int        `json:"lines"`
	Totals  CartTotals `json:"totals"`
}
