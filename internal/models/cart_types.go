package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The storefront reads prices as JSON numbers (item.price.toFixed).
	decimal.MarshalJSONWithoutQuotes = true
}

// ItemID identifies a catalog item. The catalog sends ids as either JSON
// numbers or strings; both decode to the same decimal string.
type ItemID string

// UnmarshalJSON accepts `"p1"`, `17` and `"17"`.
func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("item id must be a string or number: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// CatalogItem is a purchasable menu entry as the catalog listing served it.
// Fields this service does not interpret are kept in Extra and written back
// untouched, so a line always carries what the shopper saw when adding it.
type CatalogItem struct {
	ID          ItemID          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	ImagePath   string          `json:"imagePath,omitempty"`
	Price       decimal.Decimal `json:"price"`

	Extra map[string]json.RawMessage `json:"-"`
}

var catalogKnownFields = []string{"id", "name", "description", "imagePath", "price"}

// MarshalJSON writes the known fields and Extra as one flat object.
func (c CatalogItem) MarshalJSON() ([]byte, error) {
	fields, err := c.fields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// UnmarshalJSON splits a flat catalog object into known fields and Extra.
func (c *CatalogItem) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	return c.fromFields(raw)
}

func (c CatalogItem) fields() (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(c.Extra)+len(catalogKnownFields))
	for k, v := range c.Extra {
		out[k] = v
	}

	put := func(key string, v interface{}) error {
		enc, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		out[key] = enc
		return nil
	}

	if err := put("id", string(c.ID)); err != nil {
		return nil, err
	}
	if err := put("price", c.Price); err != nil {
		return nil, err
	}
	if c.Name != "" {
		if err := put("name", c.Name); err != nil {
			return nil, err
		}
	}
	if c.Description != "" {
		if err := put("description", c.Description); err != nil {
			return nil, err
		}
	}
	if c.ImagePath != "" {
		if err := put("imagePath", c.ImagePath); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *CatalogItem) fromFields(raw map[string]json.RawMessage) error {
	*c = CatalogItem{}

	get := func(key string, dst interface{}) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	}

	if err := get("id", &c.ID); err != nil {
		return err
	}
	if err := get("name", &c.Name); err != nil {
		return err
	}
	if err := get("description", &c.Description); err != nil {
		return err
	}
	if err := get("imagePath", &c.ImagePath); err != nil {
		return err
	}
	if v, ok := raw["price"]; ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		if err := c.Price.UnmarshalJSON(v); err != nil {
			return fmt.Errorf("decode price: %w", err)
		}
	}
	delete(raw, "price")

	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

// Clone returns a copy whose Extra map is not shared with c.
func (c CatalogItem) Clone() CatalogItem {
	if c.Extra == nil {
		return c
	}
	extra := make(map[string]json.RawMessage, len(c.Extra))
	for k, v := range c.Extra {
		extra[k] = append(json.RawMessage(nil), v...)
	}
	c.Extra = extra
	return c
}

// Validate reports whether the item can be put in a cart.
func (c CatalogItem) Validate() error {
	if strings.TrimSpace(string(c.ID)) == "" {
		return fmt.Errorf("item id is required")
	}
	if c.Price.IsNegative() {
		return fmt.Errorf("item price must not be negative")
	}
	return nil
}

// CartItemInput is the body of POST /cart/items. A stored item may lack a
// price, but one being added to a cart must carry it.
type CartItemInput struct {
	CatalogItem
	hasPrice bool
}

// UnmarshalJSON decodes the item and records whether price was sent.
func (in *CartItemInput) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, ok := raw["price"]
	in.hasPrice = ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
	return in.CatalogItem.fromFields(raw)
}

// Validate reports whether the input is a complete, priced item.
func (in CartItemInput) Validate() error {
	if err := in.CatalogItem.Validate(); err != nil {
		return err
	}
	if !in.hasPrice {
		return fmt.Errorf("item price is required")
	}
	return nil
}

// CartLine is one entry in a cart: the catalog item as added plus a quantity.
type CartLine struct {
	CatalogItem
	Quantity int `json:"quantity"`
}

// MarshalJSON flattens the line into the catalog object with a quantity field.
func (l CartLine) MarshalJSON() ([]byte, error) {
	fields, err := l.CatalogItem.fields()
	if err != nil {
		return nil, err
	}
	q, err := json.Marshal(l.Quantity)
	if err != nil {
		return nil, err
	}
	fields["quantity"] = q
	return json.Marshal(fields)
}

// UnmarshalJSON reads a flattened line record.
func (l *CartLine) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var qty int
	if v, ok := raw["quantity"]; ok {
		if err := json.Unmarshal(v, &qty); err != nil {
			return fmt.Errorf("decode quantity: %w", err)
		}
		delete(raw, "quantity")
	}
	if err := l.CatalogItem.fromFields(raw); err != nil {
		return err
	}
	l.Quantity = qty
	return nil
}

// LineTotal is price × quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Favorite is a catalog item on an owner's wishlist.
type Favorite = CatalogItem

// CartTotals are the values derived from a cart for display and checkout.
type CartTotals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	TotalItems int             `json:"totalItems"`
}

// CartResponse is the JSON body of every /cart endpoint.
type CartResponse struct {
	Items []CartLine `json:"items"`
	CartTotals
}

// FavoritesResponse is the JSON body of the /favorites endpoints.
type FavoritesResponse struct {
	Items    []Favorite `json:"items"`
	Favorite *bool      `json:"favorite,omitempty"`
}

// AdjustCartItemInput is the body of PATCH /cart/items/:id.
type AdjustCartItemInput struct {
	Delta int `json:"delta" binding:"required"`
}
