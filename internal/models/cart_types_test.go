package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogItemKeepsUnknownFields(t *testing.T) {
	in := `{"id":12,"name":"Burger","price":4.5,"imagePath":"/img/b.png","categoryId":3,"isAvailable":true}`

	var item CatalogItem
	require.NoError(t, json.Unmarshal([]byte(in), &item))
	assert.Equal(t, ItemID("12"), item.ID)
	assert.Equal(t, "Burger", item.Name)
	assert.Equal(t, "4.5", item.Price.String())
	assert.Len(t, item.Extra, 2)

	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"12","name":"Burger","price":4.5,"imagePath":"/img/b.png","categoryId":3,"isAvailable":true}`, string(out))
}

func TestCartLineJSON(t *testing.T) {
	in := `{"id":"p1","price":10,"quantity":3,"description":"hot"}`

	var line CartLine
	require.NoError(t, json.Unmarshal([]byte(in), &line))
	assert.Equal(t, ItemID("p1"), line.ID)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, "hot", line.Description)
	assert.Nil(t, line.Extra)
	assert.Equal(t, "30", line.LineTotal().String())

	out, err := json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestItemIDForms(t *testing.T) {
	tests := map[string]ItemID{
		`"abc"`: "abc",
		`17`:    "17",
		`"17"`:  "17",
		`null`:  "",
	}
	for in, want := range tests {
		var id ItemID
		require.NoError(t, json.Unmarshal([]byte(in), &id), in)
		assert.Equal(t, want, id, in)
	}

	var id ItemID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestCatalogItemValidate(t *testing.T) {
	var ok CatalogItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","price":1}`), &ok))
	assert.NoError(t, ok.Validate())

	var noID CatalogItem
	require.NoError(t, json.Unmarshal([]byte(`{"price":1}`), &noID))
	assert.Error(t, noID.Validate())

	var negative CatalogItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","price":-1}`), &negative))
	assert.Error(t, negative.Validate())
}

func TestCartItemInputNeedsPrice(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{name: "priced", body: `{"id":"a","price":4.5}`, ok: true},
		{name: "free item", body: `{"id":"a","price":0}`, ok: true},
		{name: "missing price", body: `{"id":"a"}`},
		{name: "null price", body: `{"id":"a","price":null}`},
		{name: "missing id", body: `{"price":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in CartItemInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			if tt.ok {
				assert.NoError(t, in.Validate())
			} else {
				assert.Error(t, in.Validate())
			}
		})
	}
}

func TestOrderLinesFromCart(t *testing.T) {
	var lines []CartLine
	require.NoError(t, json.Unmarshal([]byte(`[{"id":3,"price":2.5,"quantity":2},{"id":"x","price":1,"quantity":1}]`), &lines))

	form := CheckoutInput{Name: "Ana", Address: "Road 1", City: "Dhaka", ZipCode: "1200", Phone: "017"}
	out := OrderLinesFromCart(lines, form)
	require.Len(t, out, 2)

	raw, err := json.Marshal(out[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","address":"Road 1","city":"Dhaka","zipCode":"1200","phone":"017","foodId":"3","qty":2,"price":2.5,"userID":null}`, string(raw))
}
