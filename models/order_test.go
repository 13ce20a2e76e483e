package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderJSONFieldNames(t *testing.T) {
	addressID := 3
	b, err := json.Marshal(Order{
		ID: "ORD-1", UserID: 1, TotalPrice: 5500, AddressID: &addressID,
		Items:           []OrderLine{{OrderID: "ORD-1", ProductID: 1, ProductName: "Classic", Quantity: 1, UnitPrice: 5500}},
		PricingWarnings: []string{"cart line 9: options unreadable"},
	})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, key := range []string{"id", "userId", "totalPrice", "addressId", "items", "pricingWarnings", "date", "updatedAt"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "user_id")

	item := raw["items"].([]any)[0].(map[string]any)
	for _, key := range []string{"orderId", "productId", "productName", "unitPrice"} {
		assert.Contains(t, item, key)
	}
}
