package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_DecodesRESTPayload(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": 12, "number": "ORD-1", "date_and_time": "2024-01-01T10:00:00Z",
		"customer": 7, "customer_name": "Zoe", "shipping_method": "standard",
		"shipping_cost": "5.00", "status": "pending",
		"items": [{"id": 1, "order": 12, "product": 3, "product_name": "Pen", "product_sku": "PEN-1",
		           "quantity": 6, "unit_price": "9.99",
		           "created_at": "2024-01-01T10:00:01.123456Z", "updated_at": "2024-01-01T10:00:01Z"}],
		"created_at": "2024-01-01T10:00:00Z", "updated_at": "2024-01-01T10:00:00Z"
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(raw), &o))
	assert.Equal(t, 7, o.CustomerID)
	assert.Equal(t, ShippingStandard, o.ShippingMethod)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 3, o.Items[0].ProductID)
	assert.True(t, decimal.RequireFromString("59.94").Equal(o.Items[0].LineTotal()))
	assert.True(t, decimal.RequireFromString("64.94").Equal(o.Total()))
}

func TestProductOption_ToProduct(t *testing.T) {
	t.Parallel()

	raw := `{"id": 3, "sku": "PEN-1", "name": "Pen", "unitPrice": "9.99", "stockLevel": 40,
		"createdAt": "2024-01-01T10:00:00+00:00", "updatedAt": "2024-01-02T10:00:00+00:00"}`

	var opt ProductOption
	require.NoError(t, json.Unmarshal([]byte(raw), &opt))

	p := opt.ToProduct()
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "PEN-1", p.SKU)
	assert.Equal(t, 40, p.StockLevel)
	assert.Equal(t, "9.99", p.UnitPrice.StringFixed(2))
	assert.Equal(t, opt.UpdatedAt, p.UpdatedAt)
	assert.Equal(t, "Pen (PEN-1)", opt.Label())
}

func TestNewOrderItem_WireNames(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(NewOrderItem{OrderID: 12, ProductID: 3, Quantity: 6, UnitPrice: decimal.RequireFromString("9.99")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order": 12, "product": 3, "quantity": 6, "unit_price": "9.99"}`, string(b))
}
