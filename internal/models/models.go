package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
	ShippingTNT      ShippingMethod = "tnt"
	ShippingStarTrak ShippingMethod = "startrak"
)

var ShippingMethods = []ShippingMethod{ShippingStandard, ShippingExpress, ShippingTNT, ShippingStarTrak}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

var OrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusCompleted, OrderStatusCanceled}

type NewCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewProduct struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	StockLevel int             `json:"stock_level"`
}

type Product struct {
	ID         int             `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	StockLevel int             `json:"stock_level"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewOrder is the order header as written to the API. Items are persisted
// separately through the order-items endpoint.
type NewOrder struct {
	Number         string          `json:"number"`
	DateAndTime    time.Time       `json:"date_and_time"`
	CustomerID     int             `json:"customer"`
	ShippingMethod ShippingMethod  `json:"shipping_method"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	Status         OrderStatus     `json:"status"`
}

type Order struct {
	ID             int             `json:"id"`
	Number         string          `json:"number"`
	DateAndTime    time.Time       `json:"date_and_time"`
	CustomerID     int             `json:"customer"`
	CustomerName   string          `json:"customer_name,omitempty"`
	ShippingMethod ShippingMethod  `json:"shipping_method"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	Status         OrderStatus     `json:"status"`
	Items          []OrderItem     `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type NewOrderItem struct {
	OrderID   int             `json:"order"`
	ProductID int             `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderItem struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"order"`
	ProductID   int             `json:"product"`
	ProductName string          `json:"product_name,omitempty"`
	ProductSKU  string          `json:"product_sku,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LineTotal is quantity times the captured unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the line totals plus shipping.
func (o Order) Total() decimal.Decimal {
	total := o.ShippingCost
	for _, it := range o.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// DraftLineItem is an order line as typed into the order form; quantity and
// price stay strings until validation parses them.
type DraftLineItem struct {
	ProductID int    `json:"product"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// LineItem is a validated draft line.
type LineItem struct {
	ProductID int
	Quantity  int
	UnitPrice decimal.Decimal
}
