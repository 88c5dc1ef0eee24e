package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/orders_admin/internal/models"
)

// OrderForm is the order header as typed plus its draft lines.
type OrderForm struct {
	Number         string                 `json:"number"`
	DateAndTime    string                 `json:"date_and_time"`
	CustomerID     int                    `json:"customer"`
	ShippingMethod string                 `json:"shipping_method"`
	ShippingCost   string                 `json:"shipping_cost"`
	Status         string                 `json:"status"`
	Items          []models.DraftLineItem `json:"items"`
}

type orderRules struct {
	Number         string      `json:"number" validate:"required"`
	DateAndTime    string      `json:"date_and_time" validate:"required,formdate"`
	CustomerID     int         `json:"customer" validate:"min=1"`
	ShippingMethod string      `json:"shipping_method" validate:"oneof=standard express tnt startrak"`
	ShippingCost   string      `json:"shipping_cost" validate:"required,nonneg,amount"`
	Status         string      `json:"status" validate:"oneof=pending completed canceled"`
	Items          []lineRules `json:"items" validate:"min=1,dive"`
}

type lineRules struct {
	ProductID int    `json:"product" validate:"min=1"`
	Quantity  string `json:"quantity" validate:"posint,maxqty"`
	UnitPrice string `json:"unit_price" validate:"required,nonneg,amount"`
}

var orderMessages = map[string]string{
	"number.required":             "Order number is required",
	"date_and_time.required":      "Date and time is required",
	"date_and_time.formdate":      "Enter a valid date and time",
	"customer.min":                "Please select a customer",
	"shipping_method.oneof":       "Select a shipping method",
	"shipping_cost.required":      "Amount is required",
	"shipping_cost.nonneg":        "Shipping cost cannot be negative",
	"shipping_cost.amount":        "Enter an amount (at most 2 decimal places)",
	"status.oneof":                "Select a status",
	"items.min":                   "At least one item is required",
	"items.*.product.min":         "Please select a product",
	"items.*.quantity.posint":     "Quantity must be greater than 0",
	"items.*.quantity.maxqty":     "Quantity is too large",
	"items.*.unit_price.required": "Amount is required",
	"items.*.unit_price.nonneg":   "Price cannot be negative",
	"items.*.unit_price.amount":   "Enter an amount (at most 2 decimal places)",
}

// ValidateOrder checks the header and every line. Dates without a zone are
// read in loc.
func ValidateOrder(f OrderForm, loc *time.Location) (models.NewOrder, []models.LineItem, error) {
	r := orderRules{
		Number:         strings.TrimSpace(f.Number),
		DateAndTime:    strings.TrimSpace(f.DateAndTime),
		CustomerID:     f.CustomerID,
		ShippingMethod: f.ShippingMethod,
		ShippingCost:   strings.TrimSpace(f.ShippingCost),
		Status:         f.Status,
		Items:          make([]lineRules, 0, len(f.Items)),
	}
	for _, it := range f.Items {
		r.Items = append(r.Items, lineRules{
			ProductID: it.ProductID,
			Quantity:  strings.TrimSpace(it.Quantity),
			UnitPrice: strings.TrimSpace(it.UnitPrice),
		})
	}

	if err := check(r, orderMessages); err != nil {
		return models.NewOrder{}, nil, err
	}

	at, _ := parseDateTime(r.DateAndTime, loc)
	out := models.NewOrder{
		Number:         r.Number,
		DateAndTime:    at,
		CustomerID:     r.CustomerID,
		ShippingMethod: models.ShippingMethod(r.ShippingMethod),
		ShippingCost:   decimal.RequireFromString(r.ShippingCost),
		Status:         models.OrderStatus(r.Status),
	}

	lines := make([]models.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		qty, _ := strconv.Atoi(it.Quantity)
		lines = append(lines, models.LineItem{
			ProductID: it.ProductID,
			Quantity:  qty,
			UnitPrice: decimal.RequireFromString(it.UnitPrice),
		})
	}
	return out, lines, nil
}
