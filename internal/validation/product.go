package validation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/orders_admin/internal/models"
)

// ProductForm holds price and stock as typed, e.g. "10.50" and "3".
type ProductForm struct {
	SKU        string `json:"sku" validate:"required"`
	Name       string `json:"name" validate:"required"`
	UnitPrice  string `json:"unit_price" validate:"nonneg,price"`
	StockLevel string `json:"stock_level" validate:"nonneg,digits,int32"`
}

var productMessages = map[string]string{
	"sku.required":       "SKU is required",
	"name.required":      "Name is required",
	"unit_price.nonneg":  "No negative prices",
	"unit_price.price":   "Enter a number (2 decimal places)",
	"stock_level.nonneg": "No negative stock",
	"stock_level.digits": "Enter a whole number",
	"stock_level.int32":  "Enter a whole number",
}

func ValidateProduct(f ProductForm) (models.NewProduct, error) {
	f.SKU = strings.TrimSpace(f.SKU)
	f.Name = strings.TrimSpace(f.Name)
	f.UnitPrice = strings.TrimSpace(f.UnitPrice)
	f.StockLevel = strings.TrimSpace(f.StockLevel)

	if err := check(f, productMessages); err != nil {
		return models.NewProduct{}, err
	}

	stock, _ := strconv.Atoi(f.StockLevel)
	return models.NewProduct{
		SKU:        f.SKU,
		Name:       f.Name,
		UnitPrice:  decimal.RequireFromString(f.UnitPrice),
		StockLevel: stock,
	}, nil
}
