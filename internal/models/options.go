package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerOption is a customer as returned by the GraphQL search API.
type CustomerOption struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o CustomerOption) ToCustomer() Customer {
	return Customer{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (o CustomerOption) Label() string {
	return o.Name + " (" + o.Email + ")"
}

// ProductOption is a product as returned by the GraphQL search API.
type ProductOption struct {
	ID         int             `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	StockLevel int             `json:"stockLevel"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (o ProductOption) ToProduct() Product {
	return Product{
		ID:         o.ID,
		SKU:        o.SKU,
		Name:       o.Name,
		UnitPrice:  o.UnitPrice,
		StockLevel: o.StockLevel,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func (o ProductOption) Label() string {
	return o.Name + " (" + o.SKU + ")"
}
