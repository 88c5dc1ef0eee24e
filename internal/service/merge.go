package service

import (
	"github.com/Skotchmaster/orders_admin/internal/models"
)

// MergeLines folds lines that share a product into one item per product,
// in order of first appearance. Quantities add up; the first line's unit
// price is kept. Validated quantities are capped at
// validation.MaxQuantity, so the sums stay far from overflowing int.
func MergeLines(orderID int, lines []models.LineItem) []models.NewOrderItem {
	out := make([]models.NewOrderItem, 0, len(lines))
	index := make(map[int]int, len(lines))

	for _, l := range lines {
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, models.NewOrderItem{
			OrderID:   orderID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return out
}
