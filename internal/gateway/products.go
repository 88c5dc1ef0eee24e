package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Skotchmaster/orders_admin/internal/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, "list products", http.MethodGet, "/products/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in models.NewProduct) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, "create product", http.MethodPost, "/products/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, in models.NewProduct) error {
	return c.do(ctx, "update product", http.MethodPut, fmt.Sprintf("/products/%d/", id), nil, in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, "delete product", http.MethodDelete, fmt.Sprintf("/products/%d/", id), nil, nil, nil)
}
