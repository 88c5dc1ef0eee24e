package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Skotchmaster/orders_admin/internal/models"
)

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	if err := c.do(ctx, "list customers", http.MethodGet, "/customers/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, in models.NewCustomer) (*models.Customer, error) {
	var out models.Customer
	if err := c.do(ctx, "create customer", http.MethodPost, "/customers/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id int, in models.NewCustomer) error {
	return c.do(ctx, "update customer", http.MethodPut, fmt.Sprintf("/customers/%d/", id), nil, in, nil)
}

func (c *Client) DeleteCustomer(ctx context.Context, id int) error {
	return c.do(ctx, "delete customer", http.MethodDelete, fmt.Sprintf("/customers/%d/", id), nil, nil, nil)
}
