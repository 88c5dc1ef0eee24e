package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Skotchmaster/orders_admin/internal/models"
)

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, "list orders", http.MethodGet, "/orders/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, in models.NewOrder) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, "create order", http.MethodPost, "/orders/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id int, in models.NewOrder) error {
	return c.do(ctx, "update order", http.MethodPut, fmt.Sprintf("/orders/%d/", id), nil, in, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	return c.do(ctx, "delete order", http.MethodDelete, fmt.Sprintf("/orders/%d/", id), nil, nil, nil)
}

// ListOrderItems returns the items of one order, or every item when orderID
// is 0. The filter is also applied locally because the API may ignore it.
func (c *Client) ListOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	var q url.Values
	if orderID > 0 {
		q = url.Values{"order_id": {strconv.Itoa(orderID)}}
	}

	var out []models.OrderItem
	if err := c.do(ctx, "list order items", http.MethodGet, "/order-items/", q, nil, &out); err != nil {
		return nil, err
	}
	if orderID == 0 {
		return out, nil
	}

	filtered := out[:0]
	for _, it := range out {
		if it.OrderID == orderID {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (c *Client) CreateOrderItem(ctx context.Context, in models.NewOrderItem) (*models.OrderItem, error) {
	var out models.OrderItem
	if err := c.do(ctx, "create order item", http.MethodPost, "/order-items/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderItem(ctx context.Context, id int, in models.NewOrderItem) error {
	return c.do(ctx, "update order item", http.MethodPut, fmt.Sprintf("/order-items/%d/", id), nil, in, nil)
}

func (c *Client) DeleteOrderItem(ctx context.Context, id int) error {
	return c.do(ctx, "delete order item", http.MethodDelete, fmt.Sprintf("/order-items/%d/", id), nil, nil, nil)
}
