package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/orders_admin/internal/cache"
	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/service"
	"github.com/Skotchmaster/orders_admin/internal/submissionlog"
	"github.com/Skotchmaster/orders_admin/internal/util"
	"github.com/Skotchmaster/orders_admin/internal/validation"
	"github.com/Skotchmaster/orders_admin/pkg/logging"
)

type OrderService interface {
	List(ctx context.Context) ([]models.Order, error)
	Submit(ctx context.Context, orderID int, f validation.OrderForm) (*service.SubmitResult, error)
	Delete(ctx context.Context, id int) error
	Items(ctx context.Context, orderID int) ([]models.OrderItem, error)
	Submissions(ctx context.Context, orderID, limit int) ([]submissionlog.Entry, error)
}

type OrderHTTP struct {
	Svc    OrderService
	Status func() cache.MutationStatus
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	orders, err := h.Svc.List(ctx)
	if err != nil {
		return respondError(c, l, "get_orders_error", err)
	}
	return c.JSON(http.StatusOK, newListResponse(orders, h.Status))
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req validation.OrderForm
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Submit(ctx, 0, req)
	if err != nil {
		return respondError(c, l, "create_order_error", err)
	}

	l.Info("create_order_success", "order_id", res.OrderID)
	return c.JSON(http.StatusCreated, res)
}

func (h *OrderHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_order")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req validation.OrderForm
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Submit(ctx, id, req)
	if err != nil {
		return respondError(c, l, "update_order_error", err)
	}

	l.Info("update_order_success", "order_id", id)
	return c.JSON(http.StatusOK, res)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("delete_order_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return respondError(c, l, "delete_order_error", err)
	}

	l.Info("delete_order_success", "order_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHTTP) GetOrderItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order_items")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_order_items_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items, err := h.Svc.Items(ctx, id)
	if err != nil {
		return respondError(c, l, "get_order_items_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": nonNil(items)})
}

func (h *OrderHTTP) GetSubmissions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_submissions")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_submissions_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit := util.Limit(c.QueryParam("limit"), submissionlog.DefaultListLimit)
	entries, err := h.Svc.Submissions(ctx, id, limit)
	if err != nil {
		l.Error("get_submissions_error", "status", 500, "reason", "cannot read submission log", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read submission log")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": nonNil(entries)})
}
