package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/orders_admin/internal/cache"
	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/validation"
	"github.com/Skotchmaster/orders_admin/pkg/logging"
)

type CustomerService interface {
	List(ctx context.Context) ([]models.Customer, error)
	Create(ctx context.Context, f validation.CustomerForm) (*models.Customer, error)
	Update(ctx context.Context, id int, f validation.CustomerForm) error
	Delete(ctx context.Context, id int) error
}

type CustomerHTTP struct {
	Svc    CustomerService
	Status func() cache.MutationStatus
}

func (h *CustomerHTTP) GetCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get_customers")

	customers, err := h.Svc.List(ctx)
	if err != nil {
		return respondError(c, l, "get_customers_error", err)
	}
	return c.JSON(http.StatusOK, newListResponse(customers, h.Status))
}

func (h *CustomerHTTP) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.create_customer")

	var req validation.CustomerForm
	if err := c.Bind(&req); err != nil {
		l.Warn("create_customer_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, err := h.Svc.Create(ctx, req)
	if err != nil {
		return respondError(c, l, "create_customer_error", err)
	}

	l.Info("create_customer_success", "customer_id", customer.ID)
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHTTP) UpdateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.update_customer")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("update_customer_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req validation.CustomerForm
	if err := c.Bind(&req); err != nil {
		l.Warn("update_customer_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Update(ctx, id, req); err != nil {
		return respondError(c, l, "update_customer_error", err)
	}

	l.Info("update_customer_success", "customer_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHTTP) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.delete_customer")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("delete_customer_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return respondError(c, l, "delete_customer_error", err)
	}

	l.Info("delete_customer_success", "customer_id", id)
	return c.NoContent(http.StatusNoContent)
}
