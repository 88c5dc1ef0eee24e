package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/typeahead"
	"github.com/Skotchmaster/orders_admin/internal/util"
	"github.com/Skotchmaster/orders_admin/pkg/logging"
)

// Lookup is the GraphQL search backend.
type Lookup interface {
	SearchCustomers(ctx context.Context, q string, limit int) ([]models.CustomerOption, error)
	Customer(ctx context.Context, id int) (*models.CustomerOption, error)
	SearchProducts(ctx context.Context, q string, limit int) ([]models.ProductOption, error)
	Product(ctx context.Context, id int) (*models.ProductOption, error)
}

type SearchHTTP struct {
	Lookup Lookup
	Limit  int
}

func (h *SearchHTTP) limit(c echo.Context) int {
	def := h.Limit
	if def <= 0 {
		def = typeahead.DefaultLimit
	}
	return util.Limit(c.QueryParam("limit"), def)
}

func (h *SearchHTTP) SearchCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.search_customers")

	found, err := h.Lookup.SearchCustomers(ctx, c.QueryParam("q"), h.limit(c))
	if err != nil {
		return respondError(c, l, "search_customers_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": nonNil(found)})
}

func (h *SearchHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.search_products")

	found, err := h.Lookup.SearchProducts(ctx, c.QueryParam("q"), h.limit(c))
	if err != nil {
		return respondError(c, l, "search_products_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": nonNil(found)})
}

func (h *SearchHTTP) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.get_customer")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_customer_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.Lookup.Customer(ctx, id)
	if err != nil {
		return respondError(c, l, "get_customer_error", err)
	}
	if customer == nil {
		l.Warn("get_customer_error", "status", 404, "reason", "customer not found", "customer_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *SearchHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.get_product")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.Lookup.Product(ctx, id)
	if err != nil {
		return respondError(c, l, "get_product_error", err)
	}
	if product == nil {
		l.Warn("get_product_error", "status", 404, "reason", "product not found", "product_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, product)
}
