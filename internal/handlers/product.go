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

type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, f validation.ProductForm) (*models.Product, error)
	Update(ctx context.Context, id int, f validation.ProductForm) error
	Delete(ctx context.Context, id int) error
}

type ProductHTTP struct {
	Svc    ProductService
	Status func() cache.MutationStatus
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, err := h.Svc.List(ctx)
	if err != nil {
		return respondError(c, l, "get_products_error", err)
	}
	return c.JSON(http.StatusOK, newListResponse(products, h.Status))
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req validation.ProductForm
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Create(ctx, req)
	if err != nil {
		return respondError(c, l, "create_product_error", err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req validation.ProductForm
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Update(ctx, id, req); err != nil {
		return respondError(c, l, "update_product_error", err)
	}

	l.Info("update_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return respondError(c, l, "delete_product_error", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
