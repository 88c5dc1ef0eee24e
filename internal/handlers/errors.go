package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/orders_admin/internal/gateway"
	"github.com/Skotchmaster/orders_admin/internal/service"
	"github.com/Skotchmaster/orders_admin/internal/validation"
)

type fieldsResponse struct {
	Status string            `json:"status"`
	Fields map[string]string `json:"fields"`
}

type partialResponse struct {
	Status    string             `json:"status"`
	Message   string             `json:"message"`
	OrderID   int                `json:"order_id"`
	Phase     service.Phase      `json:"phase"`
	Succeeded []service.OpResult `json:"succeeded"`
	Failed    []service.OpResult `json:"failed"`
}

// respondError maps service and gateway errors onto HTTP responses and logs
// them under event.
func respondError(c echo.Context, l *slog.Logger, event string, err error) error {
	var (
		formErr    validation.Errors
		partialErr *service.PartialFailureError
		apiErr     *gateway.ValidationError
		timeoutErr *gateway.TimeoutError
		netErr     *gateway.NetworkError
	)

	switch {
	case errors.As(err, &formErr):
		l.Warn(event, "status", 400, "reason", "invalid form", "error", err)
		return c.JSON(http.StatusBadRequest, fieldsResponse{Status: "error", Fields: formErr.Fields()})

	case errors.As(err, &partialErr):
		l.Error(event, "status", 502, "reason", "partial failure", "phase", partialErr.Phase, "error", err)
		return c.JSON(http.StatusBadGateway, partialResponse{
			Status:    "error",
			Message:   partialErr.Error(),
			OrderID:   partialErr.OrderID,
			Phase:     partialErr.Phase,
			Succeeded: nonNil(partialErr.Succeeded()),
			Failed:    nonNil(partialErr.Failed()),
		})

	case errors.As(err, &apiErr):
		field := apiErr.Field
		if field == "" {
			field = "non_field_errors"
		}
		l.Warn(event, "status", 400, "reason", "rejected by api", "error", err)
		return c.JSON(http.StatusBadRequest, fieldsResponse{Status: "error", Fields: map[string]string{field: apiErr.Message}})

	case errors.As(err, &timeoutErr):
		l.Error(event, "status", 504, "reason", "api timeout", "error", err)
		return echo.NewHTTPError(http.StatusGatewayTimeout, "api request timed out")

	case errors.As(err, &netErr):
		if netErr.NotFound() {
			l.Warn(event, "status", 404, "reason", "not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		}
		l.Error(event, "status", 502, "reason", "api error", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "api request failed")
	}

	l.Error(event, "status", 500, "reason", "internal error", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func parseID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return id, nil
}
