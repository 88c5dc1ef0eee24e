package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/service"
	"github.com/Skotchmaster/orders_admin/internal/uistate"
	"github.com/Skotchmaster/orders_admin/pkg/logging"
)

// UIHTTP serves the per-session console state. It never writes entities
// except through SubmitDraft.
type UIHTTP struct {
	Orders OrderService
	Lookup Lookup
}

type addLineRequest struct {
	ProductID int `json:"product"`
}

type setCustomerRequest struct {
	CustomerID int `json:"customer"`
}

type pickerRequest struct {
	Query string `json:"query"`
}

func session(c echo.Context) (*uistate.Session, error) {
	s := uistate.FromContext(c)
	if s == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "no ui session")
	}
	return s, nil
}

func (h *UIHTTP) GetScreen(c echo.Context) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	entity, ok := uistate.ParseEntity(c.Param("entity"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown entity")
	}
	return c.JSON(http.StatusOK, s.Screen(entity))
}

// PatchScreen updates a list screen. Selecting an order for editing loads it
// into the session's draft.
func (h *UIHTTP) PatchScreen(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ui.patch_screen")

	s, err := session(c)
	if err != nil {
		return err
	}
	entity, ok := uistate.ParseEntity(c.Param("entity"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown entity")
	}

	var req uistate.ScreenPatch
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_screen_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if entity == uistate.EntityOrders && req.EditID != nil && *req.EditID > 0 {
		orders, err := h.Orders.List(ctx)
		if err != nil {
			return respondError(c, l, "patch_screen_error", err)
		}
		var found *models.Order
		for i := range orders {
			if orders[i].ID == *req.EditID {
				found = &orders[i]
				break
			}
		}
		if found == nil {
			l.Warn("patch_screen_error", "status", 404, "reason", "order not found", "order_id", *req.EditID)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		s.Draft.Load(*found)
	}

	return c.JSON(http.StatusOK, s.PatchScreen(entity, req))
}

func (h *UIHTTP) GetDraft(c echo.Context) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Draft.View())
}

func (h *UIHTTP) PutDraft(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "ui.put_draft")

	s, err := session(c)
	if err != nil {
		return err
	}
	var req uistate.DraftHeader
	if err := c.Bind(&req); err != nil {
		l.Warn("put_draft_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	s.Draft.SetHeader(req)
	return c.JSON(http.StatusOK, s.Draft.View())
}

func (h *UIHTTP) DeleteDraft(c echo.Context) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	s.ResetOrderForm(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

func (h *UIHTTP) PutCustomer(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "ui.put_customer")

	s, err := session(c)
	if err != nil {
		return err
	}
	var req setCustomerRequest
	if err := c.Bind(&req); err != nil || req.CustomerID < 1 {
		l.Warn("put_customer_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "customer must be a positive integer")
	}
	s.Draft.SetCustomer(req.CustomerID)
	return c.JSON(http.StatusOK, s.Draft.View())
}

// AddLine appends a draft line for a picked product. The product comes from
// the picker's current results when present, otherwise from a lookup.
func (h *UIHTTP) AddLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ui.add_line")

	s, err := session(c)
	if err != nil {
		return err
	}
	var req addLineRequest
	if err := c.Bind(&req); err != nil || req.ProductID < 1 {
		l.Warn("add_line_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "product must be a positive integer")
	}

	var picked *models.ProductOption
	for _, p := range s.Products.Results() {
		if p.ID == req.ProductID {
			picked = &p
			break
		}
	}
	if picked == nil {
		picked, err = h.Lookup.Product(ctx, req.ProductID)
		if err != nil {
			return respondError(c, l, "add_line_error", err)
		}
		if picked == nil {
			l.Warn("add_line_error", "status", 404, "reason", "product not found", "product_id", req.ProductID)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
	}

	s.Draft.AddProduct(*picked)
	return c.JSON(http.StatusCreated, s.Draft.View())
}

func lineIndex(c echo.Context) (int, error) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "index must be a non-negative integer")
	}
	return i, nil
}

func (h *UIHTTP) PatchLine(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "ui.patch_line")

	s, err := session(c)
	if err != nil {
		return err
	}
	i, err := lineIndex(c)
	if err != nil {
		return err
	}
	var req uistate.LinePatch
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_line_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := s.Draft.UpdateLine(i, req); err != nil {
		if errors.Is(err, uistate.ErrLineIndex) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, s.Draft.View())
}

func (h *UIHTTP) DeleteLine(c echo.Context) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	i, err := lineIndex(c)
	if err != nil {
		return err
	}
	if err := s.Draft.RemoveLine(i); err != nil {
		if errors.Is(err, uistate.ErrLineIndex) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, s.Draft.View())
}

func (h *UIHTTP) PutPicker(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "ui.put_picker")

	s, err := session(c)
	if err != nil {
		return err
	}
	picker, ok := uistate.ParsePicker(c.Param("picker"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown picker")
	}
	var req pickerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("put_picker_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	s.SetPickerQuery(c.Request().Context(), picker, req.Query)
	return c.JSON(http.StatusAccepted, s.PickerState(picker))
}

func (h *UIHTTP) GetPicker(c echo.Context) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	picker, ok := uistate.ParsePicker(c.Param("picker"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown picker")
	}
	return c.JSON(http.StatusOK, s.PickerState(picker))
}

// SubmitDraft submits the session's draft. The draft is cleared only when
// every request succeeded; otherwise it stays for another attempt.
func (h *UIHTTP) SubmitDraft(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ui.submit_draft")

	s, err := session(c)
	if err != nil {
		return err
	}

	orderID := s.Draft.EditingOrderID()
	res, err := h.Orders.Submit(ctx, orderID, s.Draft.Form())
	if err != nil {
		var partial *service.PartialFailureError
		if errors.As(err, &partial) && partial.OrderID > 0 && orderID == 0 {
			s.Draft.SetEditing(partial.OrderID)
			l.Warn("submit_draft_partial", "order_id", partial.OrderID, "reason", "header persisted, draft switched to edit")
		}
		return respondError(c, l, "submit_draft_error", err)
	}

	s.ResetOrderForm(ctx)
	l.Info("submit_draft_success", "order_id", res.OrderID, "created", res.Created)

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, res)
}
