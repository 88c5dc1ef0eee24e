package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/orders_admin/internal/cache"
	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/service"
	"github.com/Skotchmaster/orders_admin/internal/submissionlog"
	"github.com/Skotchmaster/orders_admin/internal/validation"
)

type fakeOrders struct {
	orders    []models.Order
	submitted []validation.OrderForm
	ids       []int
	err       error
}

func (f *fakeOrders) List(ctx context.Context) ([]models.Order, error) { return f.orders, nil }

func (f *fakeOrders) Submit(ctx context.Context, orderID int, form validation.OrderForm) (*service.SubmitResult, error) {
	f.ids = append(f.ids, orderID)
	f.submitted = append(f.submitted, form)
	if f.err != nil {
		return nil, f.err
	}
	id := orderID
	if id == 0 {
		id = 99
	}
	return &service.SubmitResult{OrderID: id, Created: orderID == 0}, nil
}

func (f *fakeOrders) Delete(ctx context.Context, id int) error { return f.err }

func (f *fakeOrders) Items(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	return nil, nil
}

func (f *fakeOrders) Submissions(ctx context.Context, orderID, limit int) ([]submissionlog.Entry, error) {
	return []submissionlog.Entry{{OrderID: orderID, Status: submissionlog.StatusCompleted}}, nil
}

func TestOrderHTTP_GetOrders(t *testing.T) {
	h := &OrderHTTP{
		Svc:    &fakeOrders{orders: []models.Order{{ID: 1}, {ID: 2}, {ID: 3}}},
		Status: func() cache.MutationStatus { return cache.MutationStatus{Pending: 1} },
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?page=2&size=2", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetOrders(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data     []models.Order       `json:"data"`
		Meta     map[string]any       `json:"meta"`
		Mutation cache.MutationStatus `json:"mutation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, 3, body.Data[2].ID)
	assert.EqualValues(t, 3, body.Meta["total"])
	assert.Equal(t, 1, body.Mutation.Pending)
}

func TestOrderHTTP_GetOrders_WholeCollection(t *testing.T) {
	orders := make([]models.Order, 120)
	for i := range orders {
		orders[i].ID = i + 1
	}
	h := &OrderHTTP{Svc: &fakeOrders{orders: orders}}

	e := echo.New()
	for _, target := range []string{"/api/v1/orders", "/api/v1/orders?page=184467440737095518&size=50"} {
		rec := httptest.NewRecorder()
		require.NoError(t, h.GetOrders(e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data []models.Order `json:"data"`
			Meta map[string]any `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Data, 120, target)
		assert.EqualValues(t, 120, body.Meta["total"])
		assert.NotContains(t, body.Meta, "page")
	}
}

func TestOrderHTTP_CreateOrder_ValidationError(t *testing.T) {
	svc := &fakeOrders{err: validation.Errors{{Field: "items", Message: "At least one item is required"}}}
	h := &OrderHTTP{Svc: svc}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"number":"A","items":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.CreateOrder(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":"error","fields":{"items":"At least one item is required"}}`, rec.Body.String())
	assert.Equal(t, []int{0}, svc.ids)
	assert.Equal(t, "A", svc.submitted[0].Number)
}

func TestOrderHTTP_UpdateOrder(t *testing.T) {
	svc := &fakeOrders{}
	h := &OrderHTTP{Svc: svc}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"number":"A"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.UpdateOrder(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{7}, svc.ids)

	c = e.NewContext(httptest.NewRequest(http.MethodPut, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := h.UpdateOrder(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
