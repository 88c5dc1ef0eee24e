package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/orders_admin/internal/gateway"
	"github.com/Skotchmaster/orders_admin/internal/handlers"
	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/service"
	"github.com/Skotchmaster/orders_admin/internal/submissionlog"
	"github.com/Skotchmaster/orders_admin/internal/uistate"
	"github.com/Skotchmaster/orders_admin/internal/validation"
	"github.com/Skotchmaster/orders_admin/pkg/middleware/csrf"
)

type stubOrders struct {
	forms []validation.OrderForm
	ids   []int
	err   error
}

func (s *stubOrders) List(ctx context.Context) ([]models.Order, error) {
	return []models.Order{{
		ID:             12,
		Number:         "ORD-12",
		CustomerID:     3,
		ShippingMethod: models.ShippingStandard,
		ShippingCost:   decimal.RequireFromString("1"),
		Status:         models.OrderStatusPending,
		Items:          []models.OrderItem{{ID: 1, OrderID: 12, ProductID: 4, Quantity: 2, UnitPrice: decimal.RequireFromString("3")}},
	}}, nil
}

func (s *stubOrders) Submit(ctx context.Context, orderID int, f validation.OrderForm) (*service.SubmitResult, error) {
	s.ids = append(s.ids, orderID)
	s.forms = append(s.forms, f)
	if s.err != nil {
		return nil, s.err
	}
	return &service.SubmitResult{OrderID: max(orderID, 1), Created: orderID == 0}, nil
}

func (s *stubOrders) Delete(ctx context.Context, id int) error { return nil }
func (s *stubOrders) Items(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	return nil, nil
}
func (s *stubOrders) Submissions(ctx context.Context, orderID, limit int) ([]submissionlog.Entry, error) {
	return nil, nil
}

type stubLookup struct{}

func (stubLookup) SearchCustomers(ctx context.Context, q string, limit int) ([]models.CustomerOption, error) {
	return []models.CustomerOption{{ID: 1, Name: "Ann", Email: "ann@example.com"}}, nil
}
func (stubLookup) Customer(ctx context.Context, id int) (*models.CustomerOption, error) {
	return nil, nil
}
func (stubLookup) SearchProducts(ctx context.Context, q string, limit int) ([]models.ProductOption, error) {
	return []models.ProductOption{{ID: 4, Name: "Mug", SKU: "MUG", UnitPrice: decimal.RequireFromString("4.5")}}, nil
}
func (stubLookup) Product(ctx context.Context, id int) (*models.ProductOption, error) {
	if id != 4 {
		return nil, nil
	}
	return &models.ProductOption{ID: 4, Name: "Mug", SKU: "MUG", UnitPrice: decimal.RequireFromString("4.5")}, nil
}

type client struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	if tok, ok := c.cookies["csrftoken"]; ok {
		req.Header.Set("X-CSRFToken", tok.Value)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func newTestServer(t *testing.T, orders *stubOrders) *client {
	t.Helper()
	sessions := uistate.NewRegistry(stubLookup{}, uistate.Options{Delay: time.Millisecond, Limit: 5})
	cfg := csrf.DefaultConfig()
	cfg.EnforceSameOrigin = false

	e := echo.New()
	Register(e, &Deps{
		CustomerHandler: &handlers.CustomerHTTP{},
		ProductHandler:  &handlers.ProductHTTP{},
		OrderHandler:    &handlers.OrderHTTP{Svc: orders},
		SearchHandler:   &handlers.SearchHTTP{Lookup: stubLookup{}},
		UIHandler:       &handlers.UIHTTP{Orders: orders, Lookup: stubLookup{}},
		Sessions:        sessions,
		SessionTTL:      time.Hour,
		CSRF:            cfg,
	})
	return &client{t: t, e: e, cookies: map[string]*http.Cookie{}}
}

func draftOf(t *testing.T, rec *httptest.ResponseRecorder) uistate.DraftView {
	t.Helper()
	var v uistate.DraftView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	c := newTestServer(t, &stubOrders{})
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health/ready", "").Code)
}

func TestDraftFlow(t *testing.T) {
	orders := &stubOrders{}
	c := newTestServer(t, orders)

	rec := c.do(http.MethodGet, "/api/v1/ui/orders/draft", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, c.cookies, uistate.CookieName)
	require.Contains(t, c.cookies, "csrftoken")

	rec = c.do(http.MethodPut, "/api/v1/ui/orders/draft", `{"number":"ORD-1","date_and_time":"2024-05-01T10:30","shipping_method":"express","shipping_cost":"2.00","status":"pending"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPut, "/api/v1/ui/orders/draft/customer", `{"customer":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/api/v1/ui/orders/draft/lines", `{"product":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = c.do(http.MethodPost, "/api/v1/ui/orders/draft/lines", `{"product":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = c.do(http.MethodPatch, "/api/v1/ui/orders/draft/lines/1", `{"quantity":"3"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v := draftOf(t, rec)
	require.Len(t, v.Items, 2)
	assert.Equal(t, models.DraftLineItem{ProductID: 4, Quantity: "3", UnitPrice: "4.50"}, v.Items[1])
	assert.Equal(t, 3, v.CustomerID)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, "/api/v1/ui/orders/draft/lines/5", "").Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/v1/ui/orders/draft/lines", `{"product":8}`).Code)

	rec = c.do(http.MethodPost, "/api/v1/ui/orders/draft/submit", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, orders.forms, 1)
	assert.Equal(t, 0, orders.ids[0])
	assert.Equal(t, "ORD-1", orders.forms[0].Number)
	assert.Len(t, orders.forms[0].Items, 2)

	v = draftOf(t, c.do(http.MethodGet, "/api/v1/ui/orders/draft", ""))
	assert.Empty(t, v.Items)
	assert.Empty(t, v.Number)
}

func TestDraftKeptOnFailure(t *testing.T) {
	orders := &stubOrders{err: &service.PartialFailureError{OrderID: 1, Phase: service.PhaseCreate}}
	c := newTestServer(t, orders)

	c.do(http.MethodGet, "/api/v1/ui/orders/draft", "")
	c.do(http.MethodPost, "/api/v1/ui/orders/draft/lines", `{"product":4}`)

	rec := c.do(http.MethodPost, "/api/v1/ui/orders/draft/submit", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	v := draftOf(t, c.do(http.MethodGet, "/api/v1/ui/orders/draft", ""))
	assert.Len(t, v.Items, 1)
}

func TestRetryAfterPartialCreateEditsOrder(t *testing.T) {
	orders := &stubOrders{err: &service.PartialFailureError{
		OrderID: 42,
		Phase:   service.PhaseCreate,
		Ops:     []service.OpResult{{Kind: service.OpCreateItem, ProductID: 4, Error: "api request failed"}},
	}}
	c := newTestServer(t, orders)

	c.do(http.MethodGet, "/api/v1/ui/orders/draft", "")
	c.do(http.MethodPost, "/api/v1/ui/orders/draft/lines", `{"product":4}`)

	rec := c.do(http.MethodPost, "/api/v1/ui/orders/draft/submit", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	v := draftOf(t, c.do(http.MethodGet, "/api/v1/ui/orders/draft", ""))
	assert.Equal(t, 42, v.EditingID)
	assert.Len(t, v.Items, 1)

	orders.err = nil
	rec = c.do(http.MethodPost, "/api/v1/ui/orders/draft/submit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{0, 42}, orders.ids)

	v = draftOf(t, c.do(http.MethodGet, "/api/v1/ui/orders/draft", ""))
	assert.Zero(t, v.EditingID)
	assert.Empty(t, v.Items)
}

func TestHeaderFailureKeepsCreateMode(t *testing.T) {
	orders := &stubOrders{err: &gateway.TimeoutError{Op: "create order"}}
	c := newTestServer(t, orders)

	c.do(http.MethodGet, "/api/v1/ui/orders/draft", "")
	c.do(http.MethodPost, "/api/v1/ui/orders/draft/lines", `{"product":4}`)

	rec := c.do(http.MethodPost, "/api/v1/ui/orders/draft/submit", "")
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)

	v := draftOf(t, c.do(http.MethodGet, "/api/v1/ui/orders/draft", ""))
	assert.Zero(t, v.EditingID)
}

func TestEditLoadsDraft(t *testing.T) {
	orders := &stubOrders{}
	c := newTestServer(t, orders)

	rec := c.do(http.MethodGet, "/api/v1/ui/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPatch, "/api/v1/ui/orders", `{"edit_id":12}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"show_add_form":false,"edit_id":12,"search":""}`, rec.Body.String())

	v := draftOf(t, c.do(http.MethodGet, "/api/v1/ui/orders/draft", ""))
	assert.Equal(t, 12, v.EditingID)
	assert.Equal(t, []models.DraftLineItem{{ProductID: 4, Quantity: "2", UnitPrice: "3.00"}}, v.Items)

	c.do(http.MethodPost, "/api/v1/ui/orders/draft/submit", "")
	assert.Equal(t, []int{12}, orders.ids)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPatch, "/api/v1/ui/orders", `{"edit_id":99}`).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/ui/widgets", "").Code)
}

func TestMutationsRequireCSRF(t *testing.T) {
	c := newTestServer(t, &stubOrders{})
	c.do(http.MethodGet, "/api/v1/ui/orders/draft", "")
	delete(c.cookies, "csrftoken")

	rec := c.do(http.MethodPost, "/api/v1/ui/orders/draft/lines", `{"product":4}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPicker(t *testing.T) {
	c := newTestServer(t, &stubOrders{})
	c.do(http.MethodGet, "/api/v1/ui/orders/draft", "")

	rec := c.do(http.MethodPut, "/api/v1/ui/pickers/products", `{"query":"mug"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		rec := c.do(http.MethodGet, "/api/v1/ui/pickers/products", "")
		var st struct {
			Results []models.ProductOption `json:"results"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &st)
		return len(st.Results) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/ui/pickers/widgets", "").Code)
}

func TestSearch(t *testing.T) {
	c := newTestServer(t, &stubOrders{})

	rec := c.do(http.MethodGet, "/api/v1/search/customers?q=ann", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ann@example.com")

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/search/customers/5", "").Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/search/products/4", "").Code)
}
