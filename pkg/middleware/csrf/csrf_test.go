package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	e.Use(Middleware(DefaultConfig()))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/api/v1/orders", ok)
	e.POST("/api/v1/orders", ok)
	return e
}

func TestMiddleware_GetIssuesToken(t *testing.T) {
	t.Parallel()

	e := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	token := rec.Header().Get("X-CSRFToken")
	require.NotEmpty(t, token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "csrftoken", cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
}

func TestMiddleware_Post(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		origin string
		want   int
	}{
		{name: "matching token", header: "tok", origin: "http://example.com", want: http.StatusNoContent},
		{name: "missing token", header: "", origin: "http://example.com", want: http.StatusForbidden},
		{name: "wrong token", header: "other", origin: "http://example.com", want: http.StatusForbidden},
		{name: "foreign origin", header: "tok", origin: "http://evil.test", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestServer()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
			req.AddCookie(&http.Cookie{Name: "csrftoken", Value: "tok"})
			req.Header.Set("Origin", tt.origin)
			if tt.header != "" {
				req.Header.Set("X-CSRFToken", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
