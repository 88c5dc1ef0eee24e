package uistate

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CookieName = "admin_session"
	contextKey = "ui_session"
)

// Middleware binds the caller's session to the echo context, issuing a new
// session cookie when none or an invalid one is presented.
func Middleware(r *Registry, maxAge time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(CookieName); err == nil {
				if u, err := uuid.Parse(ck.Value); err == nil {
					id = u.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Secure:   c.Scheme() == "https",
					MaxAge:   int(maxAge / time.Second),
				})
			}
			c.Set(contextKey, r.Get(id))
			return next(c)
		}
	}
}

// FromContext returns the session bound by Middleware, or nil.
func FromContext(c echo.Context) *Session {
	s, _ := c.Get(contextKey).(*Session)
	return s
}
