package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/orders_admin/internal/handlers"
	"github.com/Skotchmaster/orders_admin/internal/uistate"
	"github.com/Skotchmaster/orders_admin/pkg/middleware/csrf"
)

type Deps struct {
	CustomerHandler *handlers.CustomerHTTP
	ProductHandler  *handlers.ProductHTTP
	OrderHandler    *handlers.OrderHTTP
	SearchHandler   *handlers.SearchHTTP
	UIHandler       *handlers.UIHTTP
	Sessions        *uistate.Registry
	SessionTTL      time.Duration
	CSRF            csrf.Config
	Ready           func() error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			}
		}
		return c.NoContent(http.StatusOK)
	})

	v1 := e.Group("/api/v1", csrf.Middleware(d.CSRF))

	customers := v1.Group("/customers")
	customers.GET("", d.CustomerHandler.GetCustomers)
	customers.POST("", d.CustomerHandler.CreateCustomer)
	customers.PUT("/:id", d.CustomerHandler.UpdateCustomer)
	customers.DELETE("/:id", d.CustomerHandler.DeleteCustomer)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PUT("/:id", d.ProductHandler.UpdateProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)

	orders := v1.Group("/orders")
	orders.GET("", d.OrderHandler.GetOrders)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.PUT("/:id", d.OrderHandler.UpdateOrder)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder)
	orders.GET("/:id/items", d.OrderHandler.GetOrderItems)
	orders.GET("/:id/submissions", d.OrderHandler.GetSubmissions)

	search := v1.Group("/search")
	search.GET("/customers", d.SearchHandler.SearchCustomers)
	search.GET("/customers/:id", d.SearchHandler.GetCustomer)
	search.GET("/products", d.SearchHandler.SearchProducts)
	search.GET("/products/:id", d.SearchHandler.GetProduct)

	ui := v1.Group("/ui", uistate.Middleware(d.Sessions, d.SessionTTL))
	ui.GET("/orders/draft", d.UIHandler.GetDraft)
	ui.PUT("/orders/draft", d.UIHandler.PutDraft)
	ui.DELETE("/orders/draft", d.UIHandler.DeleteDraft)
	ui.PUT("/orders/draft/customer", d.UIHandler.PutCustomer)
	ui.POST("/orders/draft/lines", d.UIHandler.AddLine)
	ui.PATCH("/orders/draft/lines/:index", d.UIHandler.PatchLine)
	ui.DELETE("/orders/draft/lines/:index", d.UIHandler.DeleteLine)
	ui.POST("/orders/draft/submit", d.UIHandler.SubmitDraft)
	ui.GET("/pickers/:picker", d.UIHandler.GetPicker)
	ui.PUT("/pickers/:picker", d.UIHandler.PutPicker)
	ui.GET("/:entity", d.UIHandler.GetScreen)
	ui.PATCH("/:entity", d.UIHandler.PatchScreen)
}
