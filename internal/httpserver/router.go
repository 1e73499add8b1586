package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayahstore/storefront-api/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	OrderHandler   *OrderHTTP
	ContactHandler *ContactHTTP
	StatsHandler   *StatsHTTP
	SearchHandler  *SearchHTTP
	Auth           *auth.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API is running...")
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.POST("/logout", d.AuthHandler.Logout)

	products := api.Group("/products")
	products.GET("/search", d.SearchHandler.SearchProducts)
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	productAdmin := products.Group("", d.Auth.RequireAuth, d.Auth.RequireAdmin)
	productAdmin.POST("", d.ProductHandler.CreateProduct)
	productAdmin.PUT("/:id", d.ProductHandler.UpdateProduct)
	productAdmin.DELETE("/:id", d.ProductHandler.DeleteProduct)

	orders := api.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder, d.Auth.OptionalAuth)
	orders.GET("/my-orders", d.OrderHandler.GetMyOrders, d.Auth.RequireAuth)
	orders.GET("/:id", d.OrderHandler.GetOrder, d.Auth.RequireAuth)

	orderAdmin := orders.Group("", d.Auth.RequireAuth, d.Auth.RequireAdmin)
	orderAdmin.GET("", d.OrderHandler.GetAllOrders)
	orderAdmin.PATCH("/:id/status", d.OrderHandler.UpdateOrderStatus)
	orderAdmin.DELETE("/:id", d.OrderHandler.DeleteOrder)

	contact := api.Group("/contact")
	contact.POST("", d.ContactHandler.CreateMessage)

	contactAdmin := contact.Group("", d.Auth.RequireAuth, d.Auth.RequireAdmin)
	contactAdmin.GET("", d.ContactHandler.GetMessages)
	contactAdmin.GET("/:id", d.ContactHandler.GetMessage)
	contactAdmin.DELETE("/:id", d.ContactHandler.DeleteMessage)

	stats := api.Group("/stats", d.Auth.RequireAuth, d.Auth.RequireAdmin)
	stats.GET("", d.StatsHandler.GetDashboardStats)
}
