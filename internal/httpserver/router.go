package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jortega/store-api/internal/logging"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	JWTSecret      []byte
	Logger         *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.Logger != nil {
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				req := c.Request()
				ctx := logging.IntoContext(req.Context(), d.Logger)
				c.SetRequest(req.WithContext(ctx))
				return next(c)
			}
		})
	}

	authMW := RequireAuth(d.JWTSecret)

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, authMW)
	products.PATCH("/:id", d.ProductHandler.UpdateProduct, authMW)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, authMW)

	cart := e.Group("/cart", authMW)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add-product", d.CartHandler.AddProduct)
	cart.PATCH("/update-cart", d.CartHandler.UpdateProduct)
	cart.DELETE("/:productId", d.CartHandler.RemoveProduct)
	cart.POST("/purchase", d.CartHandler.Purchase)

	orders := e.Group("/orders", authMW)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
}
