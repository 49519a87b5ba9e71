package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/freshkart/shopapi/pkg/middleware/auth"
)

type Deps struct {
	Auth    *AuthHTTP
	Catalog *CatalogHTTP
	Cart    *CartHTTP
	Order   *OrderHTTP
	Rating  *RatingHTTP
	Profile *ProfileHTTP

	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMw := middleware.NewTokenAuth(d.JWTSecret)

	auth := e.Group("/api/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/dealer/register", d.Auth.RegisterDealer)
	auth.POST("/dealer/login", d.Auth.LoginDealer)

	e.GET("/products", d.Catalog.GetProducts)
	e.GET("/products/:productId", d.Catalog.GetProduct)
	e.POST("/products", d.Catalog.CreateProduct)
	e.DELETE("/products/:productId", d.Catalog.DeleteProduct)
	e.GET("/products/:productId/ratings", d.Rating.GetRatings)

	cart := e.Group("/cart")
	cart.Use(authMw.RequireAuth)
	cart.GET("", d.Cart.GetCart)
	cart.POST("", d.Cart.AddToCart)
	cart.DELETE("/:productId", d.Cart.RemoveFromCart)
	cart.PATCH("/:productId", d.Cart.DecrementItem)

	order := e.Group("/order")
	order.Use(authMw.RequireAuth)
	order.GET("", d.Order.ListOrders)
	order.POST("", d.Order.PlaceOrder)
	order.GET("/:orderId", d.Order.GetOrder)
	order.PATCH("/:orderId/increase/:productId", d.Order.IncreaseItem)
	order.PATCH("/:orderId/decrease/:productId", d.Order.DecreaseItem)
	order.PATCH("/:orderId/place", d.Order.MarkPlaced)

	e.POST("/products/:productId/rate", d.Rating.Rate, authMw.RequireAuth)

	e.GET("/profile", d.Profile.Profile, authMw.RequireAuth)
	e.GET("/dealer/profile", d.Profile.DealerProfile, authMw.RequireAuth)
}
