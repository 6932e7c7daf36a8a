package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intania/shop-backend/internal/handlers"
	authmw "github.com/intania/shop-backend/internal/middleware/auth"
	"github.com/intania/shop-backend/internal/service/token"
)

type Deps struct {
	Tokens          *token.Service
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	FavoriteHandler *handlers.FavoriteHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	admin := v1.Group("/products", authmw.RequireLogin(d.Tokens), authmw.AdminOnly())
	admin.POST("", d.ProductHandler.CreateProduct)
	admin.PUT("/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/:id", d.ProductHandler.DeleteProduct)

	cart := v1.Group("/cart", authmw.RequireLogin(d.Tokens))
	cart.PUT("/items", d.CartHandler.AddItem)

	favorites := v1.Group("/favorites", authmw.RequireLogin(d.Tokens))
	favorites.PUT("", d.FavoriteHandler.AddFavorite)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Handler)
	}
}
