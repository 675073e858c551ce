package router

import (
	"github.com/labstack/echo/v4"

	"shopLens/internal/middleware"
	"shopLens/internal/rest"
)

func SetupSearchRoutes(api *echo.Group, handler *rest.SearchHandler) {
	search := api.Group("/search")

	search.POST("/enhanced", handler.Search)
}

func SetupAuthRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)

	auth.GET("/me", handler.GetProfile, authRequired)
	auth.POST("/logout", handler.Logout, authRequired)
}

func SetupCartRoutes(api *echo.Group, handler *rest.CartHandler) {
	cart := api.Group("/cart", middleware.AuthMiddleware())
	cart.GET("", handler.GetCart)
	cart.POST("/add", handler.AddItem)
	cart.PUT("/items/:id", handler.UpdateQuantity)
	cart.DELETE("/items/:id", handler.RemoveItem)
	cart.DELETE("/clear", handler.ClearCart)

	orders := api.Group("/orders", middleware.AuthMiddleware())
	orders.POST("/checkout", handler.Checkout)
	orders.POST("/buy-now", handler.BuyNow)
	orders.GET("", handler.ListOrders)
	orders.GET("/:id", handler.GetOrder)
}

func SetupCacheRoutes(api *echo.Group, handler *rest.CacheHandler, authRequired echo.MiddlewareFunc) {
	cache := api.Group("/cache", authRequired)
	cache.GET("/stats", handler.Stats)
	cache.POST("/clear", handler.Clear)
}
