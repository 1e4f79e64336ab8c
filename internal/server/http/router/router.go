package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/server/http/handlers"
	"github.com/polkiloo/marketplace/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	userHandler := handlers.NewUserHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	wishlistHandler := handlers.NewWishlistHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade, facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.POST("/products", productHandler.Create)
	authed.GET("/products/mine", productHandler.Mine)

	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders/purchases", orderHandler.Purchases)
	authed.GET("/orders/sales", orderHandler.Sales)

	authed.GET("/wishlist", wishlistHandler.List)
	authed.POST("/wishlist/:productId", wishlistHandler.Add)
	authed.DELETE("/wishlist/:productId", wishlistHandler.Remove)

	authed.GET("/users/me", userHandler.Me)
	authed.PATCH("/users/me", userHandler.UpdateMe)
	authed.GET("/users/notifications", userHandler.Notifications)

	admin := authed.Group("/admin")
	admin.Use(middleware.AdminRequired())
	admin.GET("/listings", adminHandler.Listings)
	admin.GET("/listings/:id", adminHandler.Listing)
	admin.PATCH("/listings/:id/approve", adminHandler.Approve)
	admin.PATCH("/listings/:id/reject", adminHandler.Reject)
	admin.GET("/notifications", adminHandler.Notifications)
	admin.GET("/commission", adminHandler.Commission)
	admin.PUT("/commission", adminHandler.UpdateCommission)

	return engine
}
