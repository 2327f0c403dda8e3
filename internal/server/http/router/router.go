package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/civiseek/civiseek/internal/server/http/handlers"
	"github.com/civiseek/civiseek/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.SeekerFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	jobHandler := handlers.NewJobHandler(facade)
	favoriteHandler := handlers.NewFavoriteHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	purchaseHandler := handlers.NewPurchaseHandler(facade)

	api := engine.Group("/api")
	api.GET("/plans", purchaseHandler.Plans)
	api.GET("/jobs", jobHandler.List)
	api.GET("/jobs/:id", jobHandler.Get)
	api.POST("/jobs/compare", jobHandler.Compare)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/profile", profileHandler.Get)
	userAuth.PUT("/profile", profileHandler.Save)
	userAuth.GET("/favorites", favoriteHandler.List)
	userAuth.POST("/favorites", favoriteHandler.Add)
	userAuth.DELETE("/favorites/:jobID", favoriteHandler.Remove)
	userAuth.GET("/orders", purchaseHandler.Orders)
	userAuth.POST("/purchase", purchaseHandler.Initiate)
	userAuth.POST("/purchase/confirm", purchaseHandler.Confirm)
	userAuth.GET("/purchase/status", purchaseHandler.Status)
	userAuth.POST("/purchase/cancel", purchaseHandler.Cancel)

	return engine
}
