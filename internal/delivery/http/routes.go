package http

import (
	"github.com/gin-gonic/gin"
	"github.com/productadvisor/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/:id", handler.GetProduct)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/categories", handler.ListCategories)
			catalog.GET("/brands", handler.ListBrands)
			catalog.GET("/price-range", handler.GetPriceRange)
			catalog.GET("/featured", handler.ListFeatured)
			catalog.GET("/category-counts", handler.ListCategoryCounts)
		}

		v1.POST("/recommendations", handler.Recommend)

		favorites := v1.Group("/favorites")
		{
			favorites.GET("", handler.ListFavorites)
			favorites.DELETE("", handler.ClearFavorites)
			favorites.GET("/:id", handler.GetFavorite)
			favorites.PUT("/:id", handler.AddFavorite)
			favorites.DELETE("/:id", handler.RemoveFavorite)
			favorites.POST("/:id/toggle", handler.ToggleFavorite)
		}
	}

	return router
}
