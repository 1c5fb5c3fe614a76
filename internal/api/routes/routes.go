// Package routes defines the HTTP routes for the docsession service.
package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/unifiedui/docsession/internal/api/handlers"
	"github.com/unifiedui/docsession/internal/api/middleware"
)

// BasePath is the prefix of every API route.
const BasePath = "/api/v1/docsession"

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler    *handlers.HealthHandler
	DocumentsHandler *handlers.DocumentsHandler
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	v1 := r.Group(BasePath)
	{
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		v1.GET("/databases", cfg.DocumentsHandler.ListDatabases)
		v1.GET("/collections", cfg.DocumentsHandler.ListCollections)

		v1.GET("/target", cfg.DocumentsHandler.GetTarget)
		v1.PUT("/target", cfg.DocumentsHandler.SelectTarget)
		v1.POST("/provision", cfg.DocumentsHandler.Provision)

		documents := v1.Group("/documents")
		{
			documents.POST("", cfg.DocumentsHandler.InsertDocuments)
			documents.GET("", cfg.DocumentsHandler.FindDocument)
			documents.PATCH("", cfg.DocumentsHandler.UpdateDocument)
			documents.DELETE("", cfg.DocumentsHandler.DeleteDocument)
			documents.GET("/count", cfg.DocumentsHandler.CountDocuments)
		}

		v1.POST("/ingest", cfg.DocumentsHandler.Ingest)
	}

	r.NoRoute(middleware.NotFound())
}

// SetupWithMiddleware sets up routes with common middleware and the Swagger UI.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware) {
	r.Use(loggingMw.Logger())
	r.Use(middleware.Recovery())

	Setup(r, cfg)

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
