package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/media-monitor/internal/api/middleware"
)

// SetupRoutes configures all REST API routes.
// The /api/v1 group requires authentication when auth is set.
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	if auth != nil {
		v1.Use(middleware.Auth(auth))
	}
	{
		v1.GET("/items", handler.ListItems)
		v1.GET("/items/:id", handler.GetItem)
		v1.GET("/states/:source", handler.GetIngestState)
	}
}
