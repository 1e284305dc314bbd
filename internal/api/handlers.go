package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthMessage = "Fridge Recipe Server is running!"

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Message:   healthMessage,
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// NotFound answers every unmatched route
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, recipeHandler *RecipeHandler, fridgeHandler *FridgeHandler) {
	router.GET("/api/health", HealthCheck)

	apiGroup := router.Group("/api")
	recipeHandler.RegisterRoutes(apiGroup)
	fridgeHandler.RegisterRoutes(apiGroup)

	router.NoRoute(NotFound)
}
