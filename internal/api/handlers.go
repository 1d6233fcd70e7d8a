package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Home answers the root path with a plain-text greeting
func Home(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}

// About answers the about page
func About(c *gin.Context) {
	c.String(http.StatusOK, "About")
}

// HealthCheck returns the health status of the service
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipe scraper is running",
	})
}

// RegisterRoutes registers the static pages, the health check and the
// Prometheus endpoint
func RegisterRoutes(router gin.IRouter) {
	router.GET("/", Home)
	router.GET("/about", About)
	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
