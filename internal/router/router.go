package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-scraper/internal/api"
	"github.com/pageza/alchemorsel-scraper/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	scrapeHandler *api.ScrapeHandler,
	allowedOrigins []string,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Metrics(),
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(logger),
		middleware.CORS(allowedOrigins),
	)

	api.RegisterRoutes(router)
	scrapeHandler.RegisterRoutes(router)

	return router
}
