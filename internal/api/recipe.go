package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-scraper/internal/metrics"
	"github.com/pageza/alchemorsel-scraper/internal/middleware"
	"github.com/pageza/alchemorsel-scraper/internal/service"
	"github.com/pageza/alchemorsel-scraper/internal/types"
)

// Client-facing messages for the validation failures.
const (
	msgURLRequired = "URL is required"
	msgInvalidURL  = "Invalid URL format"
)

type ScrapeHandler struct {
	scrapeService service.IScrapeService
	logger        *zap.Logger
}

func NewScrapeHandler(scrapeService service.IScrapeService, logger *zap.Logger) *ScrapeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScrapeHandler{
		scrapeService: scrapeService,
		logger:        logger,
	}
}

func (h *ScrapeHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/scrape-recipe", h.ScrapeRecipe)
}

// ScrapeRecipe handles POST /scrape-recipe
func (h *ScrapeHandler) ScrapeRecipe(c *gin.Context) {
	var req types.ScrapeRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusInternalServerError, err.Error(), "", err)
		return
	}

	recipe, err := h.scrapeService.ScrapeRecipe(c.Request.Context(), req.URL)
	switch {
	case errors.Is(err, service.ErrURLRequired):
		h.fail(c, http.StatusBadRequest, msgURLRequired, req.URL, err)
		return
	case errors.Is(err, service.ErrInvalidURL):
		h.fail(c, http.StatusBadRequest, msgInvalidURL, req.URL, err)
		return
	case err != nil:
		h.fail(c, http.StatusInternalServerError, err.Error(), req.URL, err)
		return
	}

	metrics.ScrapeRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.JSON(http.StatusOK, recipe)
}

func (h *ScrapeHandler) fail(c *gin.Context, status int, msg, url string, err error) {
	outcome := metrics.OutcomeServerError
	if status < http.StatusInternalServerError {
		outcome = metrics.OutcomeClientError
	}
	metrics.ScrapeRequests.WithLabelValues(outcome).Inc()

	h.logger.Warn("scrape failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("url", url),
		zap.Int("status", status),
		zap.Error(err),
	)
	c.JSON(status, gin.H{"error": msg})
}
