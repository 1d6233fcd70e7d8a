package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-scraper/internal/metrics"
	"github.com/pageza/alchemorsel-scraper/internal/types"
)

// ErrorHandler recovers panics and reports them, along with handler errors
// attached via c.Error that left no body behind, as a JSON error response.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(r)
				}
				metrics.PanicRecoveries.Inc()
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("request_id", GetRequestID(c)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: fmt.Sprint(r)})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			status := c.Writer.Status()
			if status < http.StatusBadRequest {
				status = http.StatusInternalServerError
			}
			c.JSON(status, types.ErrorResponse{Error: c.Errors.Last().Error()})
		}
	}
}
