package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(zap.NewNop()))
	router.GET("/", func(c *gin.Context) {
		panic("Test error")
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"error":"Test error"}`, rr.Body.String())
}

func TestErrorHandlerRendersAttachedErrors(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(zap.NewNop()))
	router.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("upstream failed"))
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"upstream failed"}`, rr.Body.String())
}

func TestErrorHandlerPassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(zap.NewNop()))
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
