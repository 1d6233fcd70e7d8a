package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-scraper/config"
	"github.com/pageza/alchemorsel-scraper/internal/api"
	"github.com/pageza/alchemorsel-scraper/internal/router"
	"github.com/pageza/alchemorsel-scraper/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
	logger *zap.Logger
}

// New creates a new server instance wired with the default scrape pipeline
func New(cfg *config.Config, logger *zap.Logger) *Server {
	scrapeService := service.NewDefaultScrapeService(service.Options{
		FetchTimeout:      cfg.FetchTimeout,
		UserAgent:         cfg.UserAgent,
		ParseIngredients:  cfg.ParseIngredients,
		IngredientWorkers: cfg.IngredientWorkers,
	}, logger)

	return NewWithService(cfg, scrapeService, logger)
}

// NewWithService creates a server around an existing scrape service
func NewWithService(cfg *config.Config, scrapeService service.IScrapeService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch {
	case cfg.Environment.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.Environment.IsTest():
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := router.SetupRouter(api.NewScrapeHandler(scrapeService, logger), cfg.AllowedOrigins, logger)

	return &Server{
		router: r,
		http: &http.Server{
			Addr:    cfg.Addr(),
			Handler: r,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting server",
		zap.String("addr", s.http.Addr),
		zap.String("environment", string(s.cfg.Environment)),
		zap.Strings("allowed_origins", s.cfg.AllowedOrigins),
	)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server within the configured timeout
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}
