package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-scraper/config"
	"github.com/pageza/alchemorsel-scraper/internal/logger"
	"github.com/pageza/alchemorsel-scraper/internal/server"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Create and start server
	srv := server.New(cfg, zl)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			zl.Fatal("Server error", zap.Error(err))
		}
		return
	case sig := <-quit:
		zl.Info("Received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	zl.Info("Shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		zl.Fatal("Server shutdown error", zap.Error(err))
	}
	zl.Info("Server stopped")
}
