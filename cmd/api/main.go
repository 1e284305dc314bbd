package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge-recipes/backend/config"
	"github.com/pageza/fridge-recipes/backend/internal/database"
	"github.com/pageza/fridge-recipes/backend/internal/logging"
	"github.com/pageza/fridge-recipes/backend/internal/server"
	"github.com/pageza/fridge-recipes/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	logger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"provider":    cfg.VisionProvider,
		"db_driver":   cfg.DBDriver,
	}).Info("Starting Fridge Recipe Server")

	if cfg.ActiveProvider().APIKey == "" {
		logger.WithField("provider", cfg.VisionProvider).
			Warn("No API key configured for the vision provider; photo analysis will fail until one is set")
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.WithError(err).Warn("Failed to close database")
		}
	}()

	if err := database.Prepare(db); err != nil {
		logger.Fatalf("Failed to prepare sample recipes: %v", err)
	}

	provider, err := service.NewVisionProvider(cfg)
	if err != nil {
		logger.Fatalf("Failed to create vision provider: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, db, provider, logger)
	if err != nil {
		logger.Fatalf("Failed to create server: %v", err)
	}

	logger.Infof("Health check: http://localhost:%s/api/health", cfg.ServerPort)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("Server error: %v", err)
		return
	}
	logger.Info("Server stopped")
}
