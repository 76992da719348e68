package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"copilot/internal/bootstrap"
	"copilot/internal/config"
	"copilot/internal/handler"
	"copilot/internal/logging"
	"copilot/internal/router"
)

// @title Compliance Co-Pilot API
// @version 1.0
// @description HealthTech compliance co-pilot: compliance scans, test-case and synthetic-data generation, and regulatory chat.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if missing := cfg.GCP.Missing(); len(missing) > 0 {
		logger.Warn("GCP bindings missing; hosted operations will fail until set", zap.Strings("missing", missing))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("shutdown cleanup failed", zap.Error(err))
		}
	}()

	// Initialize handlers
	maxBytes := cfg.Upload.MaxBytes()
	deps := make(map[string]handler.Pinger, len(app.Dependencies))
	for name, dep := range app.Dependencies {
		deps[name] = dep
	}
	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(deps),
		Session:    handler.NewSessionHandler(app.Sessions),
		Catalog:    handler.NewCatalogHandler(app.Catalog),
		Compliance: handler.NewComplianceHandler(app.Compliance, app.Exports, maxBytes),
		TestCase:   handler.NewTestCaseHandler(app.TestCases, app.Exports, maxBytes),
		Synthetic:  handler.NewSyntheticHandler(app.Synthetic, app.Exports),
		Chat:       handler.NewChatHandler(app.Chat),
		Assist:     handler.NewAssistHandler(app.Assist, maxBytes),
	}

	// Setup router
	r := router.Setup(logger, cfg.CORS.AllowedOrigins, app.Sessions, handlers)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("env", cfg.Server.Environment))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
