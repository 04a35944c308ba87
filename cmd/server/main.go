package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/instanti8/api/internal/config"
	"github.com/instanti8/api/internal/generator"
	"github.com/instanti8/api/internal/handlers"
	"github.com/instanti8/api/internal/logging"
	"github.com/instanti8/api/internal/server"
	"github.com/instanti8/api/internal/service"
	"github.com/instanti8/api/internal/telemetry"
)

// @title Instanti8.dev API
// @version 0.1.0
// @description API for Instanti8.dev infrastructure generation
// @BasePath /
func main() {
	ctx := context.Background()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Instanti8 API starting...",
		zap.String("version", handlers.ServiceVersion),
		zap.String("environment", cfg.Environment),
		zap.String("model", cfg.Model),
		zap.Strings("cors_origins", cfg.CORSOrigins),
		zap.Duration("generation_timeout", cfg.GenerationTimeout),
	)
	for _, w := range cfg.Warnings {
		logger.Warn("invalid configuration value, using default", zap.String("detail", w))
	}
	if !cfg.HasCredential() {
		logger.Warn("GROQ_API_KEY not set; generation requests will fail")
	}

	shutdownTelemetry, err := telemetry.InitTracer(ctx, handlers.ServiceName, handlers.ServiceVersion, cfg.OTLPEndpoint)
	if err != nil {
		// Tracing is optional; the collector may simply be down.
		logger.Error("failed to initialize telemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTelemetry(ctx); err != nil {
				logger.Error("failed to shutdown telemetry", zap.Error(err))
			}
		}()
	}

	svc := service.New(generator.NewClient(cfg), logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(cfg, svc, logger),
		ReadHeaderTimeout: 15 * time.Second,
		// Generation can take as long as the outbound timeout.
		WriteTimeout: cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
