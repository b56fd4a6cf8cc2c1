package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcc-reference/internal/config"
	"mcc-reference/internal/dataset"
	"mcc-reference/internal/handlers"
	"mcc-reference/internal/middleware"
	"mcc-reference/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Dataset.Validate(); err != nil {
		log.Fatalf("Invalid dataset configuration: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	source, err := newSource(cfg.Dataset)
	if err != nil {
		log.Fatalf("Failed to open dataset source: %v", err)
	}

	metrics := services.NewPrometheusMetrics()
	collection := services.NewCollectionService(source, cfg.Dataset, metrics, logger)

	// Warm the snapshot up front so the first request doesn't pay for the
	// initial load. A failure here is not fatal: the source may become
	// reachable later and queries retry the load.
	warmupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := collection.Count(warmupCtx); err != nil {
		logger.Warn("Initial dataset load failed, will retry on first query", "error", err)
	}
	cancel()

	e := newServer(cfg, collection, metrics)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Starting MCC reference server",
			"address", addr,
			"environment", cfg.Server.Environment,
			"dataset_driver", cfg.Dataset.Driver,
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// newSource builds the dataset source selected by the driver setting. The
// configuration is validated before this runs, so an unknown driver here is
// a programming error.
func newSource(cfg config.DatasetConfig) (dataset.Source, error) {
	switch cfg.Driver {
	case config.DriverEmbedded:
		return dataset.NewEmbeddedSource(), nil
	case config.DriverJSON:
		return dataset.NewFileSource(cfg.Path), nil
	case config.DriverSQLite:
		return dataset.NewSQLiteSource(cfg.Path)
	case config.DriverPostgres:
		return dataset.NewPostgresSource(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown dataset driver %q", cfg.Driver)
	}
}

func newServer(cfg *config.Config, collection services.CollectionServiceInterface, metrics services.MetricsRecorderInterface) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	mccHandler := handlers.NewMCCHandler(collection, metrics, cfg.Dataset)
	healthHandler := handlers.NewHealthCheckHandler(collection)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")
	v1.GET("/mccs", mccHandler.ListCodes)
	v1.GET("/mccs/:code", mccHandler.GetCode)
	v1.POST("/mccs/validate", mccHandler.ValidateCode)
	v1.GET("/ranges", mccHandler.ListRanges)
	v1.GET("/ranges/:name/mccs", mccHandler.RangeCodes)
	v1.GET("/categories", mccHandler.ListCategories)
	v1.GET("/categories/:id/mccs", mccHandler.CategoryCodes)
	v1.POST("/dataset/reload", mccHandler.ReloadDataset)

	return e
}
