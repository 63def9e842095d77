package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/crypto_pulse/internal/adapters/marketdata/coingecko"
	"github.com/SscSPs/crypto_pulse/internal/adapters/render/memory"
	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/core/services"
	"github.com/SscSPs/crypto_pulse/internal/dto"
	"github.com/SscSPs/crypto_pulse/internal/handlers"
	"github.com/SscSPs/crypto_pulse/internal/middleware"
	"github.com/SscSPs/crypto_pulse/internal/platform/config"
	"github.com/SscSPs/crypto_pulse/internal/platform/eventloop"
	"github.com/SscSPs/crypto_pulse/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

const loopBuffer = 64

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dashboardMetrics := metrics.NewDashboardMetrics()

	market := coingecko.NewClient(coingecko.Config{
		BaseURL:           cfg.MarketDataBaseURL,
		AssetID:           cfg.AssetID,
		Timeout:           cfg.MarketDataTimeout,
		RequestsPerSecond: cfg.MarketDataRPS,
	}, logger)

	chartEngine := memory.NewEngine("chart", cfg.SurfaceRedrawInterval, logger)
	mapEngine := memory.NewEngine("map", 0, logger)

	loop := eventloop.New(loopBuffer, logger)
	if err := loop.Start(context.Background()); err != nil {
		logger.Error("Failed to start event loop", slog.String("error", err.Error()))
		os.Exit(1)
	}

	chart := services.NewChartController(services.ChartControllerConfig{
		Loop:     loop,
		Market:   market,
		Engine:   chartEngine,
		Recorder: dashboardMetrics,
		Logger:   logger,
		Asset: domain.Asset{
			ID:    cfg.AssetID,
			Name:  cfg.AssetName,
			Label: cfg.AssetLabel,
		},
		InitialCurrency: domain.NormalizeCurrencyCode(cfg.DefaultCurrency),
	})
	if err := chart.Mount(ctx, domain.ChartRegion); err != nil {
		logger.Error("Failed to mount chart", slog.String("error", err.Error()))
		os.Exit(1)
	}

	geo := services.NewGeoPanel(mapEngine, domain.MapRegion, dashboardMetrics, logger)
	if err := geo.Mount(); err != nil {
		logger.Error("Failed to mount geo panel", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The built-in currency list stays in place if this fails.
	go func() {
		if err := chart.Bootstrap(ctx); err != nil {
			logger.Warn("Currency bootstrap failed", slog.String("error", err.Error()))
		}
	}()

	if err := dto.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.APIRateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		dashboardMetrics.GinMiddleware(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, services.NewServiceContainer(chart, geo), handlers.RouteOptions{
		Metrics:        dashboardMetrics.Handler(),
		APIMiddleware:  []gin.HandlerFunc{middleware.RateLimit(rateLimiter)},
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", slog.String("error", err.Error()))
	}
	if err := chart.Teardown(shutdownCtx); err != nil {
		logger.Error("Chart teardown failed", slog.String("error", err.Error()))
	}
	geo.Teardown()
	if err := loop.Stop(shutdownCtx); err != nil {
		logger.Error("Event loop stop failed", slog.String("error", err.Error()))
	}

	logger.Info("Server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
