package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmartins/grana-bff-go/internal/config"
	"github.com/rmartins/grana-bff-go/internal/handler"
	"github.com/rmartins/grana-bff-go/internal/infra/cache"
	"github.com/rmartins/grana-bff-go/internal/infra/financeapi"
	"github.com/rmartins/grana-bff-go/internal/infra/observability"
	"github.com/rmartins/grana-bff-go/internal/infra/resilience"
	"github.com/rmartins/grana-bff-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Config (.env is loaded inside for local development) ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("finance_api_url", cfg.FinanceAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("jwt_access_ttl", cfg.JWTAccessTTL),
		zap.Duration("jwt_refresh_ttl", cfg.JWTRefreshTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "grana-bff")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	ledgerCache := cache.New[any](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("finance-api")

	// --- Finance API client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := financeapi.NewClient(httpClient, cfg.FinanceAPIURL, cfg.FinanceAPIToken, cb, resilienceCfg, metrics, logger)

	// --- Services ---
	dashboardSvc := service.NewDashboardService(store, ledgerCache, metrics, logger)
	authSvc := service.NewAuthService(store, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, logger)

	svcs := handler.Services{
		Dashboard: dashboardSvc,
		Accounts:  service.NewAccountService(store, dashboardSvc, logger),
		Ledger:    service.NewLedgerService(store, dashboardSvc, logger),
		Taxonomy:  service.NewTaxonomyService(store, logger),
		Recurring: service.NewRecurringService(store, logger),
		Imports:   service.NewImportService(store, dashboardSvc, logger),
		Admin:     service.NewAdminService(store, logger),
		Auth:      authSvc,
	}

	// --- Router ---
	router := handler.NewRouter(svcs, metrics, cfg.AllowedOrigins, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
