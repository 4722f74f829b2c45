package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"crypto-feed/internal/app"
	"crypto-feed/internal/config"
	hhttp "crypto-feed/internal/handler/http"
	"crypto-feed/internal/handler/http/ingest"
	"crypto-feed/internal/infra/db"
	"crypto-feed/internal/observability/logging"
	"crypto-feed/internal/observability/tracing"
	pkgconfig "crypto-feed/internal/pkg/config"

	_ "crypto-feed/docs" // swagger docs
)

//go:generate swag init -d ../.. -g cmd/api/main.go -o ../../docs --parseInternal

// @title           Crypto Feed API
// @version         1.0
// @description     Manual sync triggers, market statistics and news retention for the crypto-feed ingestion backend.

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("api exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiCfg, apiFallbacks := config.LoadAPIConfig(logger)
	pkgconfig.NewConfigMetrics("api").Observe(apiFallbacks)
	providers, providerFallbacks := config.LoadProviderConfig(logger)
	pkgconfig.NewConfigMetrics("provider").Observe(providerFallbacks)
	dbCfg, dbFallbacks := db.LoadConnectionConfig(logger)
	pkgconfig.NewConfigMetrics("database").Observe(dbFallbacks)

	a, err := app.Build(ctx, dbCfg, providers, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", apiCfg.Port),
		Handler:           newHandler(a, apiCfg, getVersion(), logger),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down api server", slog.Duration("timeout", apiCfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), apiCfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newHandler mounts the sync endpoints, /health, /metrics and /swagger/ behind the shared middleware.
func newHandler(a *app.App, cfg config.APIConfig, version string, logger *slog.Logger) http.Handler {
	breakers := make([]hhttp.Breaker, 0, 2)
	for _, b := range a.Breakers() {
		breakers = append(breakers, b)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", tracing.Middleware("GET /health",
		&hhttp.HealthHandler{DB: a.Store, Breakers: breakers, Version: version}))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	ingest.Register(mux, ingest.Handler{
		Triggers:  a.Triggers,
		Stats:     a.Stats,
		Retention: a.Retention,
		News:      a.Store.News,
	}, hhttp.Throttle(cfg.TriggerInterval, cfg.TriggerBurst))

	return hhttp.Chain(mux,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.InputValidation(),
	)
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
