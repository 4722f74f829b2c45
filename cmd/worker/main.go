package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"crypto-feed/internal/app"
	"crypto-feed/internal/config"
	"crypto-feed/internal/infra/db"
	workerPkg "crypto-feed/internal/infra/worker"
	"crypto-feed/internal/observability/logging"
	"crypto-feed/internal/observability/metrics"
	pkgconfig "crypto-feed/internal/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("worker exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerMetrics := workerPkg.NewWorkerMetrics()
	cfg := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.Bool("scheduler_enabled", cfg.SchedulerEnabled),
		slog.String("market_schedule", cfg.MarketSchedule),
		slog.String("news_schedule", cfg.NewsSchedule),
		slog.Int("news_batch_size", cfg.NewsBatchSize),
		slog.Int("retention_days", cfg.RetentionDays),
		slog.String("timezone", cfg.Timezone),
		slog.Int("health_port", cfg.HealthPort))

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

	breakers := make([]workerPkg.Breaker, 0, 2)
	for _, b := range a.Breakers() {
		breakers = append(breakers, b)
	}
	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger, breakers...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return healthServer.Start(gctx) })
	g.Go(func() error {
		initialLoad(gctx, logger, a, workerMetrics)
		if !cfg.SchedulerEnabled {
			logger.Info("scheduler disabled, serving health checks only")
			healthServer.SetReady(true)
			<-gctx.Done()
			return nil
		}
		return schedule(gctx, logger, a, cfg, workerMetrics, healthServer)
	})
	return g.Wait()
}

// initialLoad runs one market sync when nothing is stored yet so that a fresh
// deployment does not wait for the first cron tick.
func initialLoad(ctx context.Context, logger *slog.Logger, a *app.App, m *workerPkg.WorkerMetrics) {
	empty, err := a.Triggers.MarketDataEmpty(ctx)
	if err != nil {
		logger.Warn("could not check stored market data, skipping initial load", slog.Any("error", err))
		return
	}
	if !empty {
		return
	}
	logger.Info("no market data stored, running initial market sync")
	start := time.Now()
	res := a.Triggers.TriggerMarketSync(ctx)
	m.RecordJob(metrics.JobMarketSync, jobStatus(res.Interrupted, res.Failed), time.Since(start))
}

type cronJob struct {
	name     string
	schedule string
	run      func(context.Context) string
}

// schedule registers the cron jobs and blocks until ctx is done. Jobs already
// running are allowed to finish before it returns.
func schedule(ctx context.Context, logger *slog.Logger, a *app.App, cfg *workerPkg.WorkerConfig, m *workerPkg.WorkerMetrics, hs *workerPkg.HealthServer) error {
	c := cron.New(cron.WithLocation(cfg.Location()))

	jobs := []cronJob{
		{metrics.JobMarketSync, cfg.MarketSchedule, func(ctx context.Context) string {
			res := a.Triggers.TriggerMarketSync(ctx)
			return jobStatus(res.Interrupted, res.Failed)
		}},
		{metrics.JobNewsSync, cfg.NewsSchedule, func(ctx context.Context) string {
			res := a.Triggers.TriggerNewsSync(ctx, cfg.NewsBatchSize)
			return jobStatus(res.Interrupted, res.Failed)
		}},
	}
	if cfg.RetentionDays > 0 {
		jobs = append(jobs, cronJob{metrics.JobRetention, cfg.RetentionSchedule, func(ctx context.Context) string {
			if _, err := a.Retention.DeleteOlderThan(ctx, cfg.RetentionDays); err != nil {
				logger.Error("news retention failed", slog.Any("error", err))
				return "failure"
			}
			return "success"
		}})
	}

	for _, j := range jobs {
		if _, err := c.AddFunc(j.schedule, func() {
			start := time.Now()
			status := j.run(ctx)
			m.RecordJob(j.name, status, time.Since(start))
		}); err != nil {
			return fmt.Errorf("add %s job: %w", j.name, err)
		}
		logger.Info("cron job registered", slog.String("job", j.name), slog.String("schedule", j.schedule))
	}

	c.Start()
	hs.SetReady(true)
	logger.Info("worker started", slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	hs.SetReady(false)
	logger.Info("waiting for running jobs to finish")
	<-c.Stop().Done()
	return nil
}

// jobStatus maps a sync outcome onto the job status label.
func jobStatus(interrupted bool, failed int) string {
	switch {
	case interrupted:
		return "skipped"
	case failed > 0:
		return "failure"
	default:
		return "success"
	}
}
