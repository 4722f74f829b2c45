// Package worker holds the configuration, metrics and health endpoint of the
// scheduled sync worker.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"crypto-feed/internal/pkg/config"
)

// WorkerConfig controls which jobs the worker schedules and when.
type WorkerConfig struct {
	// SchedulerEnabled turns all cron jobs on or off. With it off the worker
	// still runs the initial load and serves health checks.
	SchedulerEnabled bool

	// MarketSchedule is the cron expression of the market sync (default every 15 minutes).
	MarketSchedule string

	// NewsSchedule is the cron expression of the news sync (default hourly).
	NewsSchedule string

	// NewsBatchSize is the article limit of each scheduled news sync.
	NewsBatchSize int

	// RetentionDays deletes news older than this many days; 0 disables the retention job.
	RetentionDays int

	// RetentionSchedule is the cron expression of the retention job.
	RetentionSchedule string

	// Timezone is the IANA zone in which the cron expressions are evaluated.
	Timezone string

	// HealthPort serves /health, /health/ready and /metrics.
	HealthPort int
}

// DefaultConfig returns the worker defaults.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		SchedulerEnabled:  true,
		MarketSchedule:    "*/15 * * * *",
		NewsSchedule:      "0 * * * *",
		NewsBatchSize:     10,
		RetentionDays:     0,
		RetentionSchedule: "30 3 * * *",
		Timezone:          "UTC",
		HealthPort:        9091,
	}
}

// Validate checks every field and reports all problems at once.
func (c *WorkerConfig) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.MarketSchedule); err != nil {
		errs = append(errs, fmt.Errorf("market schedule: %w", err))
	}
	if err := config.ValidateCronSchedule(c.NewsSchedule); err != nil {
		errs = append(errs, fmt.Errorf("news schedule: %w", err))
	}
	if err := config.ValidateCronSchedule(c.RetentionSchedule); err != nil {
		errs = append(errs, fmt.Errorf("retention schedule: %w", err))
	}
	if err := config.ValidateIntRange(c.NewsBatchSize, 1, 50); err != nil {
		errs = append(errs, fmt.Errorf("news batch size: %w", err))
	}
	if err := config.ValidateIntRange(c.RetentionDays, 0, 3650); err != nil {
		errs = append(errs, fmt.Errorf("retention days: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	return errors.Join(errs...)
}

// Location returns the configured time zone. Validate guarantees it loads.
func (c *WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfigFromEnv reads the worker configuration. Invalid values fall back to
// their defaults with a warning; it never fails.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	def := DefaultConfig()
	var c config.Collector

	cfg := WorkerConfig{
		SchedulerEnabled: config.Track(&c, "scheduler_enabled",
			config.LoadEnvBool("SCHEDULER_ENABLED", def.SchedulerEnabled)),
		MarketSchedule: config.Track(&c, "market_schedule",
			config.LoadEnvWithFallback("MARKET_CRON_SCHEDULE", def.MarketSchedule, config.ValidateCronSchedule)),
		NewsSchedule: config.Track(&c, "news_schedule",
			config.LoadEnvWithFallback("NEWS_CRON_SCHEDULE", def.NewsSchedule, config.ValidateCronSchedule)),
		NewsBatchSize: config.Track(&c, "news_batch_size",
			config.LoadEnvInt("NEWS_SCHEDULED_BATCH_SIZE", def.NewsBatchSize, func(v int) error {
				return config.ValidateIntRange(v, 1, 50)
			})),
		RetentionDays: config.Track(&c, "retention_days",
			config.LoadEnvInt("NEWS_RETENTION_DAYS", def.RetentionDays, func(v int) error {
				return config.ValidateIntRange(v, 0, 3650)
			})),
		RetentionSchedule: config.Track(&c, "retention_schedule",
			config.LoadEnvWithFallback("RETENTION_CRON_SCHEDULE", def.RetentionSchedule, config.ValidateCronSchedule)),
		Timezone: config.Track(&c, "timezone",
			config.LoadEnvWithFallback("WORKER_TIMEZONE", def.Timezone, config.ValidateTimezone)),
		HealthPort: config.Track(&c, "health_port",
			config.LoadEnvInt("WORKER_HEALTH_PORT", def.HealthPort, func(v int) error {
				return config.ValidateIntRange(v, 1024, 65535)
			})),
	}

	for _, w := range c.Warnings {
		logger.Warn("Configuration fallback applied", slog.String("warning", w))
	}
	if metrics != nil {
		metrics.Observe(&c)
	}
	return &cfg
}
