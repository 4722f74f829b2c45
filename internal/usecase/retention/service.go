// Package retention removes news articles older than a configurable age.
package retention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"crypto-feed/internal/observability/logging"
	"crypto-feed/internal/observability/metrics"
	"crypto-feed/internal/repository"
)

// DefaultDaysOld applies when a manual cleanup omits its age.
const DefaultDaysOld = 90

// ErrInvalidDays is returned for a non-positive age.
var ErrInvalidDays = errors.New("days must be positive")

// Service deletes stale news.
type Service struct {
	repo   repository.NewsRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service. A nil logger falls back to slog.Default.
func NewService(repo repository.NewsRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// DeleteOlderThan removes articles published more than days days ago and returns how many were removed.
func (s *Service) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, ErrInvalidDays
	}
	ctx, _ = logging.StartRun(ctx, s.logger, metrics.JobRetention)
	logger := logging.FromContext(ctx)

	start := time.Now()
	cutoff := s.now().UTC().AddDate(0, 0, -days)
	deleted, err := s.repo.DeletePublishedBefore(ctx, cutoff)
	if err != nil {
		logger.Error("news retention failed", slog.Time("cutoff", cutoff), slog.Any("error", err))
		return 0, fmt.Errorf("delete news published before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	metrics.RecordRetentionDeleted(deleted)
	metrics.RecordSyncRun(metrics.JobRetention, time.Since(start), metrics.SyncOutcome{})
	logger.Info("news retention finished",
		slog.Int("days", days),
		slog.Time("cutoff", cutoff),
		slog.Int64("deleted", deleted))
	return deleted, nil
}
