// Package trigger is the single entry point shared by the cron scheduler and the
// manual HTTP triggers. Runs started from either side are not mutually excluded.
package trigger

import (
	"context"
	"log/slog"

	"crypto-feed/internal/observability/metrics"
	"crypto-feed/internal/usecase/marketsync"
	"crypto-feed/internal/usecase/newssync"
)

// MarketSyncer runs a market sync.
type MarketSyncer interface {
	FetchAndSync(ctx context.Context) marketsync.Result
}

// NewsSyncer runs the news sync variants.
type NewsSyncer interface {
	FetchAndSync(ctx context.Context, batchSize int) newssync.Result
	FetchAndSyncForCoins(ctx context.Context, coins []string, batchSize int) newssync.Result
	FetchAndSyncForKeyword(ctx context.Context, keyword string, batchSize int) newssync.Result
}

// Counter reports how many records a store holds.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Service dispatches sync runs and refreshes the stored-record gauges afterwards.
type Service struct {
	market       MarketSyncer
	news         NewsSyncer
	marketCounts Counter
	newsCounts   Counter
	logger       *slog.Logger
}

// NewService creates a Service. The counters may be nil, in which case the
// stored-record gauges are not refreshed.
func NewService(market MarketSyncer, news NewsSyncer, marketCounts, newsCounts Counter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{market: market, news: news, marketCounts: marketCounts, newsCounts: newsCounts, logger: logger}
}

// TriggerMarketSync runs one market sync.
func (s *Service) TriggerMarketSync(ctx context.Context) marketsync.Result {
	res := s.market.FetchAndSync(ctx)
	s.refresh(ctx, "cryptocurrency", s.marketCounts)
	return res
}

// TriggerNewsSync runs the default-ticker news sync.
func (s *Service) TriggerNewsSync(ctx context.Context, batchSize int) newssync.Result {
	res := s.news.FetchAndSync(ctx, batchSize)
	s.refresh(ctx, "news_article", s.newsCounts)
	return res
}

// TriggerNewsSyncForCoins runs a news sync filtered by coins.
func (s *Service) TriggerNewsSyncForCoins(ctx context.Context, coins []string, batchSize int) newssync.Result {
	res := s.news.FetchAndSyncForCoins(ctx, coins, batchSize)
	s.refresh(ctx, "news_article", s.newsCounts)
	return res
}

// TriggerNewsSyncForKeyword runs a news sync for a keyword's topic preset.
func (s *Service) TriggerNewsSyncForKeyword(ctx context.Context, keyword string, batchSize int) newssync.Result {
	res := s.news.FetchAndSyncForKeyword(ctx, keyword, batchSize)
	s.refresh(ctx, "news_article", s.newsCounts)
	return res
}

// MarketDataEmpty reports whether no cryptocurrency has been stored yet.
func (s *Service) MarketDataEmpty(ctx context.Context) (bool, error) {
	if s.marketCounts == nil {
		return false, nil
	}
	n, err := s.marketCounts.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (s *Service) refresh(ctx context.Context, kind string, c Counter) {
	if c == nil {
		return
	}
	n, err := c.Count(context.WithoutCancel(ctx))
	if err != nil {
		s.logger.Warn("failed to count stored records", slog.String("kind", kind), slog.Any("error", err))
		return
	}
	metrics.UpdateStoredRecords(kind, n)
}
