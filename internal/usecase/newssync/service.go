// Package newssync runs news ingestion passes for the default tickers, for a list of
// coins, or for a keyword mapped onto provider topics.
package newssync

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/infra/newsdata"
	"crypto-feed/internal/observability/logging"
	"crypto-feed/internal/observability/metrics"
	"crypto-feed/internal/observability/tracing"
	"crypto-feed/internal/provider/alphavantage"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// MaxBatchSize caps the number of articles requested in one run.
	MaxBatchSize = 50
	// DefaultManualBatchSize applies to manual triggers that omit a batch size.
	DefaultManualBatchSize = 50
	// DefaultFilteredBatchSize applies to coin and keyword triggers that omit a batch size.
	DefaultFilteredBatchSize = 30
)

// Fetcher fetches news feeds filtered by tickers or topics.
type Fetcher interface {
	FetchByTickers(ctx context.Context, tickers string, limit int) ([]alphavantage.Article, error)
	FetchByTopics(ctx context.Context, topics string, limit int) ([]alphavantage.Article, error)
}

// Store merges a normalized article and reports whether it was newly inserted.
type Store interface {
	Upsert(ctx context.Context, a *entity.NewsArticle) (bool, error)
}

// Result summarizes a run. SeenBefore counts articles that were already stored and
// had their fields refreshed.
type Result struct {
	RunID       string        `json:"run_id"`
	Filter      string        `json:"filter"`
	BatchSize   int           `json:"batch_size"`
	Fetched     int           `json:"fetched"`
	Dropped     int           `json:"dropped"`
	Inserted    int           `json:"inserted"`
	SeenBefore  int           `json:"seen_before"`
	Failed      int           `json:"failed"`
	Interrupted bool          `json:"interrupted"`
	Duration    time.Duration `json:"duration_ns" swaggertype:"integer"`
}

// Service coordinates news syncs.
type Service struct {
	fetcher   Fetcher
	converter *alphavantage.Converter
	store     Store
	logger    *slog.Logger
}

// NewService creates a Service. Nil converter and logger get defaults.
func NewService(fetcher Fetcher, converter *alphavantage.Converter, store Store, logger *slog.Logger) *Service {
	if converter == nil {
		converter = alphavantage.NewConverter()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, converter: converter, store: store, logger: logger}
}

// ClampBatchSize bounds n to [1, MaxBatchSize].
func ClampBatchSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxBatchSize {
		return MaxBatchSize
	}
	return n
}

// FetchAndSync ingests the latest articles for the default BTC and ETH tickers.
func (s *Service) FetchAndSync(ctx context.Context, batchSize int) Result {
	return s.run(ctx, "tickers", alphavantage.DefaultTickers, batchSize, s.fetcher.FetchByTickers)
}

// FetchAndSyncForCoins ingests articles tagged with any of coins, e.g. ["btc", "sol"].
// An empty or all-blank list ingests nothing and makes no provider call.
func (s *Service) FetchAndSyncForCoins(ctx context.Context, coins []string, batchSize int) Result {
	return s.run(ctx, "tickers", alphavantage.TickersForCoins(coins), batchSize, s.fetcher.FetchByTickers)
}

// FetchAndSyncForKeyword ingests articles for the topic preset matching keyword.
func (s *Service) FetchAndSyncForKeyword(ctx context.Context, keyword string, batchSize int) Result {
	return s.run(ctx, "topics", alphavantage.TopicsForKeyword(keyword), batchSize, s.fetcher.FetchByTopics)
}

type fetchFunc func(ctx context.Context, filter string, limit int) ([]alphavantage.Article, error)

func (s *Service) run(ctx context.Context, filterKey, filter string, batchSize int, fetch fetchFunc) Result {
	ctx, runID := logging.StartRun(ctx, s.logger, metrics.JobNewsSync)
	batch := ClampBatchSize(batchSize)
	ctx, span := tracing.GetTracer().Start(ctx, "newssync.FetchAndSync", trace.WithAttributes(
		attribute.String(filterKey, filter),
		attribute.Int("batch_size", batch),
	))
	defer span.End()

	logger := logging.FromContext(ctx).With(slog.String(filterKey, filter), slog.Int("batch_size", batch))
	start := time.Now()
	res := Result{RunID: runID, Filter: filter, BatchSize: batch}

	if strings.TrimSpace(filter) == "" {
		logger.Info("news sync skipped, empty filter")
		res.Duration = time.Since(start)
		return res
	}

	logger.Info("news sync started")
	articles, err := fetch(ctx, filter, batch)
	switch {
	case errors.Is(err, newsdata.ErrInterrupted):
		logger.Warn("news sync interrupted")
		res.Interrupted = true
	case err != nil:
		logger.Error("news fetch failed", slog.Any("error", err))
	}

	res.Fetched = len(articles)
	mergeCtx := context.WithoutCancel(ctx)
	for i := range articles {
		s.mergeOne(mergeCtx, logger, &articles[i], &res)
	}

	res.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("fetched", res.Fetched),
		attribute.Int("inserted", res.Inserted),
		attribute.Int("seen_before", res.SeenBefore),
		attribute.Int("failed", res.Failed),
	)
	metrics.RecordSyncRun(metrics.JobNewsSync, res.Duration, metrics.SyncOutcome{
		Fetched:  res.Fetched,
		Dropped:  res.Dropped,
		Inserted: res.Inserted,
		Updated:  res.SeenBefore,
		Failed:   res.Failed,
	})
	logger.Info("news sync finished",
		slog.Int("fetched", res.Fetched),
		slog.Int("dropped", res.Dropped),
		slog.Int("inserted", res.Inserted),
		slog.Int("seen_before", res.SeenBefore),
		slog.Int("failed", res.Failed),
		slog.Duration("duration", res.Duration))
	return res
}

func (s *Service) mergeOne(ctx context.Context, logger *slog.Logger, a *alphavantage.Article, res *Result) {
	n, ok := s.converter.ToNewsArticle(ctx, a)
	if !ok {
		res.Dropped++
		return
	}
	inserted, err := s.store.Upsert(ctx, n)
	switch {
	case err != nil:
		res.Failed++
		logger.Error("failed to merge news article",
			slog.String("article_id", n.ArticleID),
			slog.Any("error", err))
	case inserted:
		res.Inserted++
	default:
		res.SeenBefore++
	}
}
