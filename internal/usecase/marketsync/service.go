// Package marketsync runs one market-data ingestion pass: fetch pages, normalize,
// merge each record independently.
package marketsync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/infra/marketdata"
	"crypto-feed/internal/observability/logging"
	"crypto-feed/internal/observability/metrics"
	"crypto-feed/internal/observability/tracing"
	"crypto-feed/internal/provider/coingecko"

	"go.opentelemetry.io/otel/attribute"
)

const (
	// PageSize is the number of records requested per page.
	PageSize = 100
	// MaxPages bounds a run to the top PageSize*MaxPages assets by market cap.
	MaxPages = 3
)

// PageFetcher fetches one page of market records.
type PageFetcher interface {
	FetchPage(ctx context.Context, page, perPage int) ([]coingecko.MarketRecord, error)
}

// Store merges a normalized record and reports whether it was newly inserted.
type Store interface {
	Upsert(ctx context.Context, c *entity.Cryptocurrency) (bool, error)
}

// Result summarizes a run. Attempted counts merges that were started, so
// Attempted == Inserted + Updated + Failed and Fetched == Dropped + Attempted.
type Result struct {
	RunID       string        `json:"run_id"`
	Pages       int           `json:"pages"`
	Fetched     int           `json:"fetched"`
	Dropped     int           `json:"dropped"`
	Attempted   int           `json:"attempted"`
	Inserted    int           `json:"inserted"`
	Updated     int           `json:"updated"`
	Failed      int           `json:"failed"`
	Interrupted bool          `json:"interrupted"`
	Duration    time.Duration `json:"duration_ns" swaggertype:"integer"`
}

// Service coordinates a market sync.
type Service struct {
	fetcher   PageFetcher
	converter *coingecko.Converter
	store     Store
	logger    *slog.Logger
}

// NewService creates a Service. A nil logger falls back to slog.Default.
func NewService(fetcher PageFetcher, converter *coingecko.Converter, store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if converter == nil {
		converter = coingecko.NewConverter()
	}
	return &Service{fetcher: fetcher, converter: converter, store: store, logger: logger}
}

// FetchAndSync fetches up to MaxPages pages, stopping at the first empty page, and
// merges every record. A failure on one record never aborts the run. Merges are
// detached from ctx cancellation; only the waits between provider calls are cut short.
func (s *Service) FetchAndSync(ctx context.Context) Result {
	ctx, runID := logging.StartRun(ctx, s.logger, metrics.JobMarketSync)
	ctx, span := tracing.GetTracer().Start(ctx, "marketsync.FetchAndSync")
	defer span.End()

	logger := logging.FromContext(ctx)
	start := time.Now()
	res := Result{RunID: runID}
	mergeCtx := context.WithoutCancel(ctx)

	logger.Info("market sync started")

	for page := 1; page <= MaxPages; page++ {
		records, err := s.fetcher.FetchPage(ctx, page, PageSize)
		if errors.Is(err, marketdata.ErrInterrupted) {
			logger.Warn("market sync interrupted", slog.Int("page", page))
			res.Interrupted = true
			break
		}
		if err != nil {
			logger.Error("market page fetch failed", slog.Int("page", page), slog.Any("error", err))
			break
		}
		if len(records) == 0 {
			break
		}
		res.Pages++
		res.Fetched += len(records)

		for i := range records {
			s.mergeOne(mergeCtx, logger, &records[i], &res)
		}
	}

	res.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("pages", res.Pages),
		attribute.Int("fetched", res.Fetched),
		attribute.Int("inserted", res.Inserted),
		attribute.Int("updated", res.Updated),
		attribute.Int("failed", res.Failed),
	)
	metrics.RecordSyncRun(metrics.JobMarketSync, res.Duration, metrics.SyncOutcome{
		Fetched:  res.Fetched,
		Dropped:  res.Dropped,
		Inserted: res.Inserted,
		Updated:  res.Updated,
		Failed:   res.Failed,
	})
	logger.Info("market sync finished",
		slog.Int("pages", res.Pages),
		slog.Int("fetched", res.Fetched),
		slog.Int("dropped", res.Dropped),
		slog.Int("inserted", res.Inserted),
		slog.Int("updated", res.Updated),
		slog.Int("failed", res.Failed),
		slog.Duration("duration", res.Duration))
	return res
}

func (s *Service) mergeOne(ctx context.Context, logger *slog.Logger, rec *coingecko.MarketRecord, res *Result) {
	c, ok := s.converter.ToCryptocurrency(ctx, rec)
	if !ok {
		res.Dropped++
		return
	}
	if err := c.Validate(); err != nil {
		res.Dropped++
		logger.Warn("dropping invalid market record", slog.String("id", rec.ID), slog.Any("error", err))
		return
	}
	res.Attempted++
	inserted, err := s.store.Upsert(ctx, c)
	switch {
	case err != nil:
		res.Failed++
		logger.Error("failed to merge cryptocurrency",
			slog.String("symbol", c.Symbol),
			slog.Any("error", err))
	case inserted:
		res.Inserted++
	default:
		res.Updated++
	}
}
