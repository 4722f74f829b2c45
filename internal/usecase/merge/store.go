// Package merge implements insert-or-update of canonical records by natural key.
//
// A merge is a lookup followed by a create or an update; it is not atomic across
// records and two concurrent merges of the same new key may race, in which case the
// loser fails on the unique constraint and is reported as a MergeError.
package merge

import (
	"context"
	"fmt"
	"time"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/observability/metrics"
	"crypto-feed/internal/repository"
	"crypto-feed/internal/resilience/retry"
)

// CryptocurrencyStore merges price records keyed by case-insensitive symbol.
type CryptocurrencyStore struct {
	Repo  repository.CryptocurrencyRepository
	Retry retry.Config
}

// NewCryptocurrencyStore returns a store that retries transient database errors with retry.DBConfig.
func NewCryptocurrencyStore(repo repository.CryptocurrencyRepository) *CryptocurrencyStore {
	return &CryptocurrencyStore{Repo: repo, Retry: retry.DBConfig()}
}

// Upsert inserts c when its symbol is unknown, otherwise copies c's mutable fields onto
// the stored record and saves it. It reports whether a new row was created.
// On update c is left untouched; the stored record keeps its ID, Symbol and CreatedAt.
func (s *CryptocurrencyStore) Upsert(ctx context.Context, c *entity.Cryptocurrency) (bool, error) {
	c.Symbol = entity.NormalizeSymbol(c.Symbol)
	if err := c.Validate(); err != nil {
		return false, err
	}

	var inserted bool
	start := time.Now()
	err := retry.WithBackoff(ctx, s.Retry, func() error {
		existing, err := s.Repo.GetBySymbol(ctx, c.Symbol)
		if err != nil {
			return fmt.Errorf("get by symbol: %w", err)
		}
		if existing == nil {
			if err := s.Repo.Create(ctx, c); err != nil {
				return fmt.Errorf("create: %w", err)
			}
			inserted = true
			return nil
		}
		existing.ApplyMutable(c)
		if err := s.Repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("update: %w", err)
		}
		inserted = false
		return nil
	})
	metrics.RecordDBQuery("upsert_cryptocurrency", time.Since(start))
	if err != nil {
		return false, &MergeError{Kind: "cryptocurrency", Key: c.Symbol, Err: err}
	}
	return inserted, nil
}

// NewsStore merges articles keyed by exact article id.
type NewsStore struct {
	Repo  repository.NewsRepository
	Retry retry.Config
}

// NewNewsStore returns a store that retries transient database errors with retry.DBConfig.
func NewNewsStore(repo repository.NewsRepository) *NewsStore {
	return &NewsStore{Repo: repo, Retry: retry.DBConfig()}
}

// Upsert inserts a when its article id is unknown, otherwise replaces the stored
// article's mutable fields with a's. Lists are replaced wholesale.
func (s *NewsStore) Upsert(ctx context.Context, a *entity.NewsArticle) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}

	var inserted bool
	start := time.Now()
	err := retry.WithBackoff(ctx, s.Retry, func() error {
		existing, err := s.Repo.GetByArticleID(ctx, a.ArticleID)
		if err != nil {
			return fmt.Errorf("get by article id: %w", err)
		}
		if existing == nil {
			if err := s.Repo.Create(ctx, a); err != nil {
				return fmt.Errorf("create: %w", err)
			}
			inserted = true
			return nil
		}
		existing.ApplyMutable(a)
		if err := s.Repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("update: %w", err)
		}
		inserted = false
		return nil
	})
	metrics.RecordDBQuery("upsert_news_article", time.Since(start))
	if err != nil {
		return false, &MergeError{Kind: "news_article", Key: a.ArticleID, Err: err}
	}
	return inserted, nil
}
