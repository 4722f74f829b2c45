// Package stats exposes aggregates over stored market data.
package stats

import (
	"context"
	"fmt"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/observability/metrics"
	"crypto-feed/internal/repository"
)

// Service reads market statistics.
type Service struct {
	Repo repository.CryptocurrencyRepository
}

// MarketStatistics returns count, total market cap and the average, maximum and
// minimum 24h price change percentage. An empty store yields all zeros.
func (s *Service) MarketStatistics(ctx context.Context) (entity.MarketStatistics, error) {
	st, err := s.Repo.MarketStatistics(ctx)
	if err != nil {
		return entity.MarketStatistics{}, fmt.Errorf("market statistics: %w", err)
	}
	metrics.UpdateStoredRecords("cryptocurrency", st.Count)
	return st, nil
}
