package repository

import (
	"context"

	"crypto-feed/internal/domain/entity"
)

// CryptocurrencyRepository persists price records keyed by symbol.
type CryptocurrencyRepository interface {
	// GetBySymbol looks a record up by symbol, ignoring case.
	// Returns (nil, nil) when no record matches.
	GetBySymbol(ctx context.Context, symbol string) (*entity.Cryptocurrency, error)
	// Create inserts a new record and fills in its ID and timestamps.
	Create(ctx context.Context, c *entity.Cryptocurrency) error
	// Update writes every mutable field of an existing record identified by ID.
	Update(ctx context.Context, c *entity.Cryptocurrency) error
	Count(ctx context.Context) (int64, error)
	// MarketStatistics aggregates over all stored records. An empty table yields zero values.
	MarketStatistics(ctx context.Context) (entity.MarketStatistics, error)
}
