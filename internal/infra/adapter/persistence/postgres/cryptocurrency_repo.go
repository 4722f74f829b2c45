// Package postgres implements the repositories on database/sql with the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/observability/metrics"
	"crypto-feed/internal/repository"
)

type CryptocurrencyRepo struct {
	db *sql.DB
}

func NewCryptocurrencyRepo(db *sql.DB) repository.CryptocurrencyRepository {
	return &CryptocurrencyRepo{db: db}
}

const cryptoColumns = `id, symbol, name, current_price, market_cap, market_cap_rank, total_volume,
price_change_24h, price_change_percentage_24h, circulating_supply, total_supply, max_supply,
last_updated, created_at, updated_at`

func (repo *CryptocurrencyRepo) GetBySymbol(ctx context.Context, symbol string) (*entity.Cryptocurrency, error) {
	defer observe("crypto_get_by_symbol", time.Now())
	query := `SELECT ` + cryptoColumns + `
FROM cryptocurrencies
WHERE UPPER(symbol) = UPPER($1)
LIMIT 1`
	var c entity.Cryptocurrency
	err := repo.db.QueryRowContext(ctx, query, symbol).Scan(
		&c.ID, &c.Symbol, &c.Name, &c.CurrentPrice, &c.MarketCap, &c.MarketCapRank, &c.TotalVolume,
		&c.PriceChange24h, &c.PriceChangePercentage24h, &c.CirculatingSupply, &c.TotalSupply, &c.MaxSupply,
		&c.LastUpdated, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySymbol: %w", err)
	}
	return &c, nil
}

func (repo *CryptocurrencyRepo) Create(ctx context.Context, c *entity.Cryptocurrency) error {
	defer observe("crypto_create", time.Now())
	const query = `
INSERT INTO cryptocurrencies (symbol, name, current_price, market_cap, market_cap_rank, total_volume,
    price_change_24h, price_change_percentage_24h, circulating_supply, total_supply, max_supply, last_updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		entity.NormalizeSymbol(c.Symbol), c.Name, c.CurrentPrice, c.MarketCap, c.MarketCapRank, c.TotalVolume,
		c.PriceChange24h, c.PriceChangePercentage24h, c.CirculatingSupply, c.TotalSupply, c.MaxSupply, c.LastUpdated,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	c.Symbol = entity.NormalizeSymbol(c.Symbol)
	return nil
}

func (repo *CryptocurrencyRepo) Update(ctx context.Context, c *entity.Cryptocurrency) error {
	defer observe("crypto_update", time.Now())
	const query = `
UPDATE cryptocurrencies
SET name = $1, current_price = $2, market_cap = $3, market_cap_rank = $4, total_volume = $5,
    price_change_24h = $6, price_change_percentage_24h = $7, circulating_supply = $8,
    total_supply = $9, max_supply = $10, last_updated = $11, updated_at = now()
WHERE id = $12
RETURNING updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		c.Name, c.CurrentPrice, c.MarketCap, c.MarketCapRank, c.TotalVolume,
		c.PriceChange24h, c.PriceChangePercentage24h, c.CirculatingSupply,
		c.TotalSupply, c.MaxSupply, c.LastUpdated, c.ID,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *CryptocurrencyRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM cryptocurrencies`
	var n int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

// MarketStatistics aggregates in a single query; COALESCE keeps an empty table at zero.
func (repo *CryptocurrencyRepo) MarketStatistics(ctx context.Context) (entity.MarketStatistics, error) {
	defer observe("crypto_statistics", time.Now())
	const query = `
SELECT COUNT(*),
       COALESCE(SUM(market_cap), 0),
       COALESCE(AVG(price_change_percentage_24h), 0),
       COALESCE(MAX(price_change_percentage_24h), 0),
       COALESCE(MIN(price_change_percentage_24h), 0)
FROM cryptocurrencies`
	var st entity.MarketStatistics
	err := repo.db.QueryRowContext(ctx, query).Scan(
		&st.Count, &st.TotalMarketCap, &st.AvgChangePct, &st.MaxChangePct, &st.MinChangePct,
	)
	if err != nil {
		return entity.MarketStatistics{}, fmt.Errorf("MarketStatistics: %w", err)
	}
	return st, nil
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}
