package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/repository"
)

// CryptocurrencyRepo implements repository.CryptocurrencyRepository. Symbols are
// stored upper-cased, so the unique index on symbol is case-insensitive in effect.
type CryptocurrencyRepo struct{ db *gorm.DB }

func NewCryptocurrencyRepo(db *gorm.DB) repository.CryptocurrencyRepository {
	return &CryptocurrencyRepo{db: db}
}

func (repo *CryptocurrencyRepo) GetBySymbol(ctx context.Context, symbol string) (*entity.Cryptocurrency, error) {
	var m cryptocurrencyModel
	res := repo.db.WithContext(ctx).
		Where("symbol = ?", entity.NormalizeSymbol(symbol)).
		Limit(1).
		Find(&m)
	if res.Error != nil {
		return nil, fmt.Errorf("GetBySymbol: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return m.toEntity(), nil
}

func (repo *CryptocurrencyRepo) Create(ctx context.Context, c *entity.Cryptocurrency) error {
	m := fromCryptocurrency(c)
	m.ID = 0
	if err := repo.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	c.ID, c.Symbol, c.CreatedAt, c.UpdatedAt = m.ID, m.Symbol, m.CreatedAt, m.UpdatedAt
	return nil
}

// Update writes every column except the key, the surrogate id and created_at,
// including zero and NULL values.
func (repo *CryptocurrencyRepo) Update(ctx context.Context, c *entity.Cryptocurrency) error {
	m := fromCryptocurrency(c)
	res := repo.db.WithContext(ctx).
		Model(&m).
		Select("*").
		Omit("ID", "Symbol", "CreatedAt").
		Updates(&m)
	if res.Error != nil {
		return fmt.Errorf("Update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	c.UpdatedAt = m.UpdatedAt
	return nil
}

func (repo *CryptocurrencyRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.WithContext(ctx).Model(&cryptocurrencyModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (repo *CryptocurrencyRepo) MarketStatistics(ctx context.Context) (entity.MarketStatistics, error) {
	const query = `
SELECT COUNT(*),
       COALESCE(SUM(market_cap), 0),
       COALESCE(AVG(price_change_percentage_24h), 0),
       COALESCE(MAX(price_change_percentage_24h), 0),
       COALESCE(MIN(price_change_percentage_24h), 0)
FROM cryptocurrencies`
	var st entity.MarketStatistics
	row := repo.db.WithContext(ctx).Raw(query).Row()
	if err := row.Scan(&st.Count, &st.TotalMarketCap, &st.AvgChangePct, &st.MaxChangePct, &st.MinChangePct); err != nil {
		return entity.MarketStatistics{}, fmt.Errorf("MarketStatistics: %w", err)
	}
	return st, nil
}
