package stats

import (
	"context"
	"errors"
	"testing"

	"crypto-feed/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	stats entity.MarketStatistics
	err   error
}

func (r *stubRepo) GetBySymbol(context.Context, string) (*entity.Cryptocurrency, error) {
	return nil, nil
}
func (r *stubRepo) Create(context.Context, *entity.Cryptocurrency) error { return nil }
func (r *stubRepo) Update(context.Context, *entity.Cryptocurrency) error { return nil }
func (r *stubRepo) Count(context.Context) (int64, error)                 { return r.stats.Count, nil }
func (r *stubRepo) MarketStatistics(context.Context) (entity.MarketStatistics, error) {
	return r.stats, r.err
}

func TestMarketStatistics(t *testing.T) {
	want := entity.MarketStatistics{
		Count:          2,
		TotalMarketCap: decimal.NewFromInt(1250000000000),
		AvgChangePct:   decimal.RequireFromString("1.25"),
		MaxChangePct:   decimal.RequireFromString("5.0"),
		MinChangePct:   decimal.RequireFromString("-2.5"),
	}
	svc := &Service{Repo: &stubRepo{stats: want}}

	got, err := svc.MarketStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMarketStatistics_Error(t *testing.T) {
	svc := &Service{Repo: &stubRepo{err: errors.New("db down")}}

	_, err := svc.MarketStatistics(context.Background())
	assert.ErrorContains(t, err, "db down")
}
