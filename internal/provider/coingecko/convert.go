package coingecko

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/observability/logging"
)

// lastUpdatedLayout is the provider timestamp once the trailing zone designator is removed.
// Fractional seconds are accepted by time.Parse without appearing in the layout.
const lastUpdatedLayout = "2006-01-02T15:04:05"

// Converter turns market records into canonical cryptocurrencies.
type Converter struct {
	now func() time.Time
}

// NewConverter returns a Converter using the wall clock.
func NewConverter() *Converter {
	return &Converter{now: time.Now}
}

// NewConverterWithClock returns a Converter whose fallback timestamp comes from now.
func NewConverterWithClock(now func() time.Time) *Converter {
	return &Converter{now: now}
}

// ToCryptocurrency converts r. It returns false only when r is nil.
// An unparseable or missing last_updated falls back to the current time and is logged;
// the record is still produced.
func (c *Converter) ToCryptocurrency(ctx context.Context, r *MarketRecord) (*entity.Cryptocurrency, bool) {
	if r == nil {
		return nil, false
	}

	lastUpdated, err := parseLastUpdated(r.LastUpdated)
	if err != nil {
		logging.FromContext(ctx).Warn("unparseable last_updated, using current time",
			slog.String("symbol", r.Symbol),
			slog.String("last_updated", r.LastUpdated),
			slog.Any("error", err))
		lastUpdated = c.now().UTC()
	}

	return &entity.Cryptocurrency{
		Symbol:                   entity.NormalizeSymbol(r.Symbol),
		Name:                     r.Name,
		CurrentPrice:             r.CurrentPrice,
		MarketCap:                r.MarketCap,
		MarketCapRank:            r.MarketCapRank,
		TotalVolume:              r.TotalVolume,
		PriceChange24h:           r.PriceChange24h,
		PriceChangePercentage24h: r.PriceChangePercentage24h,
		CirculatingSupply:        r.CirculatingSupply,
		TotalSupply:              r.TotalSupply,
		MaxSupply:                r.MaxSupply,
		LastUpdated:              lastUpdated,
	}, true
}

// parseLastUpdated strips a trailing "Z" and parses the remainder as a UTC local date-time.
func parseLastUpdated(s string) (time.Time, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	return time.ParseInLocation(lastUpdatedLayout, s, time.UTC)
}
