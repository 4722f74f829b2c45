package entity

import "github.com/shopspring/decimal"

// MarketStatistics is the aggregate over all stored price records.
// Aggregates over an empty table are zero, not null.
type MarketStatistics struct {
	Count          int64           `json:"count"`
	TotalMarketCap decimal.Decimal `json:"total_market_cap" swaggertype:"string"`
	AvgChangePct   decimal.Decimal `json:"avg_change_pct" swaggertype:"string"`
	MaxChangePct   decimal.Decimal `json:"max_change_pct" swaggertype:"string"`
	MinChangePct   decimal.Decimal `json:"min_change_pct" swaggertype:"string"`
}
