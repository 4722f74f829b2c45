// Package coingecko holds the wire shape of the CoinGecko /coins/markets payload
// and its conversion into entity.Cryptocurrency.
package coingecko

import "github.com/shopspring/decimal"

// MarketRecord is one element of the /coins/markets response array.
// Numeric fields are nullable upstream; decimal.NullDecimal accepts both JSON numbers and null.
type MarketRecord struct {
	ID                       string              `json:"id"`
	Symbol                   string              `json:"symbol"`
	Name                     string              `json:"name"`
	CurrentPrice             decimal.NullDecimal `json:"current_price"`
	MarketCap                decimal.NullDecimal `json:"market_cap"`
	MarketCapRank            *int                `json:"market_cap_rank"`
	TotalVolume              decimal.NullDecimal `json:"total_volume"`
	PriceChange24h           decimal.NullDecimal `json:"price_change_24h"`
	PriceChangePercentage24h decimal.NullDecimal `json:"price_change_percentage_24h"`
	CirculatingSupply        decimal.NullDecimal `json:"circulating_supply"`
	TotalSupply              decimal.NullDecimal `json:"total_supply"`
	MaxSupply                decimal.NullDecimal `json:"max_supply"`
	LastUpdated              string              `json:"last_updated"`
}
