// Package entity defines the canonical domain entities stored by the ingestion pipelines.
// Provider payloads are normalized into these types before they reach persistence.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cryptocurrency is the canonical price record of a single asset.
// Symbol is the natural key and is always stored upper-cased.
type Cryptocurrency struct {
	ID                       int64
	Symbol                   string
	Name                     string
	CurrentPrice             decimal.NullDecimal
	MarketCap                decimal.NullDecimal
	MarketCapRank            *int
	TotalVolume              decimal.NullDecimal
	PriceChange24h           decimal.NullDecimal
	PriceChangePercentage24h decimal.NullDecimal
	CirculatingSupply        decimal.NullDecimal
	TotalSupply              decimal.NullDecimal
	MaxSupply                decimal.NullDecimal
	LastUpdated              time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// NormalizeSymbol returns the canonical form of a symbol used for lookups.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ApplyMutable overwrites every mutable attribute of c with the value from src.
// ID, Symbol and CreatedAt are identity and bookkeeping fields and are left untouched.
// The list is explicit so that adding a field requires touching this method.
func (c *Cryptocurrency) ApplyMutable(src *Cryptocurrency) {
	c.Name = src.Name
	c.CurrentPrice = src.CurrentPrice
	c.MarketCap = src.MarketCap
	c.MarketCapRank = src.MarketCapRank
	c.TotalVolume = src.TotalVolume
	c.PriceChange24h = src.PriceChange24h
	c.PriceChangePercentage24h = src.PriceChangePercentage24h
	c.CirculatingSupply = src.CirculatingSupply
	c.TotalSupply = src.TotalSupply
	c.MaxSupply = src.MaxSupply
	c.LastUpdated = src.LastUpdated
}

// Validate checks the fields required before a record can be persisted.
func (c *Cryptocurrency) Validate() error {
	if strings.TrimSpace(c.Symbol) == "" {
		return &ValidationError{Field: "symbol", Message: "symbol is required"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}
