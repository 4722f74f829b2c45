package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestNormalizeSymbol(t *testing.T) {
	tests := map[string]string{
		"btc":   "BTC",
		" eth ": "ETH",
		"BnB":   "BNB",
		"":      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeSymbol(in), "input %q", in)
	}
}

func TestCryptocurrency_ApplyMutable(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := &Cryptocurrency{
		ID:           7,
		Symbol:       "BTC",
		Name:         "Bitcoin (old)",
		CurrentPrice: nd("1"),
		MaxSupply:    nd("21000000"),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	newRank := 2
	incoming := &Cryptocurrency{
		ID:                       99,
		Symbol:                   "btc",
		Name:                     "Bitcoin",
		CurrentPrice:             nd("65000.12"),
		MarketCap:                nd("850000000000"),
		MarketCapRank:            &newRank,
		TotalVolume:              nd("1000"),
		PriceChange24h:           nd("-12.5"),
		PriceChangePercentage24h: nd("5.0"),
		CirculatingSupply:        nd("19000000"),
		TotalSupply:              nd("19500000"),
		LastUpdated:              time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		CreatedAt:                time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	existing.ApplyMutable(incoming)

	want := &Cryptocurrency{
		ID:                       7,
		Symbol:                   "BTC",
		Name:                     "Bitcoin",
		CurrentPrice:             nd("65000.12"),
		MarketCap:                nd("850000000000"),
		MarketCapRank:            &newRank,
		TotalVolume:              nd("1000"),
		PriceChange24h:           nd("-12.5"),
		PriceChangePercentage24h: nd("5.0"),
		CirculatingSupply:        nd("19000000"),
		TotalSupply:              nd("19500000"),
		LastUpdated:              time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		CreatedAt:                created,
		UpdatedAt:                created,
	}
	if diff := cmp.Diff(want, existing); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	// a null incoming value replaces the stored one
	assert.False(t, existing.MaxSupply.Valid)
}

func TestCryptocurrency_Validate(t *testing.T) {
	assert.NoError(t, (&Cryptocurrency{Symbol: "BTC", Name: "Bitcoin"}).Validate())

	err := (&Cryptocurrency{Name: "Bitcoin"}).Validate()
	var vErr *ValidationError
	if assert.True(t, errors.As(err, &vErr)) {
		assert.Equal(t, "symbol", vErr.Field)
	}

	err = (&Cryptocurrency{Symbol: "BTC", Name: "  "}).Validate()
	if assert.True(t, errors.As(err, &vErr)) {
		assert.Equal(t, "name", vErr.Field)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "title", Message: "title is required"}
	assert.Equal(t, "validation error on field 'title': title is required", err.Error())
}
