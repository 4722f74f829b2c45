package alphavantage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCoinMentions(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		summary string
		tickers []TickerSentiment
		want    []string
	}{
		{
			name:  "title terms in vocabulary order",
			title: "Bitcoin surges as BTC ETF approved",
			want:  []string{"bitcoin", "btc"},
		},
		{
			name:  "substring matching finds eth inside ethereum",
			title: "Ethereum upgrade ships",
			want:  []string{"ethereum", "eth"},
		},
		{
			name:    "ticker annotations come first and are deduplicated",
			title:   "Solana and bitcoin",
			tickers: []TickerSentiment{{Ticker: "CRYPTO:SOL"}, {Ticker: "crypto:btc"}, {Ticker: "CRYPTO:SOL"}},
			want:    []string{"sol", "btc", "bitcoin", "solana"},
		},
		{
			name:    "short or non-crypto tickers are ignored",
			tickers: []TickerSentiment{{Ticker: "CRYPTO:X"}, {Ticker: "FOREX:USD"}, {Ticker: "MSFT"}},
			want:    []string{},
		},
		{
			name:    "ticker takes only three characters",
			tickers: []TickerSentiment{{Ticker: "CRYPTO:DOGE"}},
			want:    []string{"dog"},
		},
		{
			name:    "summary is searched too",
			title:   "Weekly wrap",
			summary: "XRP and Cardano led gains",
			want:    []string{"cardano", "xrp"},
		},
		{
			name: "nothing mentioned",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCoinMentions(tt.title, tt.summary, tt.tickers)
			assert.Equal(t, tt.want, got)
		})
	}
}
