package alphavantage

import (
	"strings"
)

// DefaultTickers is the ticker filter used by the scheduled news sync.
const DefaultTickers = "CRYPTO:BTC,CRYPTO:ETH"

// SupportedTickers lists the crypto tickers the provider annotates.
var SupportedTickers = []string{
	"CRYPTO:BTC", "CRYPTO:ETH", "CRYPTO:BNB", "CRYPTO:ADA", "CRYPTO:SOL",
	"CRYPTO:DOGE", "CRYPTO:MATIC", "CRYPTO:LINK", "CRYPTO:AVAX", "CRYPTO:DOT",
	"CRYPTO:UNI", "CRYPTO:LTC", "CRYPTO:XRP", "CRYPTO:XLM", "CRYPTO:TRX", "CRYPTO:ATOM",
}

// SupportedTopics lists the topic filters accepted by NEWS_SENTIMENT.
var SupportedTopics = []string{
	"blockchain", "technology", "financial_markets", "economy_macro",
	"economy_monetary", "finance", "earnings", "ipo", "mergers_and_acquisitions",
}

// keywordPresets are checked in order; the first group with a term contained in
// the keyword wins.
var keywordPresets = []struct {
	terms  []string
	topics string
}{
	{[]string{"bitcoin", "btc", "ethereum", "eth", "crypto"}, "blockchain,technology"},
	{[]string{"finance", "market"}, "financial_markets,finance"},
	{[]string{"economy"}, "economy_macro,economy_monetary"},
}

// DefaultKeywordTopics is used when no preset term occurs in the keyword.
const DefaultKeywordTopics = "blockchain,technology,financial_markets"

// TopicsForKeyword maps a free-text keyword onto a preset topic filter by
// case-insensitive substring match, so "Bitcoin price" and "global economy" hit
// their presets.
func TopicsForKeyword(keyword string) string {
	kw := strings.ToLower(keyword)
	for _, p := range keywordPresets {
		for _, term := range p.terms {
			if strings.Contains(kw, term) {
				return p.topics
			}
		}
	}
	return DefaultKeywordTopics
}

// TickersForCoins builds a ticker filter such as "CRYPTO:BTC,CRYPTO:SOL".
// Blank entries are skipped; an empty result means there is nothing to query.
func TickersForCoins(coins []string) string {
	tickers := make([]string, 0, len(coins))
	for _, c := range coins {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		tickers = append(tickers, "CRYPTO:"+c)
	}
	return strings.Join(tickers, ",")
}
