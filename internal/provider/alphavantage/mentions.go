package alphavantage

import "strings"

const cryptoTickerPrefix = "crypto:"

// coinTerms is scanned in order; the order determines the order of the result.
var coinTerms = []string{
	"bitcoin", "btc", "ethereum", "eth", "binance", "bnb", "cardano", "ada",
	"solana", "sol", "dogecoin", "doge", "polygon", "matic", "chainlink", "link",
	"avalanche", "avax", "polkadot", "dot", "uniswap", "uni", "litecoin", "ltc",
	"ripple", "xrp", "stellar", "xlm", "tron", "trx", "cosmos", "atom",
}

// ExtractCoinMentions returns the lower-cased coin identifiers an article refers to.
//
// Ticker annotations are read first: for every ticker containing "CRYPTO:" (any case)
// the three characters following the prefix are taken. Then the lower-cased
// title and summary are searched for each vocabulary term by plain substring, so
// "eth" also matches inside "ethereum". The result has no duplicates and keeps
// first-seen order.
func ExtractCoinMentions(title, summary string, tickers []TickerSentiment) []string {
	seen := make(map[string]struct{})
	mentions := make([]string, 0)
	add := func(m string) {
		if _, ok := seen[m]; ok {
			return
		}
		seen[m] = struct{}{}
		mentions = append(mentions, m)
	}

	for _, ts := range tickers {
		t := strings.ToLower(ts.Ticker)
		i := strings.Index(t, cryptoTickerPrefix)
		if i < 0 {
			continue
		}
		rest := t[i+len(cryptoTickerPrefix):]
		if len(rest) < 3 {
			continue
		}
		add(rest[:3])
	}

	text := strings.ToLower(title + " " + summary)
	for _, term := range coinTerms {
		if strings.Contains(text, term) {
			add(term)
		}
	}
	return mentions
}
