// Package alphavantage holds the wire shape of the Alpha Vantage NEWS_SENTIMENT
// payload and its conversion into entity.NewsArticle.
package alphavantage

// Envelope is the top-level NEWS_SENTIMENT response. When the API key is over quota
// the provider answers 200 with only Information or Note set and no feed.
type Envelope struct {
	Items                    string    `json:"items"`
	SentimentScoreDefinition string    `json:"sentiment_score_definition"`
	RelevanceScoreDefinition string    `json:"relevance_score_definition"`
	Feed                     []Article `json:"feed"`
	Information              string    `json:"Information"`
	Note                     string    `json:"Note"`
	ErrorMessage             string    `json:"Error Message"`
}

// ProviderMessage returns the advisory or error text of a non-data envelope, or "".
func (e *Envelope) ProviderMessage() string {
	switch {
	case e.ErrorMessage != "":
		return e.ErrorMessage
	case e.Information != "":
		return e.Information
	case e.Note != "":
		return e.Note
	}
	return ""
}

// Article is one element of the feed array.
type Article struct {
	Title                 string            `json:"title"`
	URL                   string            `json:"url"`
	TimePublished         string            `json:"time_published"`
	Authors               []string          `json:"authors"`
	Summary               string            `json:"summary"`
	BannerImage           string            `json:"banner_image"`
	Source                string            `json:"source"`
	CategoryWithinSource  string            `json:"category_within_source"`
	SourceDomain          string            `json:"source_domain"`
	Topics                []Topic           `json:"topics"`
	OverallSentimentScore *float64          `json:"overall_sentiment_score"`
	OverallSentimentLabel string            `json:"overall_sentiment_label"`
	TickerSentiment       []TickerSentiment `json:"ticker_sentiment"`
}

// Topic is a topic annotation. Scores are decimal strings upstream.
type Topic struct {
	Topic          string `json:"topic"`
	RelevanceScore string `json:"relevance_score"`
}

// TickerSentiment is a per-ticker annotation such as "CRYPTO:BTC".
type TickerSentiment struct {
	Ticker               string `json:"ticker"`
	RelevanceScore       string `json:"relevance_score"`
	TickerSentimentScore string `json:"ticker_sentiment_score"`
	TickerSentimentLabel string `json:"ticker_sentiment_label"`
}
