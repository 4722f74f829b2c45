package alphavantage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"crypto-feed/internal/domain/entity"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

const sampleEnvelope = `{
  "items": "2",
  "sentiment_score_definition": "x <= -0.35: Bearish",
  "relevance_score_definition": "0 < x <= 1",
  "feed": [
    {
      "title": "Bitcoin surges as BTC ETF approved",
      "url": "https://example.com/a",
      "time_published": "20250105T143000",
      "authors": ["Jane Doe", "John Roe"],
      "summary": "Markets rallied.",
      "banner_image": "https://example.com/a.png",
      "source": "Example Wire",
      "category_within_source": "Markets",
      "source_domain": "example.com",
      "topics": [
        {"topic": "Blockchain", "relevance_score": "0.9"},
        {"topic": "Financial Markets", "relevance_score": "0.5"}
      ],
      "overall_sentiment_score": 0.31,
      "overall_sentiment_label": "Somewhat-Bullish",
      "ticker_sentiment": [
        {"ticker": "CRYPTO:BTC", "relevance_score": "0.8", "ticker_sentiment_score": "0.4", "ticker_sentiment_label": "Bullish"},
        {"ticker": "COIN", "relevance_score": "0.2", "ticker_sentiment_score": "0.1", "ticker_sentiment_label": "Neutral"}
      ]
    },
    {
      "title": "Quiet day",
      "url": "https://example.com/b",
      "time_published": "not-a-date",
      "summary": ""
    }
  ]
}`

func decodeEnvelope(t *testing.T) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(sampleEnvelope), &env))
	require.Len(t, env.Feed, 2)
	return env
}

func TestToNewsArticle(t *testing.T) {
	env := decodeEnvelope(t)
	c := NewConverterWithClock(fixedClock)

	got, ok := c.ToNewsArticle(context.Background(), &env.Feed[0])
	require.True(t, ok)

	score := 0.31
	want := &entity.NewsArticle{
		ArticleID:      "av_046a4934057f51cf",
		Title:          "Bitcoin surges as BTC ETF approved",
		Link:           "https://example.com/a",
		Keywords:       []string{"Blockchain", "Financial Markets"},
		Creators:       []string{"Jane Doe", "John Roe"},
		Description:    "Markets rallied.",
		Content:        "Markets rallied.",
		PubDate:        time.Date(2025, 1, 5, 14, 30, 0, 0, time.UTC),
		SourceName:     "Example Wire",
		SourceURL:      "example.com",
		Category:       []string{"Markets"},
		Language:       "en",
		CoinMentioned:  []string{"btc", "bitcoin"},
		Sentiment:      "Somewhat-Bullish",
		SentimentScore: &score,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ToNewsArticle mismatch (-want +got):\n%s", diff)
	}
}

func TestToNewsArticle_UnparseableDateUsesNow(t *testing.T) {
	env := decodeEnvelope(t)
	c := NewConverterWithClock(fixedClock)

	got, ok := c.ToNewsArticle(context.Background(), &env.Feed[1])
	require.True(t, ok)
	assert.Equal(t, fixedNow, got.PubDate)
	assert.Empty(t, got.CoinMentioned)
	assert.Nil(t, got.Category)
	assert.Nil(t, got.SentimentScore)
	assert.False(t, got.Duplicate)
}

func TestToNewsArticle_Invalid(t *testing.T) {
	c := NewConverter()
	tests := map[string]*Article{
		"nil":         nil,
		"blank title": {Title: "  ", URL: "https://example.com/x"},
		"blank url":   {Title: "Title", URL: ""},
	}
	for name, a := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := c.ToNewsArticle(context.Background(), a)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestArticleID(t *testing.T) {
	assert.Equal(t, "av_046a4934057f51cf", ArticleID("https://example.com/a"))
	assert.Equal(t, ArticleID("https://example.com/a"), ArticleID("https://example.com/a"))
	assert.NotEqual(t, ArticleID("https://example.com/a"), ArticleID("https://example.com/b"))
	assert.Len(t, ArticleID("anything"), len("av_")+16)
}

func TestParsePublished(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"20250105T143000", time.Date(2025, 1, 5, 14, 30, 0, 0, time.UTC), false},
		{"2025-01-05T14:30:00Z", time.Date(2025, 1, 5, 14, 30, 0, 0, time.UTC), false},
		{"2025-01-05T16:30:00+02:00", time.Date(2025, 1, 5, 14, 30, 0, 0, time.UTC), false},
		{"2025-01-05T14:30:00", time.Date(2025, 1, 5, 14, 30, 0, 0, time.UTC), false},
		{"not-a-date", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePublished(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestEnvelope_ProviderMessage(t *testing.T) {
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(`{"Information": "rate limit reached"}`), &env))
	assert.Equal(t, "rate limit reached", env.ProviderMessage())
	assert.Nil(t, env.Feed)

	require.NoError(t, json.Unmarshal([]byte(`{"Error Message": "invalid api call"}`), &env))
	assert.Equal(t, "invalid api call", env.ProviderMessage())

	assert.Empty(t, (&Envelope{}).ProviderMessage())
}
