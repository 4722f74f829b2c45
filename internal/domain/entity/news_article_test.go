package entity

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNewsArticle_ApplyMutable(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	existing := &NewsArticle{
		ID:            3,
		ArticleID:     "av_1",
		Title:         "old",
		Link:          "https://example.com/a",
		CoinMentioned: []string{"btc", "eth"},
		Keywords:      []string{"blockchain"},
		Duplicate:     true,
		CreatedAt:     created,
	}
	score := 0.42
	prio := 5
	incoming := &NewsArticle{
		ID:             100,
		ArticleID:      "av_other",
		Title:          "new",
		Link:           "https://example.com/a",
		Keywords:       []string{"finance"},
		Creators:       []string{"Jane"},
		Description:    "d",
		Content:        "c",
		PubDate:        time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		SourceName:     "Reuters",
		SourceURL:      "reuters.com",
		SourcePriority: &prio,
		Category:       []string{"markets"},
		Language:       "en",
		CoinMentioned:  []string{"sol"},
		Sentiment:      "Bullish",
		SentimentScore: &score,
		Duplicate:      false,
		CreatedAt:      time.Now(),
	}

	existing.ApplyMutable(incoming)

	want := &NewsArticle{
		ID:             3,
		ArticleID:      "av_1",
		Title:          "new",
		Link:           "https://example.com/a",
		Keywords:       []string{"finance"},
		Creators:       []string{"Jane"},
		Description:    "d",
		Content:        "c",
		PubDate:        time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		SourceName:     "Reuters",
		SourceURL:      "reuters.com",
		SourcePriority: &prio,
		Category:       []string{"markets"},
		Language:       "en",
		CoinMentioned:  []string{"sol"},
		Sentiment:      "Bullish",
		SentimentScore: &score,
		Duplicate:      false,
		CreatedAt:      created,
	}
	if diff := cmp.Diff(want, existing); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNewsArticle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		article NewsArticle
		field   string
	}{
		{"valid", NewsArticle{ArticleID: "av_1", Title: "t", Link: "https://x"}, ""},
		{"missing id", NewsArticle{Title: "t", Link: "https://x"}, "article_id"},
		{"missing title", NewsArticle{ArticleID: "av_1", Link: "https://x"}, "title"},
		{"missing link", NewsArticle{ArticleID: "av_1", Title: "t"}, "link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.article.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			vErr, ok := err.(*ValidationError)
			if assert.True(t, ok) {
				assert.Equal(t, tt.field, vErr.Field)
			}
		})
	}
}
