package alphavantage

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"time"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/observability/logging"
)

// publishedLayouts are tried in order. The first is the provider's compact form.
var publishedLayouts = []string{
	"20060102T150405",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ArticleID derives the stable natural key of an article from its link.
func ArticleID(link string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(link))
	return fmt.Sprintf("av_%016x", h.Sum64())
}

// ParsePublished parses a time_published value. Values without a zone are read as UTC.
func ParsePublished(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range publishedLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Converter turns feed articles into canonical news articles.
type Converter struct {
	now func() time.Time
}

// NewConverter returns a Converter using the wall clock.
func NewConverter() *Converter {
	return &Converter{now: time.Now}
}

// NewConverterWithClock returns a Converter whose fallback publish date comes from now.
func NewConverterWithClock(now func() time.Time) *Converter {
	return &Converter{now: now}
}

// ToNewsArticle converts a. It returns false when a is nil or lacks a title or url.
// A missing or unparseable publish date is replaced by the current time.
func (c *Converter) ToNewsArticle(ctx context.Context, a *Article) (*entity.NewsArticle, bool) {
	logger := logging.FromContext(ctx)
	if a == nil || strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.URL) == "" {
		logger.Warn("dropping article without title or url")
		return nil, false
	}

	pubDate, err := ParsePublished(a.TimePublished)
	if err != nil {
		logger.Warn("unparseable time_published, using current time",
			slog.String("url", a.URL),
			slog.String("time_published", a.TimePublished))
		pubDate = c.now().UTC()
	}

	n := &entity.NewsArticle{
		ArticleID:      ArticleID(a.URL),
		Title:          a.Title,
		Link:           a.URL,
		Keywords:       topicNames(a.Topics),
		Creators:       a.Authors,
		Description:    a.Summary,
		Content:        a.Summary,
		PubDate:        pubDate,
		SourceName:     a.Source,
		SourceURL:      a.SourceDomain,
		Language:       "en",
		CoinMentioned:  ExtractCoinMentions(a.Title, a.Summary, a.TickerSentiment),
		Sentiment:      a.OverallSentimentLabel,
		SentimentScore: a.OverallSentimentScore,
		Duplicate:      false,
	}
	if cat := strings.TrimSpace(a.CategoryWithinSource); cat != "" {
		n.Category = []string{cat}
	}
	return n, true
}

func topicNames(topics []Topic) []string {
	if len(topics) == 0 {
		return nil
	}
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		if t.Topic != "" {
			names = append(names, t.Topic)
		}
	}
	return names
}
