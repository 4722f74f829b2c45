package entity

import (
	"strings"
	"time"
)

// NewsArticle is the canonical form of a news/sentiment article.
// ArticleID is the natural key. Duplicate marks rows that are suppressed from
// listings but retained; the sync path never deletes on it.
type NewsArticle struct {
	ID             int64
	ArticleID      string
	Title          string
	Link           string
	Keywords       []string
	Creators       []string
	VideoURL       string
	Description    string
	Content        string
	PubDate        time.Time
	SourceIcon     string
	SourceName     string
	SourceURL      string
	SourcePriority *int
	Country        []string
	Category       []string
	Language       string
	CoinMentioned  []string
	Sentiment      string
	SentimentScore *float64
	AITag          []string
	Duplicate      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplyMutable overwrites every mutable attribute of a with the value from src.
// Lists are replaced, not merged. ID, ArticleID and CreatedAt are left untouched.
func (a *NewsArticle) ApplyMutable(src *NewsArticle) {
	a.Title = src.Title
	a.Link = src.Link
	a.Keywords = src.Keywords
	a.Creators = src.Creators
	a.VideoURL = src.VideoURL
	a.Description = src.Description
	a.Content = src.Content
	a.PubDate = src.PubDate
	a.SourceIcon = src.SourceIcon
	a.SourceName = src.SourceName
	a.SourceURL = src.SourceURL
	a.SourcePriority = src.SourcePriority
	a.Country = src.Country
	a.Category = src.Category
	a.Language = src.Language
	a.CoinMentioned = src.CoinMentioned
	a.Sentiment = src.Sentiment
	a.SentimentScore = src.SentimentScore
	a.AITag = src.AITag
	a.Duplicate = src.Duplicate
}

// Validate checks the fields required before an article can be persisted.
func (a *NewsArticle) Validate() error {
	if strings.TrimSpace(a.ArticleID) == "" {
		return &ValidationError{Field: "article_id", Message: "article id is required"}
	}
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(a.Link) == "" {
		return &ValidationError{Field: "link", Message: "link is required"}
	}
	return nil
}
