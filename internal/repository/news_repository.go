package repository

import (
	"context"
	"time"

	"crypto-feed/internal/domain/entity"
)

// NewsRepository persists news articles keyed by their provider article id.
type NewsRepository interface {
	// GetByArticleID returns (nil, nil) when the id is unknown.
	GetByArticleID(ctx context.Context, articleID string) (*entity.NewsArticle, error)
	Create(ctx context.Context, a *entity.NewsArticle) error
	Update(ctx context.Context, a *entity.NewsArticle) error
	// DeletePublishedBefore removes articles whose publish date is strictly before cutoff
	// and returns the number of rows removed.
	DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}
