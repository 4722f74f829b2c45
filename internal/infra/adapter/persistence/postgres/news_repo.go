package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/repository"
)

type NewsRepo struct {
	db *sql.DB
}

func NewNewsRepo(db *sql.DB) repository.NewsRepository {
	return &NewsRepo{db: db}
}

func (repo *NewsRepo) GetByArticleID(ctx context.Context, articleID string) (*entity.NewsArticle, error) {
	defer observe("news_get_by_article_id", time.Now())
	const query = `
SELECT id, article_id, title, link, keywords, creators, video_url, description, content, pub_date,
       source_icon, source_name, source_url, source_priority, country, category, language,
       coin_mentioned, sentiment, sentiment_score, ai_tag, duplicate, created_at, updated_at
FROM news_articles
WHERE article_id = $1`

	var (
		a                                                   entity.NewsArticle
		keywords, creators, country, category, coins, aiTag []byte
	)
	err := repo.db.QueryRowContext(ctx, query, articleID).Scan(
		&a.ID, &a.ArticleID, &a.Title, &a.Link, &keywords, &creators, &a.VideoURL, &a.Description, &a.Content, &a.PubDate,
		&a.SourceIcon, &a.SourceName, &a.SourceURL, &a.SourcePriority, &country, &category, &a.Language,
		&coins, &a.Sentiment, &a.SentimentScore, &aiTag, &a.Duplicate, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByArticleID: %w", err)
	}

	for _, f := range []struct {
		raw []byte
		dst *[]string
	}{
		{keywords, &a.Keywords}, {creators, &a.Creators}, {country, &a.Country},
		{category, &a.Category}, {coins, &a.CoinMentioned}, {aiTag, &a.AITag},
	} {
		list, err := decodeList(f.raw)
		if err != nil {
			return nil, fmt.Errorf("GetByArticleID: %w", err)
		}
		*f.dst = list
	}
	return &a, nil
}

// listArgs encodes the six list columns in table order:
// keywords, creators, country, category, coin_mentioned, ai_tag.
func listArgs(a *entity.NewsArticle) ([]any, error) {
	lists := [][]string{a.Keywords, a.Creators, a.Country, a.Category, a.CoinMentioned, a.AITag}
	out := make([]any, len(lists))
	for i, l := range lists {
		v, err := encodeList(l)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (repo *NewsRepo) Create(ctx context.Context, a *entity.NewsArticle) error {
	defer observe("news_create", time.Now())
	const query = `
INSERT INTO news_articles (article_id, title, link, keywords, creators, video_url, description, content,
    pub_date, source_icon, source_name, source_url, source_priority, country, category, language,
    coin_mentioned, sentiment, sentiment_score, ai_tag, duplicate)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
RETURNING id, created_at, updated_at`
	l, err := listArgs(a)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	err = repo.db.QueryRowContext(ctx, query,
		a.ArticleID, a.Title, a.Link, l[0], l[1], a.VideoURL, a.Description, a.Content,
		a.PubDate, a.SourceIcon, a.SourceName, a.SourceURL, a.SourcePriority, l[2], l[3], a.Language,
		l[4], a.Sentiment, a.SentimentScore, l[5], a.Duplicate,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *NewsRepo) Update(ctx context.Context, a *entity.NewsArticle) error {
	defer observe("news_update", time.Now())
	const query = `
UPDATE news_articles
SET title = $1, link = $2, keywords = $3, creators = $4, video_url = $5, description = $6, content = $7,
    pub_date = $8, source_icon = $9, source_name = $10, source_url = $11, source_priority = $12,
    country = $13, category = $14, language = $15, coin_mentioned = $16, sentiment = $17,
    sentiment_score = $18, ai_tag = $19, duplicate = $20, updated_at = now()
WHERE id = $21
RETURNING updated_at`
	l, err := listArgs(a)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	err = repo.db.QueryRowContext(ctx, query,
		a.Title, a.Link, l[0], l[1], a.VideoURL, a.Description, a.Content,
		a.PubDate, a.SourceIcon, a.SourceName, a.SourceURL, a.SourcePriority,
		l[2], l[3], a.Language, l[4], a.Sentiment,
		a.SentimentScore, l[5], a.Duplicate, a.ID,
	).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *NewsRepo) DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	defer observe("news_delete_published_before", time.Now())
	const query = `DELETE FROM news_articles WHERE pub_date < $1`
	res, err := repo.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("DeletePublishedBefore: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeletePublishedBefore: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *NewsRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM news_articles`
	var n int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}
