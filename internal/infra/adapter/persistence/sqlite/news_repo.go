package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/repository"
)

// NewsRepo implements repository.NewsRepository. List fields are stored as JSON text.
type NewsRepo struct{ db *gorm.DB }

func NewNewsRepo(db *gorm.DB) repository.NewsRepository {
	return &NewsRepo{db: db}
}

func (repo *NewsRepo) GetByArticleID(ctx context.Context, articleID string) (*entity.NewsArticle, error) {
	var m newsArticleModel
	res := repo.db.WithContext(ctx).Where("article_id = ?", articleID).Limit(1).Find(&m)
	if res.Error != nil {
		return nil, fmt.Errorf("GetByArticleID: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return m.toEntity(), nil
}

func (repo *NewsRepo) Create(ctx context.Context, a *entity.NewsArticle) error {
	m := fromNewsArticle(a)
	m.ID = 0
	if err := repo.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	a.ID, a.CreatedAt, a.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

func (repo *NewsRepo) Update(ctx context.Context, a *entity.NewsArticle) error {
	m := fromNewsArticle(a)
	res := repo.db.WithContext(ctx).
		Model(&m).
		Select("*").
		Omit("ID", "ArticleID", "CreatedAt").
		Updates(&m)
	if res.Error != nil {
		return fmt.Errorf("Update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	a.UpdatedAt = m.UpdatedAt
	return nil
}

func (repo *NewsRepo) DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Where("pub_date < ?", cutoff.UTC()).Delete(&newsArticleModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("DeletePublishedBefore: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (repo *NewsRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.WithContext(ctx).Model(&newsArticleModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}
