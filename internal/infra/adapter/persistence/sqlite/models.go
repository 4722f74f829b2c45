// Package sqlite implements the repositories on GORM with the embedded SQLite driver.
// It backs single-node deployments and local development (DB_DRIVER=sqlite).
package sqlite

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"crypto-feed/internal/domain/entity"
)

type cryptocurrencyModel struct {
	ID                       int64               `gorm:"primaryKey"`
	Symbol                   string              `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name                     string              `gorm:"not null"`
	CurrentPrice             decimal.NullDecimal `gorm:"type:numeric"`
	MarketCap                decimal.NullDecimal `gorm:"type:numeric"`
	MarketCapRank            *int
	TotalVolume              decimal.NullDecimal `gorm:"type:numeric"`
	PriceChange24h           decimal.NullDecimal `gorm:"column:price_change_24h;type:numeric"`
	PriceChangePercentage24h decimal.NullDecimal `gorm:"column:price_change_percentage_24h;type:numeric"`
	CirculatingSupply        decimal.NullDecimal `gorm:"type:numeric"`
	TotalSupply              decimal.NullDecimal `gorm:"type:numeric"`
	MaxSupply                decimal.NullDecimal `gorm:"type:numeric"`
	LastUpdated              time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (cryptocurrencyModel) TableName() string {
	return "cryptocurrencies"
}

type newsArticleModel struct {
	ID             int64    `gorm:"primaryKey"`
	ArticleID      string   `gorm:"type:varchar(64);not null;uniqueIndex"`
	Title          string   `gorm:"not null"`
	Link           string   `gorm:"not null"`
	Keywords       []string `gorm:"type:text;serializer:json"`
	Creators       []string `gorm:"type:text;serializer:json"`
	VideoURL       string
	Description    string    `gorm:"type:text"`
	Content        string    `gorm:"type:text"`
	PubDate        time.Time `gorm:"index"`
	SourceIcon     string
	SourceName     string
	SourceURL      string
	SourcePriority *int
	Country        []string `gorm:"type:text;serializer:json"`
	Category       []string `gorm:"type:text;serializer:json"`
	Language       string
	CoinMentioned  []string `gorm:"type:text;serializer:json"`
	Sentiment      string
	SentimentScore *float64
	AITag          []string `gorm:"column:ai_tag;type:text;serializer:json"`
	Duplicate      bool     `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (newsArticleModel) TableName() string {
	return "news_articles"
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&cryptocurrencyModel{}, &newsArticleModel{})
}

func fromCryptocurrency(c *entity.Cryptocurrency) cryptocurrencyModel {
	return cryptocurrencyModel{
		ID:                       c.ID,
		Symbol:                   entity.NormalizeSymbol(c.Symbol),
		Name:                     c.Name,
		CurrentPrice:             c.CurrentPrice,
		MarketCap:                c.MarketCap,
		MarketCapRank:            c.MarketCapRank,
		TotalVolume:              c.TotalVolume,
		PriceChange24h:           c.PriceChange24h,
		PriceChangePercentage24h: c.PriceChangePercentage24h,
		CirculatingSupply:        c.CirculatingSupply,
		TotalSupply:              c.TotalSupply,
		MaxSupply:                c.MaxSupply,
		LastUpdated:              c.LastUpdated.UTC(),
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}

func (m *cryptocurrencyModel) toEntity() *entity.Cryptocurrency {
	return &entity.Cryptocurrency{
		ID:                       m.ID,
		Symbol:                   m.Symbol,
		Name:                     m.Name,
		CurrentPrice:             m.CurrentPrice,
		MarketCap:                m.MarketCap,
		MarketCapRank:            m.MarketCapRank,
		TotalVolume:              m.TotalVolume,
		PriceChange24h:           m.PriceChange24h,
		PriceChangePercentage24h: m.PriceChangePercentage24h,
		CirculatingSupply:        m.CirculatingSupply,
		TotalSupply:              m.TotalSupply,
		MaxSupply:                m.MaxSupply,
		LastUpdated:              m.LastUpdated,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func fromNewsArticle(a *entity.NewsArticle) newsArticleModel {
	return newsArticleModel{
		ID:             a.ID,
		ArticleID:      a.ArticleID,
		Title:          a.Title,
		Link:           a.Link,
		Keywords:       a.Keywords,
		Creators:       a.Creators,
		VideoURL:       a.VideoURL,
		Description:    a.Description,
		Content:        a.Content,
		PubDate:        a.PubDate.UTC(),
		SourceIcon:     a.SourceIcon,
		SourceName:     a.SourceName,
		SourceURL:      a.SourceURL,
		SourcePriority: a.SourcePriority,
		Country:        a.Country,
		Category:       a.Category,
		Language:       a.Language,
		CoinMentioned:  a.CoinMentioned,
		Sentiment:      a.Sentiment,
		SentimentScore: a.SentimentScore,
		AITag:          a.AITag,
		Duplicate:      a.Duplicate,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (m *newsArticleModel) toEntity() *entity.NewsArticle {
	return &entity.NewsArticle{
		ID:             m.ID,
		ArticleID:      m.ArticleID,
		Title:          m.Title,
		Link:           m.Link,
		Keywords:       m.Keywords,
		Creators:       m.Creators,
		VideoURL:       m.VideoURL,
		Description:    m.Description,
		Content:        m.Content,
		PubDate:        m.PubDate,
		SourceIcon:     m.SourceIcon,
		SourceName:     m.SourceName,
		SourceURL:      m.SourceURL,
		SourcePriority: m.SourcePriority,
		Country:        m.Country,
		Category:       m.Category,
		Language:       m.Language,
		CoinMentioned:  m.CoinMentioned,
		Sentiment:      m.Sentiment,
		SentimentScore: m.SentimentScore,
		AITag:          m.AITag,
		Duplicate:      m.Duplicate,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
