// Package repotest provides in-memory repositories for usecase tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"crypto-feed/internal/domain/entity"
)

// Cryptocurrencies is an in-memory repository.CryptocurrencyRepository.
// Set the Err fields to make the corresponding method fail.
type Cryptocurrencies struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]entity.Cryptocurrency

	GetErr    error
	CreateErr error
	UpdateErr error

	Creates int
	Updates int
}

// NewCryptocurrencies returns an empty repository.
func NewCryptocurrencies() *Cryptocurrencies {
	return &Cryptocurrencies{rows: map[string]entity.Cryptocurrency{}}
}

func (r *Cryptocurrencies) GetBySymbol(_ context.Context, symbol string) (*entity.Cryptocurrency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	row, ok := r.rows[entity.NormalizeSymbol(symbol)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *Cryptocurrencies) Create(_ context.Context, c *entity.Cryptocurrency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	key := entity.NormalizeSymbol(c.Symbol)
	if _, ok := r.rows[key]; ok {
		return errDuplicate
	}
	r.nextID++
	now := time.Now().UTC()
	c.ID, c.CreatedAt, c.UpdatedAt = r.nextID, now, now
	r.rows[key] = *c
	r.Creates++
	return nil
}

func (r *Cryptocurrencies) Update(_ context.Context, c *entity.Cryptocurrency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	key := entity.NormalizeSymbol(c.Symbol)
	if _, ok := r.rows[key]; !ok {
		return entity.ErrNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	r.rows[key] = *c
	r.Updates++
	return nil
}

func (r *Cryptocurrencies) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

// MarketStatistics is not aggregated in memory; it returns only the count.
func (r *Cryptocurrencies) MarketStatistics(ctx context.Context) (entity.MarketStatistics, error) {
	n, _ := r.Count(ctx)
	return entity.MarketStatistics{Count: n}, nil
}

// All returns the stored rows ordered by symbol.
func (r *Cryptocurrencies) All() []entity.Cryptocurrency {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Cryptocurrency, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// News is an in-memory repository.NewsRepository.
type News struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]entity.NewsArticle

	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error

	Creates int
	Updates int
}

// NewNews returns an empty repository.
func NewNews() *News {
	return &News{rows: map[string]entity.NewsArticle{}}
}

func (r *News) GetByArticleID(_ context.Context, articleID string) (*entity.NewsArticle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	row, ok := r.rows[articleID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *News) Create(_ context.Context, a *entity.NewsArticle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if _, ok := r.rows[a.ArticleID]; ok {
		return errDuplicate
	}
	r.nextID++
	now := time.Now().UTC()
	a.ID, a.CreatedAt, a.UpdatedAt = r.nextID, now, now
	r.rows[a.ArticleID] = *a
	r.Creates++
	return nil
}

func (r *News) Update(_ context.Context, a *entity.NewsArticle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	if _, ok := r.rows[a.ArticleID]; !ok {
		return entity.ErrNotFound
	}
	a.UpdatedAt = time.Now().UTC()
	r.rows[a.ArticleID] = *a
	r.Updates++
	return nil
}

func (r *News) DeletePublishedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.DeleteErr != nil {
		return 0, r.DeleteErr
	}
	var n int64
	for id, row := range r.rows {
		if row.PubDate.Before(cutoff) {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

func (r *News) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

// Get returns the stored article with the given id.
func (r *News) Get(articleID string) (entity.NewsArticle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[articleID]
	return row, ok
}

// Put stores a directly, bypassing Create bookkeeping.
func (r *News) Put(a entity.NewsArticle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[a.ArticleID] = a
}

// Put stores c directly, bypassing Create bookkeeping.
func (r *Cryptocurrencies) Put(c entity.Cryptocurrency) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[entity.NormalizeSymbol(c.Symbol)] = c
}
