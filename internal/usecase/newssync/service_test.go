package newssync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/infra/newsdata"
	"crypto-feed/internal/provider/alphavantage"
	"crypto-feed/internal/repository/repotest"
	"crypto-feed/internal/usecase/merge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	kind   string
	filter string
	limit  int
}

type stubFetcher struct {
	articles []alphavantage.Article
	err      error
	calls    []call
}

func (f *stubFetcher) FetchByTickers(_ context.Context, tickers string, limit int) ([]alphavantage.Article, error) {
	f.calls = append(f.calls, call{"tickers", tickers, limit})
	return f.articles, f.err
}

func (f *stubFetcher) FetchByTopics(_ context.Context, topics string, limit int) ([]alphavantage.Article, error) {
	f.calls = append(f.calls, call{"topics", topics, limit})
	return f.articles, f.err
}

func feedArticle(url, title string) alphavantage.Article {
	return alphavantage.Article{
		Title:         title,
		URL:           url,
		TimePublished: "20240115T103000",
		Summary:       "summary",
		Source:        "Example",
	}
}

func newService(f Fetcher, repo *repotest.News) *Service {
	return NewService(f, nil, merge.NewNewsStore(repo), nil)
}

func TestClampBatchSize(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 1}, {0, 1}, {1, 1}, {10, 10}, {50, 50}, {51, 50}, {1000, 50},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, ClampBatchSize(tt.in))
		})
	}
}

func TestFetchAndSync_DefaultTickers(t *testing.T) {
	f := &stubFetcher{articles: []alphavantage.Article{
		feedArticle("https://example.com/a", "Bitcoin surges as BTC ETF approved"),
		feedArticle("https://example.com/b", "Ethereum upgrade"),
	}}
	repo := repotest.NewNews()

	res := newService(f, repo).FetchAndSync(context.Background(), 500)

	require.Len(t, f.calls, 1)
	assert.Equal(t, call{"tickers", "CRYPTO:BTC,CRYPTO:ETH", MaxBatchSize}, f.calls[0])
	assert.Equal(t, 2, res.Fetched)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, MaxBatchSize, res.BatchSize)

	got, ok := repo.Get(alphavantage.ArticleID("https://example.com/a"))
	require.True(t, ok)
	assert.Equal(t, []string{"bitcoin", "btc"}, got.CoinMentioned)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), got.PubDate)
}

func TestFetchAndSync_DedupByLink(t *testing.T) {
	f := &stubFetcher{articles: []alphavantage.Article{
		feedArticle("https://example.com/a", "first"),
		feedArticle("https://example.com/a", "second"),
	}}
	repo := repotest.NewNews()
	svc := newService(f, repo)

	res := svc.FetchAndSync(context.Background(), 10)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.SeenBefore)

	res = svc.FetchAndSync(context.Background(), 10)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 2, res.SeenBefore)

	n, _ := repo.Count(context.Background())
	assert.Equal(t, int64(1), n)
}

func TestFetchAndSyncForCoins(t *testing.T) {
	f := &stubFetcher{}
	svc := newService(f, repotest.NewNews())

	svc.FetchAndSyncForCoins(context.Background(), []string{"btc", " ", "Sol"}, 0)
	require.Len(t, f.calls, 1)
	assert.Equal(t, call{"tickers", "CRYPTO:BTC,CRYPTO:SOL", 1}, f.calls[0])

	res := svc.FetchAndSyncForCoins(context.Background(), []string{"", "  "}, 30)
	assert.Len(t, f.calls, 1, "blank coin list must not call the provider")
	assert.Zero(t, res.Fetched)
}

func TestFetchAndSyncForKeyword(t *testing.T) {
	tests := []struct {
		keyword string
		topics  string
	}{
		{"Bitcoin", "blockchain,technology"},
		{"market", "financial_markets,finance"},
		{"economy", "economy_macro,economy_monetary"},
		{"defi", "blockchain,technology,financial_markets"},
		{"cryptocurrency", "blockchain,technology"},
		{"stock market news", "financial_markets,finance"},
		{"global economy", "economy_macro,economy_monetary"},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			f := &stubFetcher{}
			newService(f, repotest.NewNews()).FetchAndSyncForKeyword(context.Background(), tt.keyword, 30)
			require.Len(t, f.calls, 1)
			assert.Equal(t, call{"topics", tt.topics, 30}, f.calls[0])
		})
	}
}

func TestFetchAndSync_DropsInvalidAndContinuesPastFailures(t *testing.T) {
	f := &stubFetcher{articles: []alphavantage.Article{
		feedArticle("https://example.com/ok", "ok"),
		feedArticle("", "no link"),
		feedArticle("https://example.com/blank", " "),
		feedArticle("https://example.com/fail", "will fail"),
	}}
	repo := repotest.NewNews()
	failID := alphavantage.ArticleID("https://example.com/fail")
	store := storeFunc(func(ctx context.Context, a *entity.NewsArticle) (bool, error) {
		if a.ArticleID == failID {
			return false, errors.New("unique violation")
		}
		return merge.NewNewsStore(repo).Upsert(ctx, a)
	})

	res := NewService(f, nil, store, nil).FetchAndSync(context.Background(), 10)

	assert.Equal(t, 4, res.Fetched)
	assert.Equal(t, 2, res.Dropped)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Failed)
}

func TestFetchAndSync_Interrupted(t *testing.T) {
	f := &stubFetcher{err: fmt.Errorf("%w: %w", newsdata.ErrInterrupted, context.Canceled)}

	res := newService(f, repotest.NewNews()).FetchAndSync(context.Background(), 10)

	assert.True(t, res.Interrupted)
	assert.Zero(t, res.Fetched)
}

type storeFunc func(ctx context.Context, a *entity.NewsArticle) (bool, error)

func (f storeFunc) Upsert(ctx context.Context, a *entity.NewsArticle) (bool, error) {
	return f(ctx, a)
}
