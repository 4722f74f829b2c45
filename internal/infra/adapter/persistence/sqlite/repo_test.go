package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/infra/adapter/persistence/sqlite"
)

/* ────────────────────────────  helpers  ──────────────────────────── */

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to ":memory:" is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, sqlite.Migrate(db))
	return db
}

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

/* ──────────────────────────── cryptocurrencies ──────────────────────────── */

func TestCryptocurrencyRepo_CreateGetUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewCryptocurrencyRepo(db)
	ctx := context.Background()
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	rank := 1

	c := &entity.Cryptocurrency{
		Symbol: "btc", Name: "Bitcoin", CurrentPrice: dec("50000.5"), MarketCap: dec("1000000000000"),
		MarketCapRank: &rank, LastUpdated: ts,
	}
	require.NoError(t, repo.Create(ctx, c))
	require.NotZero(t, c.ID)
	assert.Equal(t, "BTC", c.Symbol)

	got, err := repo.GetBySymbol(ctx, "Btc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)
	assert.True(t, got.CurrentPrice.Decimal.Equal(decimal.RequireFromString("50000.5")))
	assert.False(t, got.TotalVolume.Valid)
	require.NotNil(t, got.MarketCapRank)
	assert.Equal(t, 1, *got.MarketCapRank)
	assert.True(t, got.LastUpdated.Equal(ts))

	got.Name = "Bitcoin Core"
	got.MarketCapRank = nil
	got.CurrentPrice = decimal.NullDecimal{}
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetBySymbol(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin Core", again.Name)
	assert.Nil(t, again.MarketCapRank)
	assert.False(t, again.CurrentPrice.Valid)
	assert.True(t, again.CreatedAt.Equal(got.CreatedAt))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCryptocurrencyRepo_GetBySymbol_Missing(t *testing.T) {
	repo := sqlite.NewCryptocurrencyRepo(openTestDB(t))

	got, err := repo.GetBySymbol(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCryptocurrencyRepo_DuplicateSymbolRejected(t *testing.T) {
	repo := sqlite.NewCryptocurrencyRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Cryptocurrency{Symbol: "eth", Name: "Ethereum"}))
	assert.Error(t, repo.Create(ctx, &entity.Cryptocurrency{Symbol: "ETH", Name: "Ethereum"}))
}

func TestCryptocurrencyRepo_UpdateMissing(t *testing.T) {
	repo := sqlite.NewCryptocurrencyRepo(openTestDB(t))

	err := repo.Update(context.Background(), &entity.Cryptocurrency{ID: 42, Symbol: "X", Name: "X"})
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestCryptocurrencyRepo_MarketStatistics(t *testing.T) {
	repo := sqlite.NewCryptocurrencyRepo(openTestDB(t))
	ctx := context.Background()

	empty, err := repo.MarketStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Count)
	assert.True(t, empty.TotalMarketCap.IsZero())
	assert.True(t, empty.MinChangePct.IsZero())

	require.NoError(t, repo.Create(ctx, &entity.Cryptocurrency{
		Symbol: "BTC", Name: "Bitcoin", MarketCap: dec("1000000000000"), PriceChangePercentage24h: dec("5.0"),
	}))
	require.NoError(t, repo.Create(ctx, &entity.Cryptocurrency{
		Symbol: "ETH", Name: "Ethereum", MarketCap: dec("250000000000"), PriceChangePercentage24h: dec("-2.5"),
	}))

	got, err := repo.MarketStatistics(ctx)
	require.NoError(t, err)
	want := entity.MarketStatistics{
		Count:          2,
		TotalMarketCap: decimal.NewFromInt(1250000000000),
		AvgChangePct:   decimal.RequireFromString("1.25"),
		MaxChangePct:   decimal.RequireFromString("5.0"),
		MinChangePct:   decimal.RequireFromString("-2.5"),
	}
	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

/* ──────────────────────────── news ──────────────────────────── */

func TestNewsRepo_RoundTripAndUpdate(t *testing.T) {
	repo := sqlite.NewNewsRepo(openTestDB(t))
	ctx := context.Background()
	pub := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	score := 0.31

	a := &entity.NewsArticle{
		ArticleID: "av_046a4934057f51cf", Title: "Bitcoin rallies", Link: "https://example.com/a",
		Keywords: []string{"Blockchain"}, CoinMentioned: []string{"btc", "bitcoin"},
		PubDate: pub, Language: "en", SentimentScore: &score,
	}
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByArticleID(ctx, a.ArticleID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"Blockchain"}, got.Keywords)
	assert.Equal(t, []string{"btc", "bitcoin"}, got.CoinMentioned)
	assert.Nil(t, got.Country)
	require.NotNil(t, got.SentimentScore)
	assert.InDelta(t, 0.31, *got.SentimentScore, 1e-9)
	assert.True(t, got.PubDate.Equal(pub))

	got.Title = "Bitcoin rallies again"
	got.Keywords = []string{"Finance"}
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByArticleID(ctx, a.ArticleID)
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin rallies again", again.Title)
	assert.Equal(t, []string{"Finance"}, again.Keywords)
	assert.Equal(t, a.ID, again.ID)
}

func TestNewsRepo_GetMissing(t *testing.T) {
	repo := sqlite.NewNewsRepo(openTestDB(t))

	got, err := repo.GetByArticleID(context.Background(), "av_none")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewsRepo_DeletePublishedBefore(t *testing.T) {
	repo := sqlite.NewNewsRepo(openTestDB(t))
	ctx := context.Background()
	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, pub := range []time.Time{cutoff.AddDate(0, 0, -10), cutoff.AddDate(0, 0, -1), cutoff.AddDate(0, 0, 1)} {
		id := string(rune('a' + i))
		require.NoError(t, repo.Create(ctx, &entity.NewsArticle{
			ArticleID: "av_" + id, Title: id, Link: "https://example.com/" + id, PubDate: pub,
		}))
	}

	n, err := repo.DeletePublishedBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)
}
