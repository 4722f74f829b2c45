package trigger

import (
	"context"
	"errors"
	"testing"

	"crypto-feed/internal/observability/metrics"
	"crypto-feed/internal/usecase/marketsync"
	"crypto-feed/internal/usecase/newssync"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarket struct{ runs int }

func (f *fakeMarket) FetchAndSync(context.Context) marketsync.Result {
	f.runs++
	return marketsync.Result{Inserted: 3}
}

type fakeNews struct {
	lastBatch   int
	lastCoins   []string
	lastKeyword string
}

func (f *fakeNews) FetchAndSync(_ context.Context, batchSize int) newssync.Result {
	f.lastBatch = batchSize
	return newssync.Result{Inserted: 1}
}

func (f *fakeNews) FetchAndSyncForCoins(_ context.Context, coins []string, batchSize int) newssync.Result {
	f.lastCoins, f.lastBatch = coins, batchSize
	return newssync.Result{}
}

func (f *fakeNews) FetchAndSyncForKeyword(_ context.Context, keyword string, batchSize int) newssync.Result {
	f.lastKeyword, f.lastBatch = keyword, batchSize
	return newssync.Result{}
}

type fakeCounter struct {
	n   int64
	err error
}

func (c fakeCounter) Count(context.Context) (int64, error) { return c.n, c.err }

func TestTriggerMarketSync_RefreshesGauge(t *testing.T) {
	m := &fakeMarket{}
	svc := NewService(m, &fakeNews{}, fakeCounter{n: 42}, nil, nil)

	res := svc.TriggerMarketSync(context.Background())

	assert.Equal(t, 1, m.runs)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 42.0, testutil.ToFloat64(metrics.StoredRecords.WithLabelValues("cryptocurrency")))
}

func TestTriggerNewsVariants(t *testing.T) {
	n := &fakeNews{}
	svc := NewService(&fakeMarket{}, n, nil, fakeCounter{n: 7}, nil)
	ctx := context.Background()

	res := svc.TriggerNewsSync(ctx, 50)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 50, n.lastBatch)

	svc.TriggerNewsSyncForCoins(ctx, []string{"btc"}, 30)
	assert.Equal(t, []string{"btc"}, n.lastCoins)
	assert.Equal(t, 30, n.lastBatch)

	svc.TriggerNewsSyncForKeyword(ctx, "economy", 20)
	assert.Equal(t, "economy", n.lastKeyword)
	assert.Equal(t, 20, n.lastBatch)

	assert.Equal(t, 7.0, testutil.ToFloat64(metrics.StoredRecords.WithLabelValues("news_article")))
}

func TestMarketDataEmpty(t *testing.T) {
	ctx := context.Background()

	empty, err := NewService(&fakeMarket{}, &fakeNews{}, fakeCounter{}, nil, nil).MarketDataEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	empty, err = NewService(&fakeMarket{}, &fakeNews{}, fakeCounter{n: 1}, nil, nil).MarketDataEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	_, err = NewService(&fakeMarket{}, &fakeNews{}, fakeCounter{err: errors.New("db down")}, nil, nil).MarketDataEmpty(ctx)
	assert.Error(t, err)
}
