// Package app builds the object graph shared by the worker and API processes.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"crypto-feed/internal/config"
	"crypto-feed/internal/infra/db"
	"crypto-feed/internal/infra/marketdata"
	"crypto-feed/internal/infra/newsdata"
	"crypto-feed/internal/provider/alphavantage"
	"crypto-feed/internal/provider/coingecko"
	"crypto-feed/internal/resilience/circuitbreaker"
	"crypto-feed/internal/usecase/marketsync"
	"crypto-feed/internal/usecase/merge"
	"crypto-feed/internal/usecase/newssync"
	"crypto-feed/internal/usecase/retention"
	"crypto-feed/internal/usecase/stats"
	"crypto-feed/internal/usecase/trigger"
)

// App is one process's view of storage, providers and use cases.
type App struct {
	Store     *db.Store
	Market    *marketdata.Client
	News      *newsdata.Client
	Triggers  *trigger.Service
	Retention *retention.Service
	Stats     *stats.Service
}

// Build opens storage and wires the provider clients into the sync services.
// Close the returned App to release the database.
func Build(ctx context.Context, dbCfg db.ConnectionConfig, providers config.ProviderConfig, logger *slog.Logger) (*App, error) {
	store, err := db.Open(ctx, dbCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	market := marketdata.NewClient(providers.CoinGeckoBaseURL,
		marketdata.WithTimeout(providers.HTTPTimeout),
		marketdata.WithRequestDelay(providers.CoinGeckoRequestDelay),
		marketdata.WithLogger(logger),
	)
	news := newsdata.NewClient(providers.AlphaVantageBaseURL, providers.AlphaVantageAPIKey,
		newsdata.WithTimeout(providers.HTTPTimeout),
		newsdata.WithRequestDelay(providers.AlphaVantageRequestDelay),
		newsdata.WithLogger(logger),
	)

	marketSvc := marketsync.NewService(market, coingecko.NewConverter(),
		merge.NewCryptocurrencyStore(store.Cryptocurrencies), logger)
	newsSvc := newssync.NewService(news, alphavantage.NewConverter(),
		merge.NewNewsStore(store.News), logger)

	return &App{
		Store:     store,
		Market:    market,
		News:      news,
		Triggers:  trigger.NewService(marketSvc, newsSvc, store.Cryptocurrencies, store.News, logger),
		Retention: retention.NewService(store.News, logger),
		Stats:     &stats.Service{Repo: store.Cryptocurrencies},
	}, nil
}

// Breakers returns the provider circuit breakers for health reporting.
func (a *App) Breakers() []*circuitbreaker.CircuitBreaker {
	return []*circuitbreaker.CircuitBreaker{a.Market.Breaker(), a.News.Breaker()}
}

// Close releases the database.
func (a *App) Close() error {
	return a.Store.Close()
}
