// Package config assembles process-level settings for the provider clients and the API.
package config

import (
	"log/slog"
	"time"

	"crypto-feed/internal/pkg/config"
)

// ProviderConfig configures the two upstream data providers.
type ProviderConfig struct {
	CoinGeckoBaseURL      string
	CoinGeckoRequestDelay time.Duration

	AlphaVantageBaseURL      string
	AlphaVantageAPIKey       string
	AlphaVantageRequestDelay time.Duration

	// HTTPTimeout bounds each provider call, not the whole run.
	HTTPTimeout time.Duration
}

// DefaultProviderConfig returns the public endpoints and free-tier pacing.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		CoinGeckoBaseURL:         "https://api.coingecko.com/api/v3",
		CoinGeckoRequestDelay:    time.Second,
		AlphaVantageBaseURL:      "https://www.alphavantage.co",
		AlphaVantageAPIKey:       "demo",
		AlphaVantageRequestDelay: 12 * time.Second,
		HTTPTimeout:              30 * time.Second,
	}
}

// LoadProviderConfig reads the provider settings from the environment, falling back
// to defaults on invalid values. The returned collector lists the fields that fell back.
func LoadProviderConfig(logger *slog.Logger) (ProviderConfig, *config.Collector) {
	def := DefaultProviderConfig()
	c := &config.Collector{}

	delay := func(v time.Duration) error { return config.ValidateDuration(v, 0, time.Minute) }

	cfg := ProviderConfig{
		CoinGeckoBaseURL: config.Track(c, "coingecko_base_url",
			config.LoadEnvWithFallback("COINGECKO_BASE_URL", def.CoinGeckoBaseURL, config.ValidateBaseURL)),
		CoinGeckoRequestDelay: config.Track(c, "coingecko_request_delay",
			config.LoadEnvDuration("COINGECKO_REQUEST_DELAY", def.CoinGeckoRequestDelay, delay)),
		AlphaVantageBaseURL: config.Track(c, "alphavantage_base_url",
			config.LoadEnvWithFallback("ALPHAVANTAGE_BASE_URL", def.AlphaVantageBaseURL, config.ValidateBaseURL)),
		AlphaVantageAPIKey: config.LoadEnvString("ALPHAVANTAGE_API_KEY", def.AlphaVantageAPIKey),
		AlphaVantageRequestDelay: config.Track(c, "alphavantage_request_delay",
			config.LoadEnvDuration("ALPHAVANTAGE_REQUEST_DELAY", def.AlphaVantageRequestDelay, delay)),
		HTTPTimeout: config.Track(c, "provider_http_timeout",
			config.LoadEnvDuration("PROVIDER_HTTP_TIMEOUT", def.HTTPTimeout, func(v time.Duration) error {
				return config.ValidateDuration(v, time.Second, 5*time.Minute)
			})),
	}

	for _, w := range c.Warnings {
		logger.Warn("Configuration fallback applied", slog.String("warning", w))
	}
	if cfg.AlphaVantageAPIKey == def.AlphaVantageAPIKey {
		logger.Warn("ALPHAVANTAGE_API_KEY not set, using the demo key")
	}
	return cfg, c
}
