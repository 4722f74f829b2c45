// Package circuitbreaker wraps github.com/sony/gobreaker for calls to external data providers.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"crypto-feed/internal/observability/metrics"
)

// ErrOpen is returned by Execute while the circuit is open or the half-open trial quota is used up.
var ErrOpen = errors.New("circuit breaker open")

// Config describes one provider's breaker. The circuit opens once at least
// MinRequests calls were made in the current Interval and the failure ratio reaches
// FailureThreshold. After Timeout it lets MaxRequests trial calls through.
type Config struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32

	// Neutral reports errors that should not count as failures, such as a
	// provider throttling reply. Nil means every error is a failure.
	Neutral func(err error) bool
}

// MarketDataConfig is tuned for the CoinGecko markets endpoint, which is polled every few minutes.
func MarketDataConfig() Config {
	return Config{
		Name:             "coingecko",
		MaxRequests:      1,
		Interval:         10 * time.Minute,
		Timeout:          2 * time.Minute,
		FailureThreshold: 1.0,
		MinRequests:      3,
	}
}

// NewsAPIConfig is tuned for Alpha Vantage, whose free tier allows only a few calls per minute.
// The open timeout is long because a tripped breaker usually means the daily quota is gone.
func NewsAPIConfig() Config {
	return Config{
		Name:             "alphavantage",
		MaxRequests:      1,
		Interval:         time.Hour,
		Timeout:          15 * time.Minute,
		FailureThreshold: 1.0,
		MinRequests:      3,
	}
}

// CircuitBreaker guards one provider. Its state is published as provider_circuit_state.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a closed breaker for cfg.
func New(cfg Config) *CircuitBreaker {
	metrics.SetCircuitState(cfg.Name, int(gobreaker.StateClosed))
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// cancellation says nothing about the provider's health
			if errors.Is(err, context.Canceled) {
				return true
			}
			return cfg.Neutral != nil && cfg.Neutral(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			metrics.SetCircuitState(name, int(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn through the circuit breaker. When the circuit rejects the call,
// fn is not invoked and the returned error wraps ErrOpen.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	res, err := cb.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.Join(ErrOpen, err)
	}
	return res, err
}

func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name is the provider name used in logs, metrics and health output.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether calls are currently rejected without a trial call.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
