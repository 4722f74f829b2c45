// Package marketdata is the HTTP client for the CoinGecko /coins/markets endpoint.
//
// Calls are strictly sequential and spaced by a delay owned by the client. The delay
// doubles (up to MaxRequestDelay) every time the provider answers 429 and never
// shrinks for the lifetime of the client.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"crypto-feed/internal/infra/pacing"
	"crypto-feed/internal/observability/logging"
	"crypto-feed/internal/observability/metrics"
	"crypto-feed/internal/observability/tracing"
	"crypto-feed/internal/provider/coingecko"
	"crypto-feed/internal/resilience/circuitbreaker"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ProviderName labels metrics, spans and the circuit breaker.
	ProviderName = "coingecko"

	// DefaultBaseURL is the public CoinGecko API root.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// DefaultRequestDelay is slept before every call until a 429 raises it.
	DefaultRequestDelay = time.Second

	// MaxRequestDelay caps the adaptive delay.
	MaxRequestDelay = 10 * time.Second

	// MaxPerPage is the largest page the provider serves.
	MaxPerPage = 250

	maxBodyBytes = 10 << 20
	errBodyBytes = 512
)

// Client fetches market pages. It is safe for concurrent use; concurrent callers
// are serialized so that at most one call is in flight and every call is preceded
// by the full delay.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	breaker    *circuitbreaker.CircuitBreaker
	sleep      pacing.SleepFunc

	mu    sync.Mutex
	delay time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	breakerCfg := circuitbreaker.MarketDataConfig()
	breakerCfg.Neutral = func(err error) bool { return errors.Is(err, errRateLimited) }

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
		breaker:    circuitbreaker.New(breakerCfg),
		sleep:      pacing.Sleep,
		delay:      DefaultRequestDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	metrics.SetProviderDelay(ProviderName, c.delay)
	return c
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestDelay sets the initial delay slept before each call.
func WithRequestDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.delay = d
	}
}

// WithSleepFunc replaces the delay implementation, typically with a recorder in tests.
func WithSleepFunc(fn pacing.SleepFunc) ClientOption {
	return func(c *Client) {
		c.sleep = fn
	}
}

// WithCircuitBreaker replaces the default breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) ClientOption {
	return func(c *Client) {
		c.breaker = cb
	}
}

// Breaker exposes the client's circuit breaker for health reporting.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// Delay returns the delay that will precede the next call.
func (c *Client) Delay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delay
}

// FetchPage returns one page of markets ordered by market cap, priced in USD.
// perPage is clamped to [1, MaxPerPage].
//
// Every failure is absorbed: transport errors, non-2xx replies, undecodable bodies
// and an open circuit all yield an empty page and a nil error. The only error
// returned is ErrInterrupted, when ctx ends during the pre-call delay or the request.
func (c *Client) FetchPage(ctx context.Context, page, perPage int) ([]coingecko.MarketRecord, error) {
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}

	ctx, span := tracing.GetTracer().Start(ctx, "marketdata.FetchPage", trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("per_page", perPage),
	))
	defer span.End()
	logger := logging.FromContextOr(ctx, c.logger).With(slog.Int("page", page))

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.sleep(ctx, c.delay); err != nil {
		metrics.RecordProviderRequest(ProviderName, "interrupted", 0)
		span.SetStatus(codes.Error, "interrupted")
		return nil, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	start := time.Now()
	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.get(ctx, page, perPage)
	})
	elapsed := time.Since(start)

	switch {
	case err == nil:
		records := res.([]coingecko.MarketRecord)
		metrics.RecordProviderRequest(ProviderName, "success", elapsed)
		span.SetAttributes(attribute.Int("records", len(records)))
		logger.Debug("market page fetched", slog.Int("records", len(records)))
		return records, nil

	case errors.Is(err, errRateLimited):
		next := c.delay * 2
		if next <= 0 {
			next = DefaultRequestDelay
		}
		if next > MaxRequestDelay {
			next = MaxRequestDelay
		}
		c.delay = next
		metrics.RecordProviderRequest(ProviderName, "rate_limited", elapsed)
		metrics.SetProviderDelay(ProviderName, next)
		span.SetAttributes(attribute.Bool("rate_limited", true))
		logger.Warn("market data provider rate limited, raising request delay",
			slog.Duration("request_delay", next))
		return nil, nil

	case ctx.Err() != nil:
		metrics.RecordProviderRequest(ProviderName, "interrupted", elapsed)
		span.SetStatus(codes.Error, "interrupted")
		return nil, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())

	case errors.Is(err, circuitbreaker.ErrOpen):
		metrics.RecordProviderRequest(ProviderName, "circuit_open", 0)
		span.SetStatus(codes.Error, "circuit open")
		logger.Warn("market data circuit open, skipping request")
		return nil, nil

	default:
		metrics.RecordProviderRequest(ProviderName, "error", elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("market data request failed", slog.Any("error", err))
		return nil, nil
	}
}

func (c *Client) get(ctx context.Context, page, perPage int) ([]coingecko.MarketRecord, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	q.Set("sparkline", "false")
	q.Set("locale", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/coins/markets?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var records []coingecko.MarketRecord
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode markets: %w", err)
	}
	return records, nil
}
