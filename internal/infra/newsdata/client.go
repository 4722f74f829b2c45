// Package newsdata is the HTTP client for the Alpha Vantage NEWS_SENTIMENT endpoint.
//
// The free tier allows five calls per minute, so every call is preceded by a fixed
// delay and calls never overlap. The API key travels as a query parameter and is
// never logged.
package newsdata

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
	"strings"
	"sync"
	"time"

	"crypto-feed/internal/infra/pacing"
	"crypto-feed/internal/observability/logging"
	"crypto-feed/internal/observability/metrics"
	"crypto-feed/internal/observability/tracing"
	"crypto-feed/internal/provider/alphavantage"
	"crypto-feed/internal/resilience/circuitbreaker"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ProviderName labels metrics, spans and the circuit breaker.
	ProviderName = "alphavantage"

	// DefaultBaseURL is the Alpha Vantage API root.
	DefaultBaseURL = "https://www.alphavantage.co"

	// DefaultRequestDelay keeps the client under five calls per minute.
	DefaultRequestDelay = 12 * time.Second

	// MaxLimit is the largest feed the provider returns for one call.
	MaxLimit = 1000

	maxBodyBytes = 20 << 20
	errBodyBytes = 512
)

// ErrInterrupted is returned when ctx ends during the pre-call delay or the request.
var ErrInterrupted = errors.New("newsdata: request delay interrupted")

var errRateLimited = errors.New("newsdata: rate limited")

// ProviderMessageError is a 200 reply that carries an advisory instead of a feed,
// typically a quota notice.
type ProviderMessageError struct {
	Message string
}

func (e *ProviderMessageError) Error() string {
	return "newsdata: provider message: " + e.Message
}

// StatusError is a non-2xx reply other than 429.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("newsdata: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client fetches news feeds.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	breaker    *circuitbreaker.CircuitBreaker
	sleep      pacing.SleepFunc
	delay      time.Duration

	mu sync.Mutex
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	breakerCfg := circuitbreaker.NewsAPIConfig()
	breakerCfg.Neutral = func(err error) bool { return errors.Is(err, errRateLimited) }

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
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

// WithRequestDelay overrides the fixed pre-call delay.
func WithRequestDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.delay = d
	}
}

// WithSleepFunc replaces the delay implementation.
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

// FetchByTickers returns up to limit articles tagged with any of the comma-separated
// tickers, e.g. "CRYPTO:BTC,CRYPTO:ETH". A blank filter returns nothing without a call.
func (c *Client) FetchByTickers(ctx context.Context, tickers string, limit int) ([]alphavantage.Article, error) {
	return c.fetch(ctx, "tickers", tickers, limit)
}

// FetchByTopics returns up to limit articles for the comma-separated topics.
// A blank filter returns nothing without a call.
func (c *Client) FetchByTopics(ctx context.Context, topics string, limit int) ([]alphavantage.Article, error) {
	return c.fetch(ctx, "topics", topics, limit)
}

// fetch absorbs every provider failure into an empty result, like the market client.
// Only ErrInterrupted escapes.
func (c *Client) fetch(ctx context.Context, filterKey, filter string, limit int) ([]alphavantage.Article, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return []alphavantage.Article{}, nil
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	ctx, span := tracing.GetTracer().Start(ctx, "newsdata.Fetch", trace.WithAttributes(
		attribute.String(filterKey, filter),
		attribute.Int("limit", limit),
	))
	defer span.End()
	logger := logging.FromContextOr(ctx, c.logger).With(slog.String(filterKey, filter))

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.sleep(ctx, c.delay); err != nil {
		metrics.RecordProviderRequest(ProviderName, "interrupted", 0)
		span.SetStatus(codes.Error, "interrupted")
		return nil, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	start := time.Now()
	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.get(ctx, filterKey, filter, limit)
	})
	elapsed := time.Since(start)

	var msgErr *ProviderMessageError
	switch {
	case err == nil:
		articles := res.([]alphavantage.Article)
		metrics.RecordProviderRequest(ProviderName, "success", elapsed)
		span.SetAttributes(attribute.Int("articles", len(articles)))
		logger.Debug("news feed fetched", slog.Int("articles", len(articles)))
		return articles, nil

	case errors.Is(err, errRateLimited):
		metrics.RecordProviderRequest(ProviderName, "rate_limited", elapsed)
		logger.Warn("news provider rate limited")
		return []alphavantage.Article{}, nil

	case ctx.Err() != nil:
		metrics.RecordProviderRequest(ProviderName, "interrupted", elapsed)
		span.SetStatus(codes.Error, "interrupted")
		return nil, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())

	case errors.Is(err, circuitbreaker.ErrOpen):
		metrics.RecordProviderRequest(ProviderName, "circuit_open", 0)
		logger.Warn("news provider circuit open, skipping request")
		return []alphavantage.Article{}, nil

	case errors.As(err, &msgErr):
		metrics.RecordProviderRequest(ProviderName, "error", elapsed)
		span.SetStatus(codes.Error, "provider message")
		logger.Warn("news provider returned no feed", slog.String("message", msgErr.Message))
		return []alphavantage.Article{}, nil

	default:
		metrics.RecordProviderRequest(ProviderName, "error", elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		logger.Error("news request failed", slog.Any("error", redact(err, c.apiKey)))
		return []alphavantage.Article{}, nil
	}
}

func (c *Client) get(ctx context.Context, filterKey, filter string, limit int) ([]alphavantage.Article, error) {
	q := url.Values{}
	q.Set("function", "NEWS_SENTIMENT")
	q.Set(filterKey, filter)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+q.Encode(), nil)
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

	var env alphavantage.Envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if msg := env.ProviderMessage(); msg != "" && len(env.Feed) == 0 {
		return nil, &ProviderMessageError{Message: msg}
	}
	if env.Feed == nil {
		return []alphavantage.Article{}, nil
	}
	return env.Feed, nil
}

// redact strips the API key from transport errors, which embed the request URL.
func redact(err error, apiKey string) string {
	if apiKey == "" {
		return err.Error()
	}
	return strings.ReplaceAll(err.Error(), apiKey, "REDACTED")
}
