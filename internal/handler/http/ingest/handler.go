// Package ingest exposes the manual sync triggers, market statistics and news
// retention over HTTP.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"crypto-feed/internal/domain/entity"
	"crypto-feed/internal/handler/http/respond"
	"crypto-feed/internal/usecase/marketsync"
	"crypto-feed/internal/usecase/newssync"
	"crypto-feed/internal/usecase/retention"
)

var (
	// ErrInvalidBatchSize is returned for a batchSize that is not an integer.
	ErrInvalidBatchSize = errors.New("invalid batchSize: must be an integer")
	// ErrInvalidDaysOld is returned for a daysOld that is not a positive integer.
	ErrInvalidDaysOld = errors.New("invalid daysOld: must be a positive integer")
	// ErrKeywordRequired is returned by search-and-save without a keyword.
	ErrKeywordRequired = errors.New("keyword is required")
	// ErrCoinRequired is returned when the coin path segment is blank.
	ErrCoinRequired = errors.New("coin is required")
)

// Triggers runs syncs on demand.
type Triggers interface {
	TriggerMarketSync(ctx context.Context) marketsync.Result
	TriggerNewsSync(ctx context.Context, batchSize int) newssync.Result
	TriggerNewsSyncForCoins(ctx context.Context, coins []string, batchSize int) newssync.Result
	TriggerNewsSyncForKeyword(ctx context.Context, keyword string, batchSize int) newssync.Result
}

// Statistics returns aggregates over stored cryptocurrencies.
type Statistics interface {
	MarketStatistics(ctx context.Context) (entity.MarketStatistics, error)
}

// Retention deletes old news.
type Retention interface {
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

// Counter counts stored records.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Handler serves the sync endpoints.
type Handler struct {
	Triggers  Triggers
	Stats     Statistics
	Retention Retention
	News      Counter
}

// runContext detaches a triggered run from the request: a started sync completes
// even when the caller disconnects or times out. Values such as the trace span are kept.
func runContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// UpdateMarket godoc
// @Summary      Sync market data
// @Description  Fetches up to three pages of market data from CoinGecko and upserts them by symbol. The run completes even if the client disconnects.
// @Tags         cryptocurrencies
// @Produce      json
// @Success      200 {object} marketsync.Result
// @Failure      429 {string} string "Too many requests - a sync was triggered recently" headers(Retry-After=integer)
// @Router       /api/v1/cryptocurrencies/update [post]
func (h Handler) UpdateMarket(w http.ResponseWriter, r *http.Request) {
	res := h.Triggers.TriggerMarketSync(runContext(r))
	respond.JSON(w, http.StatusOK, res)
}

// MarketStatistics godoc
// @Summary      Market statistics
// @Description  Count, total market cap and 24h change aggregates over stored cryptocurrencies.
// @Tags         cryptocurrencies
// @Produce      json
// @Success      200 {object} entity.MarketStatistics
// @Failure      500 {string} string "Internal server error"
// @Router       /api/v1/cryptocurrencies/statistics [get]
func (h Handler) MarketStatistics(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stats.MarketStatistics(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, st)
}

// UpdateNews godoc
// @Summary      Sync news for the default tickers
// @Description  Fetches BTC and ETH news from Alpha Vantage and upserts them by article id. batchSize is clamped to 1..50.
// @Tags         news
// @Produce      json
// @Param        batchSize query int false "Articles to fetch" default(50)
// @Success      200 {object} newssync.Result
// @Failure      400 {string} string "Bad request - invalid batchSize"
// @Failure      429 {string} string "Too many requests - a sync was triggered recently" headers(Retry-After=integer)
// @Router       /api/v1/news/update [post]
func (h Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	batch, err := batchSize(r, newssync.DefaultManualBatchSize)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Triggers.TriggerNewsSync(runContext(r), batch))
}

// UpdateNewsForCoin godoc
// @Summary      Sync news for coins
// @Description  Fetches news for one or more coin symbols separated by commas, e.g. "btc,sol".
// @Tags         news
// @Produce      json
// @Param        coin      path  string true  "Coin symbols, comma separated"
// @Param        batchSize query int    false "Articles to fetch" default(30)
// @Success      200 {object} newssync.Result
// @Failure      400 {string} string "Bad request - coin is required or invalid batchSize"
// @Failure      429 {string} string "Too many requests - a sync was triggered recently" headers(Retry-After=integer)
// @Router       /api/v1/news/update/coin/{coin} [post]
func (h Handler) UpdateNewsForCoin(w http.ResponseWriter, r *http.Request) {
	var coins []string
	for _, c := range strings.Split(r.PathValue("coin"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			coins = append(coins, c)
		}
	}
	if len(coins) == 0 {
		respond.SafeError(w, http.StatusBadRequest, ErrCoinRequired)
		return
	}
	batch, err := batchSize(r, newssync.DefaultFilteredBatchSize)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Triggers.TriggerNewsSyncForCoins(runContext(r), coins, batch))
}

// SearchAndSave godoc
// @Summary      Sync news for a keyword
// @Description  Maps the keyword onto a topic preset and fetches matching news.
// @Tags         news
// @Produce      json
// @Param        keyword   query string true  "Free-text keyword, e.g. bitcoin price"
// @Param        batchSize query int    false "Articles to fetch" default(30)
// @Success      200 {object} newssync.Result
// @Failure      400 {string} string "Bad request - keyword is required or invalid batchSize"
// @Failure      429 {string} string "Too many requests - a sync was triggered recently" headers(Retry-After=integer)
// @Router       /api/v1/news/search-and-save [post]
func (h Handler) SearchAndSave(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		respond.SafeError(w, http.StatusBadRequest, ErrKeywordRequired)
		return
	}
	batch, err := batchSize(r, newssync.DefaultFilteredBatchSize)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Triggers.TriggerNewsSyncForKeyword(runContext(r), keyword, batch))
}

// CleanupResponse is the body of DELETE /api/v1/news/cleanup.
type CleanupResponse struct {
	DaysOld int   `json:"days_old"`
	Deleted int64 `json:"deleted"`
}

// Cleanup godoc
// @Summary      Delete old news
// @Description  Deletes articles published more than daysOld days ago.
// @Tags         news
// @Produce      json
// @Param        daysOld query int false "Age in days" default(90)
// @Success      200 {object} CleanupResponse
// @Failure      400 {string} string "Bad request - invalid daysOld"
// @Failure      500 {string} string "Internal server error"
// @Router       /api/v1/news/cleanup [delete]
func (h Handler) Cleanup(w http.ResponseWriter, r *http.Request) {
	days := retention.DefaultDaysOld
	if v := r.URL.Query().Get("daysOld"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respond.SafeError(w, http.StatusBadRequest, ErrInvalidDaysOld)
			return
		}
		days = n
	}
	deleted, err := h.Retention.DeleteOlderThan(r.Context(), days)
	if err != nil {
		if errors.Is(err, retention.ErrInvalidDays) {
			respond.SafeError(w, http.StatusBadRequest, ErrInvalidDaysOld)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, CleanupResponse{DaysOld: days, Deleted: deleted})
}

// CountNews godoc
// @Summary      Count stored news
// @Tags         news
// @Produce      json
// @Success      200 {object} map[string]int64
// @Failure      500 {string} string "Internal server error"
// @Router       /api/v1/news/count [get]
func (h Handler) CountNews(w http.ResponseWriter, r *http.Request) {
	n, err := h.News.Count(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("count news: %w", err))
		return
	}
	respond.JSON(w, http.StatusOK, map[string]int64{"count": n})
}

// batchSize parses the batchSize query parameter. Range clamping happens in newssync.
func batchSize(r *http.Request, def int) (int, error) {
	v := r.URL.Query().Get("batchSize")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ErrInvalidBatchSize
	}
	return n, nil
}
