package ingest

import (
	"net/http"

	"crypto-feed/internal/observability/tracing"
)

// Register mounts the endpoints on mux. throttle wraps the endpoints that start
// a provider sync; it may be nil.
func Register(mux *http.ServeMux, h Handler, throttle func(http.Handler) http.Handler) {
	if throttle == nil {
		throttle = func(next http.Handler) http.Handler { return next }
	}
	route := func(pattern string, fn http.HandlerFunc, throttled bool) {
		var next http.Handler = fn
		if throttled {
			next = throttle(next)
		}
		mux.Handle(pattern, tracing.Middleware(pattern, next))
	}

	route("POST /api/v1/cryptocurrencies/update", h.UpdateMarket, true)
	route("GET /api/v1/cryptocurrencies/statistics", h.MarketStatistics, false)
	route("POST /api/v1/news/update", h.UpdateNews, true)
	route("POST /api/v1/news/update/coin/{coin}", h.UpdateNewsForCoin, true)
	route("POST /api/v1/news/search-and-save", h.SearchAndSave, true)
	route("DELETE /api/v1/news/cleanup", h.Cleanup, false)
	route("GET /api/v1/news/count", h.CountNews, false)
}
