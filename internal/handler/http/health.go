package http

import (
	"context"
	"net/http"
	"time"

	"crypto-feed/internal/handler/http/respond"
)

// Pinger checks storage connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Breaker is a provider circuit breaker as seen by the health check.
type Breaker interface {
	Name() string
	IsOpen() bool
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]CheckStatus `json:"checks"`
}

// CheckStatus is the outcome of one check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler reports storage reachability and provider circuit state.
// Only the database makes the service unhealthy; an open provider circuit is
// reported as degraded because stored data is still served.
type HealthHandler struct {
	DB       Pinger
	Breakers []Breaker
	Version  string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
		Checks:    make(map[string]CheckStatus, 1+len(h.Breakers)),
	}
	code := http.StatusOK

	if h.DB != nil {
		if err := h.DB.Ping(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Checks["database"] = CheckStatus{Status: "unhealthy", Message: "database unreachable"}
			code = http.StatusServiceUnavailable
		} else {
			resp.Checks["database"] = CheckStatus{Status: "healthy"}
		}
	}

	for _, b := range h.Breakers {
		if b.IsOpen() {
			resp.Checks[b.Name()] = CheckStatus{Status: "degraded", Message: "circuit open"}
			if resp.Status == "healthy" {
				resp.Status = "degraded"
			}
			continue
		}
		resp.Checks[b.Name()] = CheckStatus{Status: "healthy"}
	}

	respond.JSON(w, code, resp)
}
