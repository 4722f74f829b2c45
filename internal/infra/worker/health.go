package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Breaker is the view of a provider circuit breaker reported by /health/providers.
type Breaker interface {
	Name() string
	IsOpen() bool
}

// HealthServer serves liveness, readiness, provider breaker state and Prometheus metrics.
//
//	GET /health            always 200 while the process runs
//	GET /health/ready      200 once the scheduler has started, 503 before
//	GET /health/providers  200 unless a provider circuit is open
//	GET /metrics           Prometheus exposition
type HealthServer struct {
	addr     string
	logger   *slog.Logger
	isReady  atomic.Bool
	breakers []Breaker
	server   *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

type providerStatus struct {
	Name string `json:"name"`
	Open bool   `json:"circuit_open"`
}

type providersResponse struct {
	Healthy   bool             `json:"healthy"`
	Providers []providerStatus `json:"providers"`
}

// NewHealthServer creates a server that is not ready until SetReady(true).
func NewHealthServer(addr string, logger *slog.Logger, breakers ...Breaker) *HealthServer {
	return &HealthServer{
		addr:     addr,
		logger:   logger,
		breakers: breakers,
	}
}

// Handler returns the server's routes.
func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleLiveness)
	mux.HandleFunc("GET /health/ready", h.handleReadiness)
	mux.HandleFunc("GET /health/providers", h.handleProviders)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
// It returns nil after a clean shutdown.
func (h *HealthServer) Start(ctx context.Context) error {
	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      h.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		errChan <- h.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		h.logger.Info("health server stopped")
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		h.logger.Error("health server failed", slog.Any("error", err))
		return err
	}
}

// SetReady updates the readiness state.
func (h *HealthServer) SetReady(ready bool) {
	h.isReady.Store(ready)
	h.logger.Info("health server readiness changed", slog.Bool("ready", ready))
}

func (h *HealthServer) handleLiveness(w http.ResponseWriter, r *http.Request) {
	h.write(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if h.isReady.Load() {
		h.write(w, http.StatusOK, healthResponse{Status: "ok"})
		return
	}
	h.write(w, http.StatusServiceUnavailable, healthResponse{Status: "not ready"})
}

func (h *HealthServer) handleProviders(w http.ResponseWriter, r *http.Request) {
	resp := providersResponse{Healthy: true, Providers: make([]providerStatus, 0, len(h.breakers))}
	for _, b := range h.breakers {
		open := b.IsOpen()
		resp.Providers = append(resp.Providers, providerStatus{Name: b.Name(), Open: open})
		if open {
			resp.Healthy = false
		}
	}
	status := http.StatusOK
	if !resp.Healthy {
		status = http.StatusServiceUnavailable
	}
	h.write(w, status, resp)
}

func (h *HealthServer) write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
