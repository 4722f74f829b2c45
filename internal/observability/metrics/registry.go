// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track the manual trigger API.
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Sync metrics track the ingestion pipelines.
var (
	// SyncRunsTotal counts completed sync runs by job.
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total number of completed sync runs",
		},
		[]string{"job"},
	)

	// SyncRunDuration measures the wall time of a sync run.
	SyncRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_run_duration_seconds",
			Help:    "Time taken by a sync run, including provider delays",
			Buckets: []float64{1, 2, 5, 10, 15, 30, 60, 120, 300},
		},
		[]string{"job"},
	)

	// SyncRecordsTotal counts records by pipeline stage outcome.
	SyncRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_records_total",
			Help: "Total number of records processed by sync runs, by outcome",
		},
		[]string{"job", "outcome"}, // outcome: fetched, dropped, inserted, updated, failed
	)

	// StoredRecords tracks how many canonical records are persisted.
	StoredRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stored_records",
			Help: "Number of canonical records currently stored",
		},
		[]string{"kind"},
	)

	// NewsRetentionDeletedTotal counts articles removed by the retention job.
	NewsRetentionDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_retention_deleted_total",
			Help: "Total number of news articles deleted by retention",
		},
	)
)

// Provider metrics track calls to external data providers.
var (
	// ProviderRequestsTotal counts provider calls by result.
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of requests to external data providers",
		},
		[]string{"provider", "result"}, // result: success, rate_limited, error, interrupted
	)

	// ProviderRequestDuration measures provider call latency, excluding the pre-call delay.
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	// ProviderRequestDelay exposes the current pre-call delay of each provider client.
	ProviderRequestDelay = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "provider_request_delay_seconds",
			Help: "Current delay applied before each provider request",
		},
		[]string{"provider"},
	)

	// ProviderCircuitState is 0 when closed, 1 when half-open and 2 when open.
	ProviderCircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "provider_circuit_state",
			Help: "Circuit breaker state per provider (0 closed, 1 half-open, 2 open)",
		},
		[]string{"provider"},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)
