package worker

import (
	"time"

	"crypto-feed/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics tracks cron job executions in addition to the worker's configuration state.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// JobRunsTotal counts job executions by job and status (success, failure, skipped).
	JobRunsTotal *prometheus.CounterVec

	// JobDurationSeconds measures job wall time by job.
	JobDurationSeconds *prometheus.HistogramVec

	// JobLastSuccessTimestamp is the Unix time of each job's last successful run.
	JobLastSuccessTimestamp *prometheus.GaugeVec
}

// NewWorkerMetrics registers the worker metrics with the default registry. Call it once per process.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of cron job runs by job and status",
		}, []string{"job", "status"}),

		JobDurationSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of cron job execution in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 900},
		}, []string{"job"}),

		JobLastSuccessTimestamp: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful cron job run",
		}, []string{"job"}),
	}
}

// RecordJob records the outcome of one job execution.
func (m *WorkerMetrics) RecordJob(job, status string, d time.Duration) {
	m.JobRunsTotal.WithLabelValues(job, status).Inc()
	m.JobDurationSeconds.WithLabelValues(job).Observe(d.Seconds())
	if status == "success" {
		m.JobLastSuccessTimestamp.WithLabelValues(job).SetToCurrentTime()
	}
}
