package worker

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// NewWorkerMetrics registers globally, so it is constructed once for the package tests.
var testMetrics = NewWorkerMetrics()

func TestWorkerMetrics_RecordJob(t *testing.T) {
	testMetrics.RecordJob("market_sync", "success", 3*time.Second)
	testMetrics.RecordJob("market_sync", "failure", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(testMetrics.JobRunsTotal.WithLabelValues("market_sync", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(testMetrics.JobRunsTotal.WithLabelValues("market_sync", "failure")))
	assert.Greater(t, testutil.ToFloat64(testMetrics.JobLastSuccessTimestamp.WithLabelValues("market_sync")), 0.0)
	assert.Equal(t, 0.0, testutil.ToFloat64(testMetrics.JobLastSuccessTimestamp.WithLabelValues("news_sync")))
}

func TestLoadConfigFromEnv_RecordsFallbackMetrics(t *testing.T) {
	t.Setenv("WORKER_TIMEZONE", "Nowhere/Special")
	_ = LoadConfigFromEnv(discardLogger(), testMetrics)

	assert.Equal(t, 1.0, testutil.ToFloat64(testMetrics.FallbackActive))
	assert.GreaterOrEqual(t, testutil.ToFloat64(testMetrics.FallbacksTotal.WithLabelValues("timezone")), 1.0)
}
