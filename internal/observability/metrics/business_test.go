package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestRecordSyncRun(t *testing.T) {
	before := testutil.ToFloat64(SyncRecordsTotal.WithLabelValues("test_job", "inserted"))
	runsBefore := testutil.ToFloat64(SyncRunsTotal.WithLabelValues("test_job"))

	RecordSyncRun("test_job", 2*time.Second, SyncOutcome{Fetched: 5, Dropped: 1, Inserted: 3, Updated: 1})

	assert.Equal(t, before+3, testutil.ToFloat64(SyncRecordsTotal.WithLabelValues("test_job", "inserted")))
	assert.Equal(t, runsBefore+1, testutil.ToFloat64(SyncRunsTotal.WithLabelValues("test_job")))
}

func TestRecordProviderRequest(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("test_provider", "rate_limited"))

	RecordProviderRequest("test_provider", "rate_limited", 150*time.Millisecond)
	RecordProviderRequest("test_provider", "rate_limited", 0)

	assert.Equal(t, before+2, testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("test_provider", "rate_limited")))
}

func TestSetProviderDelay(t *testing.T) {
	SetProviderDelay("test_provider", 4*time.Second)
	assert.Equal(t, 4.0, testutil.ToFloat64(ProviderRequestDelay.WithLabelValues("test_provider")))

	SetProviderDelay("test_provider", 10*time.Second)
	assert.Equal(t, 10.0, testutil.ToFloat64(ProviderRequestDelay.WithLabelValues("test_provider")))
}

func TestUpdateStoredRecords(t *testing.T) {
	UpdateStoredRecords("test_kind", 42)
	assert.Equal(t, 42.0, testutil.ToFloat64(StoredRecords.WithLabelValues("test_kind")))
}

func TestRecordRetentionDeleted(t *testing.T) {
	before := testutil.ToFloat64(NewsRetentionDeletedTotal)
	RecordRetentionDeleted(7)
	assert.Equal(t, before+7, testutil.ToFloat64(NewsRetentionDeletedTotal))
}

func TestRecordHTTPRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest("POST", "/api/v1/news/update", 202, 10*time.Millisecond)
		RecordDBQuery("get_cryptocurrency", time.Millisecond)
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/news/update", "202")))
}

func histogramOf(t *testing.T, o prometheus.Observer) *dto.Histogram {
	t.Helper()
	m := &dto.Metric{}
	if err := o.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram()
}

func TestRecordProviderRequest_ObservesDuration(t *testing.T) {
	before := histogramOf(t, ProviderRequestDuration.WithLabelValues("duration_provider"))

	RecordProviderRequest("duration_provider", "success", 250*time.Millisecond)

	after := histogramOf(t, ProviderRequestDuration.WithLabelValues("duration_provider"))
	assert.Equal(t, before.GetSampleCount()+1, after.GetSampleCount())
	assert.InDelta(t, before.GetSampleSum()+0.25, after.GetSampleSum(), 1e-9)
}

func TestSetCircuitState(t *testing.T) {
	SetCircuitState("state_provider", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(ProviderCircuitState.WithLabelValues("state_provider")))
	SetCircuitState("state_provider", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(ProviderCircuitState.WithLabelValues("state_provider")))
}
