package metrics

import (
	"strconv"
	"time"
)

// Job labels used by the sync metrics.
const (
	JobMarketSync = "market_sync"
	JobNewsSync   = "news_sync"
	JobRetention  = "news_retention"
)

// SyncOutcome is a per-record tally reported at the end of a run.
type SyncOutcome struct {
	Fetched  int
	Dropped  int
	Inserted int
	Updated  int
	Failed   int
}

// RecordSyncRun records a completed sync run and its per-record outcome counts.
func RecordSyncRun(job string, duration time.Duration, o SyncOutcome) {
	SyncRunsTotal.WithLabelValues(job).Inc()
	SyncRunDuration.WithLabelValues(job).Observe(duration.Seconds())
	SyncRecordsTotal.WithLabelValues(job, "fetched").Add(float64(o.Fetched))
	SyncRecordsTotal.WithLabelValues(job, "dropped").Add(float64(o.Dropped))
	SyncRecordsTotal.WithLabelValues(job, "inserted").Add(float64(o.Inserted))
	SyncRecordsTotal.WithLabelValues(job, "updated").Add(float64(o.Updated))
	SyncRecordsTotal.WithLabelValues(job, "failed").Add(float64(o.Failed))
}

// RecordProviderRequest records one provider call.
// Result is one of success, rate_limited, circuit_open, error or interrupted.
func RecordProviderRequest(provider, result string, duration time.Duration) {
	ProviderRequestsTotal.WithLabelValues(provider, result).Inc()
	if duration > 0 {
		ProviderRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
	}
}

// SetProviderDelay publishes the delay a provider client currently sleeps before each call.
func SetProviderDelay(provider string, delay time.Duration) {
	ProviderRequestDelay.WithLabelValues(provider).Set(delay.Seconds())
}

// UpdateStoredRecords updates the stored record gauge for a kind ("cryptocurrency", "news_article").
func UpdateStoredRecords(kind string, count int64) {
	StoredRecords.WithLabelValues(kind).Set(float64(count))
}

// RecordRetentionDeleted adds the number of rows removed by a retention run.
func RecordRetentionDeleted(count int64) {
	NewsRetentionDeletedTotal.Add(float64(count))
}

// RecordHTTPRequest records an HTTP request with its metadata.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "get_cryptocurrency", "insert_news").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetCircuitState publishes a provider breaker state using gobreaker's numbering.
func SetCircuitState(provider string, state int) {
	ProviderCircuitState.WithLabelValues(provider).Set(float64(state))
}
