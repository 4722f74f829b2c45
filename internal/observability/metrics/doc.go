// Package metrics provides Prometheus metrics registry and recording utilities.
//
// Metrics are registered with the default registry through promauto and exposed
// on /metrics by both the worker and the API process. Sync runs report their
// per-record outcome through RecordSyncRun; provider clients report each call
// through RecordProviderRequest and their current delay through SetProviderDelay.
package metrics
