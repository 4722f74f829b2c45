// Package resilience groups the fault tolerance helpers used by the ingestion pipelines.
//
//   - circuitbreaker: stops calling a provider that keeps failing
//   - retry: exponential backoff for transient storage errors during merges
//
// Provider calls are never retried: the number of calls per run is bounded and
// throttling is handled by each client's own delay.
package resilience
