// Package observability groups the logging, metrics and tracing helpers shared by
// the worker and the API process.
//
// Subpackages:
//   - logging: slog construction and run-scoped context loggers
//   - metrics: Prometheus collectors for sync runs, providers and HTTP
//   - tracing: OpenTelemetry tracer and HTTP middleware
package observability
