package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// GetTracer returns the tracer used for sync runs, provider calls and HTTP requests.
// It is resolved from the global provider on each call so that a provider installed
// after package initialization (as in tests) is honored.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "marketsync.FetchAndSync")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer("crypto-feed")
}
