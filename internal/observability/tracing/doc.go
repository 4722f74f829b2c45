// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are opened around every sync run and every provider request; the HTTP
// middleware opens a server span per API request and returns its trace id in
// the X-Trace-Id header.
package tracing
