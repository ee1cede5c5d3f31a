// Package tracing configures OpenTelemetry span export over OTLP/gRPC.
// When disabled it degrades to a noop tracer.
package tracing
