// Package metrics exposes metricgov's self-instrumentation as
// Prometheus metrics: validation outcomes, sink forwarding, schema
// reloads, and analysis run statistics.
package metrics
