// Package sink defines the metric-sink collaborator boundary: the
// finite interface a validated emission is forwarded through, with one
// method per metric kind.
//
// Three implementations are provided: a DogStatsD line-protocol sink
// over UDP (fire-and-forget, no batching or retry), a structured-log
// sink for development, and an in-memory capture sink for tests.
package sink
