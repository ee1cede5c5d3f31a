// Package analyzer estimates the time-series cardinality a metrics
// schema can generate.
//
// For every metric in a namespace tree the analyzer resolves the
// effective tag set (namespace-visible tags, inherited tags, and local
// declarations), estimates the number of distinct values each tag can
// take, expands the metric name according to its kind (gauges and
// histograms become five series, distributions ten), and multiplies the
// per-tag estimates into a per-metric combination count. The aggregate
// totals predict how many distinct time-series the backend will bill
// for.
//
// Estimates are deliberately conservative: enumerated tags contribute
// their exact value count, pattern-restricted tags a fixed estimate of
// 50, and unrestricted or predicate-checked tags a fixed estimate of
// 100. The result structure is a stable contract renderable as text,
// JSON, or YAML without loss.
package analyzer
