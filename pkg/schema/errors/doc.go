// Package errors provides the error taxonomy for schema loading and
// metric validation.
//
// Every failure the system can report is categorized by a Kind: runtime
// emission failures (unknown_metric, invalid_metric_type,
// missing_required_tag, invalid_tag, invalid_tag_value), schema
// construction defects (structural_defect, duplicate_metric,
// unknown_namespace), and loader failures (syntax, io).
//
// Errors carry enough context to render an actionable message: the
// namespace path, metric name, offending tag where applicable, the
// source location, and near-match suggestions for misspelled metric
// names. ErrorList accumulates errors so a whole schema can be checked
// in one pass instead of failing on the first defect.
package errors
