package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// MetricAnalysis is the per-metric slice of an analysis result.
type MetricAnalysis struct {
	// MetricName is the fully-qualified dotted metric name.
	MetricName string `json:"metric_name" yaml:"metric_name"`

	// MetricType is the declared metric kind.
	MetricType string `json:"metric_type" yaml:"metric_type"`

	// ExpandedNames lists every series name the backend derives from
	// this metric.
	ExpandedNames []string `json:"expanded_names" yaml:"expanded_names"`

	// UniqueTags lists the effective tag names on this metric, sorted.
	UniqueTags []string `json:"unique_tags" yaml:"unique_tags"`

	// UniqueTagValues maps each effective tag to its estimated distinct
	// value count.
	UniqueTagValues map[string]int `json:"unique_tag_values" yaml:"unique_tag_values"`

	// TotalCombinations is the product of the per-tag estimates times
	// the number of expanded names.
	TotalCombinations int64 `json:"total_combinations" yaml:"total_combinations"`
}

// Result is the stable output contract of the analyzer.
type Result struct {
	// RunID uniquely identifies this analysis run.
	RunID string `json:"run_id" yaml:"run_id"`

	// GeneratedAt is when the analysis ran.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// TotalUniqueMetrics is the sum of expanded-name counts across all
	// metrics.
	TotalUniqueMetrics int `json:"total_unique_metrics" yaml:"total_unique_metrics"`

	// TotalPossibleCustomMetrics is the sum of per-metric combination
	// counts across all metrics.
	TotalPossibleCustomMetrics int64 `json:"total_possible_custom_metrics" yaml:"total_possible_custom_metrics"`

	// MetricsAnalysis holds the per-metric breakdown, sorted by name.
	MetricsAnalysis []MetricAnalysis `json:"metrics_analysis" yaml:"metrics_analysis"`
}

// Text renders the result as a human-readable report.
func (r *Result) Text() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Cardinality analysis %s (%s)\n\n", r.RunID, r.GeneratedAt.Format(time.RFC3339)))

	for _, m := range r.MetricsAnalysis {
		sb.WriteString(fmt.Sprintf("%s (%s)\n", m.MetricName, m.MetricType))
		sb.WriteString(fmt.Sprintf("  expanded names:     %d\n", len(m.ExpandedNames)))
		if len(m.UniqueTags) > 0 {
			parts := make([]string, 0, len(m.UniqueTags))
			for _, tag := range m.UniqueTags {
				parts = append(parts, fmt.Sprintf("%s (%d)", tag, m.UniqueTagValues[tag]))
			}
			sb.WriteString(fmt.Sprintf("  tags:               %s\n", strings.Join(parts, ", ")))
		}
		sb.WriteString(fmt.Sprintf("  total combinations: %d\n\n", m.TotalCombinations))
	}

	sb.WriteString(fmt.Sprintf("Total unique metric names:          %d\n", r.TotalUniqueMetrics))
	sb.WriteString(fmt.Sprintf("Total possible metric combinations: %d\n", r.TotalPossibleCustomMetrics))
	return sb.String()
}

// sortAnalysis orders the per-metric breakdown by metric name so output
// is deterministic across runs.
func sortAnalysis(entries []MetricAnalysis) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].MetricName < entries[j].MetricName
	})
}
