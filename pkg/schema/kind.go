package schema

import "fmt"

// Kind identifies one of the six StatsD metric kinds.
// The kind determines how the backend expands a metric into time-series:
// gauges and histograms become a fixed bundle of five series, distributions
// become ten, and counters, timings, and sets remain a single series.
type Kind string

const (
	KindCounter      Kind = "counter"
	KindGauge        Kind = "gauge"
	KindHistogram    Kind = "histogram"
	KindDistribution Kind = "distribution"
	KindTiming       Kind = "timing"
	KindSet          Kind = "set"
)

// aggregateSuffixes are the series suffixes emitted by the backend for
// gauge and histogram metrics.
var aggregateSuffixes = []string{"count", "min", "max", "sum", "avg"}

// distributionSuffixes are the series suffixes emitted by the backend for
// distribution metrics: the aggregate suffixes plus percentiles.
var distributionSuffixes = []string{
	"count", "min", "max", "sum", "avg",
	"p50", "p75", "p90", "p95", "p99",
}

// ParseKind converts a string into a Kind.
// It returns an error for unknown kind names.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCounter, KindGauge, KindHistogram, KindDistribution, KindTiming, KindSet:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown metric kind %q", s)
	}
}

// Valid returns true if the kind is one of the six StatsD kinds.
func (k Kind) Valid() bool {
	_, err := ParseKind(string(k))
	return err == nil
}

// ExpansionSuffixes returns the backend series suffixes for this kind.
// It returns nil for kinds that produce a single series.
func (k Kind) ExpansionSuffixes() []string {
	switch k {
	case KindGauge, KindHistogram:
		return aggregateSuffixes
	case KindDistribution:
		return distributionSuffixes
	default:
		return nil
	}
}

// ExpansionCount returns the number of distinct series names this kind
// produces for a single metric.
func (k Kind) ExpansionCount() int {
	if s := k.ExpansionSuffixes(); s != nil {
		return len(s)
	}
	return 1
}

// ExpandedNames returns the full list of series names the backend derives
// from the given fully-qualified metric name. Kinds that produce a single
// series return the name unchanged.
func (k Kind) ExpandedNames(name string) []string {
	suffixes := k.ExpansionSuffixes()
	if suffixes == nil {
		return []string{name}
	}
	names := make([]string, len(suffixes))
	for i, s := range suffixes {
		names[i] = name + "." + s
	}
	return names
}

// KindNames returns the names of all valid metric kinds.
func KindNames() []string {
	return []string{
		string(KindCounter), string(KindGauge), string(KindHistogram),
		string(KindDistribution), string(KindTiming), string(KindSet),
	}
}
