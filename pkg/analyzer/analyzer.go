package analyzer

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/metricgov/metricgov/pkg/schema"
)

// Fixed conservative estimates for tags whose value sets cannot be
// enumerated from the schema.
const (
	// PatternValueEstimate is charged for pattern-restricted tags.
	PatternValueEstimate = 50
	// UnrestrictedValueEstimate is charged for unrestricted and
	// predicate-checked tags.
	UnrestrictedValueEstimate = 100
)

// Analyzer walks one or more namespace trees and computes the estimated
// cardinality of every metric they declare.
type Analyzer struct {
	roots []*schema.Namespace
}

// New creates an analyzer over the given namespace trees.
func New(roots ...*schema.Namespace) *Analyzer {
	return &Analyzer{roots: roots}
}

// indexed is the per-metric state collected while walking the tree: the
// metric, its fully-qualified name, and every tag definition visible
// along its namespace chain.
type indexed struct {
	metric  *schema.MetricDefinition
	fq      string
	visible map[string]*schema.TagDefinition
}

// Analyze computes the full cardinality report.
func (a *Analyzer) Analyze() *Result {
	index := make(map[string]*indexed)
	for _, root := range a.roots {
		collect(root, "", nil, index)
	}

	memo := make(map[string]map[string]*schema.TagDefinition, len(index))
	result := &Result{
		RunID:           uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		MetricsAnalysis: make([]MetricAnalysis, 0, len(index)),
	}

	for fq, e := range index {
		tags, _ := effectiveTagDefs(fq, index, memo, map[string]bool{})

		names := make([]string, 0, len(tags))
		for name := range tags {
			names = append(names, name)
		}
		sort.Strings(names)

		values := make(map[string]int, len(tags))
		combinations := int64(1)
		for _, name := range names {
			count := estimateValues(tags[name])
			values[name] = count
			combinations *= int64(count)
		}

		expanded := e.metric.Kind.ExpandedNames(fq)
		combinations *= int64(len(expanded))

		result.MetricsAnalysis = append(result.MetricsAnalysis, MetricAnalysis{
			MetricName:        fq,
			MetricType:        string(e.metric.Kind),
			ExpandedNames:     expanded,
			UniqueTags:        names,
			UniqueTagValues:   values,
			TotalCombinations: combinations,
		})

		result.TotalUniqueMetrics += len(expanded)
		result.TotalPossibleCustomMetrics += combinations
	}

	sortAnalysis(result.MetricsAnalysis)
	return result
}

// collect walks a subtree, carrying the ancestor-chain tag visibility
// down to every metric.
func collect(n *schema.Namespace, prefix string, parentTags map[string]*schema.TagDefinition, index map[string]*indexed) {
	visible := n.EffectiveTags(parentTags)

	path := prefix
	if n.Name != schema.RootName {
		if path == "" {
			path = n.Name
		} else {
			path = path + "." + n.Name
		}
	}

	for name, m := range n.Metrics {
		fq := name
		if path != "" {
			fq = path + "." + name
		}
		index[fq] = &indexed{metric: m, fq: fq, visible: visible}
	}

	for _, child := range n.Children {
		collect(child, path, visible, index)
	}
}

// effectiveTagDefs resolves the effective tag set of a metric: tags
// contributed by the inheritance chain first, then either the metric's
// own declared tag names (restricted to those resolvable in its
// namespace chain) or, when the metric declares no restriction of its
// own, every tag visible to the chain. The visiting map breaks
// inheritance cycles. The second return reports whether the resolution
// was cut short by a cycle; only uncut resolutions are memoized, since
// a cut one is a partial view that depends on where the walk entered
// the cycle and must not be reused for other metrics.
func effectiveTagDefs(fq string, index map[string]*indexed, memo map[string]map[string]*schema.TagDefinition, visiting map[string]bool) (map[string]*schema.TagDefinition, bool) {
	if cached, ok := memo[fq]; ok {
		return cached, false
	}
	e, ok := index[fq]
	if !ok {
		return nil, false
	}
	if visiting[fq] {
		return nil, true
	}
	visiting[fq] = true

	tags := make(map[string]*schema.TagDefinition)
	cut := false

	if e.metric.InheritTags != "" {
		inherited, inheritedCut := effectiveTagDefs(e.metric.InheritTags, index, memo, visiting)
		cut = inheritedCut
		for name, def := range inherited {
			tags[name] = def
		}
	}

	if declaresOwnTags(e.metric) {
		for _, name := range declaredTagNames(e.metric) {
			if def, ok := e.visible[name]; ok {
				tags[name] = def
			}
		}
	} else {
		for name, def := range e.visible {
			tags[name] = def
		}
	}

	delete(visiting, fq)
	if !cut {
		memo[fq] = tags
	}
	return tags, cut
}

// declaresOwnTags reports whether the metric restricts its tag set
// itself, as opposed to accepting everything its namespace chain offers.
func declaresOwnTags(m *schema.MetricDefinition) bool {
	return m.Restriction != schema.TagsUnrestricted || len(m.RequiredTags) > 0
}

// declaredTagNames is the union of a metric's allowed and required tag
// names.
func declaredTagNames(m *schema.MetricDefinition) []string {
	set := make(map[string]struct{}, len(m.AllowedTags)+len(m.RequiredTags))
	for _, name := range m.AllowedTags {
		set[name] = struct{}{}
	}
	for _, name := range m.RequiredTags {
		set[name] = struct{}{}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// estimateValues returns the estimated number of distinct values a tag
// can take.
func estimateValues(def *schema.TagDefinition) int {
	switch def.Values.Kind() {
	case schema.ValuesEnumeration:
		return len(def.Values.Literals())
	case schema.ValuesPattern:
		return PatternValueEstimate
	default:
		return UnrestrictedValueEstimate
	}
}
