package schema

import "sort"

// TagRestriction is the tri-state interpretation of a metric's allowed-tag
// declaration. The source DSL distinguishes "nothing declared" (any tag
// allowed) from an explicit empty list (no tags allowed).
type TagRestriction int

const (
	// TagsUnrestricted means the metric accepts any tag.
	TagsUnrestricted TagRestriction = iota
	// TagsNoneAllowed means the metric accepts no tags at all.
	TagsNoneAllowed
	// TagsRestricted means only the declared allowed tags are accepted.
	TagsRestricted
)

// MetricResolver resolves dotted metric paths, typically against the root
// of a namespace tree. It is the lookup side of tag inheritance.
type MetricResolver interface {
	FindMetric(path string) (*MetricDefinition, bool)
}

// MetricDefinition describes one metric: its name, kind, tag configuration,
// optional inheritance reference, and metadata.
type MetricDefinition struct {
	// Name is the local metric name within its namespace.
	Name string

	// Kind is one of the six StatsD metric kinds.
	Kind Kind

	// Description and Units are metadata with no behavior.
	Description string
	Units       string

	// Restriction records how AllowedTags is to be interpreted.
	Restriction TagRestriction

	// AllowedTags is the set of tag names permitted on this metric when
	// Restriction is TagsRestricted.
	AllowedTags []string

	// RequiredTags is the subset of tags that must be present on every
	// emission.
	RequiredTags []string

	// InheritTags is an optional dotted path to another metric whose
	// effective tag configuration this metric extends.
	InheritTags string

	// Location is where the metric was declared.
	Location Location
}

// Kind predicates, consumed by the validator to match call-site operations
// and by the analyzer to decide name expansion.

func (m *MetricDefinition) IsCounter() bool      { return m.Kind == KindCounter }
func (m *MetricDefinition) IsGauge() bool        { return m.Kind == KindGauge }
func (m *MetricDefinition) IsHistogram() bool    { return m.Kind == KindHistogram }
func (m *MetricDefinition) IsDistribution() bool { return m.Kind == KindDistribution }
func (m *MetricDefinition) IsTiming() bool       { return m.Kind == KindTiming }
func (m *MetricDefinition) IsSet() bool          { return m.Kind == KindSet }

// MissingRequiredTags returns the required tag names absent from the
// provided tag keys, sorted.
func (m *MetricDefinition) MissingRequiredTags(provided map[string]string) []string {
	var missing []string
	for _, name := range m.RequiredTags {
		if _, ok := provided[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// InvalidTags returns the provided tag keys not permitted on this metric,
// sorted. An unrestricted metric never reports invalid tags; a metric that
// allows no tags reports every provided key.
func (m *MetricDefinition) InvalidTags(provided map[string]string) []string {
	var invalid []string
	switch m.Restriction {
	case TagsUnrestricted:
		return nil
	case TagsNoneAllowed:
		for name := range provided {
			invalid = append(invalid, name)
		}
	case TagsRestricted:
		allowed := make(map[string]struct{}, len(m.AllowedTags))
		for _, name := range m.AllowedTags {
			allowed[name] = struct{}{}
		}
		for name := range provided {
			if _, ok := allowed[name]; !ok {
				invalid = append(invalid, name)
			}
		}
	}
	sort.Strings(invalid)
	return invalid
}

// EffectiveAllowedTags resolves the metric's inheritance chain through the
// resolver and returns the union of the inherited metric's effective
// allowed tags and this metric's own declared allowed tags, de-duplicated
// and sorted. Inheritance is best-effort: an unresolvable reference falls
// back to the metric's own declared set. Cyclic chains are detected and
// cut rather than recursed into.
func (m *MetricDefinition) EffectiveAllowedTags(resolver MetricResolver) []string {
	return m.effectiveTags(resolver, func(md *MetricDefinition) []string { return md.AllowedTags }, map[string]bool{})
}

// EffectiveRequiredTags is EffectiveAllowedTags for required tags.
func (m *MetricDefinition) EffectiveRequiredTags(resolver MetricResolver) []string {
	return m.effectiveTags(resolver, func(md *MetricDefinition) []string { return md.RequiredTags }, map[string]bool{})
}

// effectiveTags merges the declared tag set with the inherited metric's
// effective set. The visited map keys on inherit paths to break cycles.
func (m *MetricDefinition) effectiveTags(resolver MetricResolver, declared func(*MetricDefinition) []string, visited map[string]bool) []string {
	set := make(map[string]struct{})
	for _, name := range declared(m) {
		set[name] = struct{}{}
	}

	if m.InheritTags != "" && resolver != nil && !visited[m.InheritTags] {
		visited[m.InheritTags] = true
		if parent, ok := resolver.FindMetric(m.InheritTags); ok {
			for _, name := range parent.effectiveTags(resolver, declared, visited) {
				set[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
