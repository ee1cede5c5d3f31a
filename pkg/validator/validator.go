package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/metricgov/metricgov/pkg/schema"
	schemaErrors "github.com/metricgov/metricgov/pkg/schema/errors"
)

// Operation is a call-site emission operation. The validator maps each
// operation to the metric kind it implies.
type Operation string

const (
	OpIncrement    Operation = "increment"
	OpDecrement    Operation = "decrement"
	OpGauge        Operation = "gauge"
	OpHistogram    Operation = "histogram"
	OpDistribution Operation = "distribution"
	OpSet          Operation = "set"
	OpTiming       Operation = "timing"
)

// MetricKind returns the schema kind an operation implies.
func (op Operation) MetricKind() schema.Kind {
	switch op {
	case OpIncrement, OpDecrement:
		return schema.KindCounter
	case OpGauge:
		return schema.KindGauge
	case OpHistogram:
		return schema.KindHistogram
	case OpDistribution:
		return schema.KindDistribution
	case OpSet:
		return schema.KindSet
	case OpTiming:
		return schema.KindTiming
	default:
		return ""
	}
}

// DefaultIgnoredTags are framework-injected tag names excluded from both
// required-tag and allowed-tag checks: the emitter source tag and the
// A/B-experiment tags added by test frameworks.
var DefaultIgnoredTags = []string{"source", "experiment", "variant"}

// Options configures a Validator.
type Options struct {
	// Registry resolves named transformation steps. Defaults to the
	// built-in registry.
	Registry *schema.TransformerRegistry

	// IgnoredTags lists framework-injected tag names exempt from
	// presence and allowed-tag checks. Defaults to DefaultIgnoredTags.
	IgnoredTags []string
}

// entry is the precomputed per-metric validation state. Effective tag
// sets and the visible tag chain are resolved once at construction so
// the per-emission check touches only in-memory maps.
type entry struct {
	metric      *schema.MetricDefinition
	visibleTags map[string]*schema.TagDefinition
	required    []string
	restriction schema.TagRestriction
	allowed     map[string]struct{}
}

// Validator checks metric emissions against one or more namespace trees.
// It is immutable after construction and safe for concurrent use.
type Validator struct {
	index    map[string]*entry
	names    []string
	registry *schema.TransformerRegistry
	ignored  map[string]struct{}
}

// multiResolver resolves dotted metric paths across several roots.
type multiResolver []*schema.Namespace

func (r multiResolver) FindMetric(path string) (*schema.MetricDefinition, bool) {
	for _, root := range r {
		if m, ok := root.FindMetric(path); ok {
			return m, true
		}
	}
	return nil, false
}

// New builds a validator over the given namespace trees.
func New(roots []*schema.Namespace, opts Options) *Validator {
	registry := opts.Registry
	if registry == nil {
		registry = schema.NewTransformerRegistry()
	}
	ignoredNames := opts.IgnoredTags
	if ignoredNames == nil {
		ignoredNames = DefaultIgnoredTags
	}
	ignored := make(map[string]struct{}, len(ignoredNames))
	for _, name := range ignoredNames {
		ignored[name] = struct{}{}
	}

	v := &Validator{
		index:    make(map[string]*entry),
		registry: registry,
		ignored:  ignored,
	}

	resolver := multiResolver(roots)
	for _, root := range roots {
		indexNamespace(root, "", nil, resolver, v.index)
	}

	v.names = make([]string, 0, len(v.index))
	for name := range v.index {
		v.names = append(v.names, name)
	}
	sort.Strings(v.names)

	return v
}

// indexNamespace walks a subtree accumulating the ancestor-chain tag
// visibility and precomputing each metric's effective tag sets.
func indexNamespace(n *schema.Namespace, prefix string, parentTags map[string]*schema.TagDefinition, resolver schema.MetricResolver, index map[string]*entry) {
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
		index[fq] = buildEntry(m, visible, resolver)
	}

	for _, child := range n.Children {
		indexNamespace(child, path, visible, resolver, index)
	}
}

// buildEntry resolves a metric's effective allowed and required tag sets,
// merging tag inheritance. A metric with an inherited or declared allowed
// set is restricted to that set; a metric declaring "no tags allowed"
// stays closed unless inheritance contributes tags.
func buildEntry(m *schema.MetricDefinition, visible map[string]*schema.TagDefinition, resolver schema.MetricResolver) *entry {
	e := &entry{
		metric:      m,
		visibleTags: visible,
		required:    m.EffectiveRequiredTags(resolver),
	}

	effectiveAllowed := m.EffectiveAllowedTags(resolver)
	switch {
	case len(effectiveAllowed) > 0:
		e.restriction = schema.TagsRestricted
		e.allowed = make(map[string]struct{}, len(effectiveAllowed))
		for _, name := range effectiveAllowed {
			e.allowed[name] = struct{}{}
		}
	case m.Restriction == schema.TagsNoneAllowed:
		e.restriction = schema.TagsNoneAllowed
	default:
		e.restriction = schema.TagsUnrestricted
	}

	return e
}

// KnownMetrics returns the sorted fully-qualified names of every metric
// the validator knows about.
func (v *Validator) KnownMetrics() []string {
	return v.names
}

// Check validates a single emission: operation, fully-qualified metric
// name, and tag set. It returns nil when the emission is accepted, or
// the first failure encountered in pipeline order: metric lookup, kind
// check, tag presence, tag values.
func (v *Validator) Check(op Operation, name string, tags map[string]string) *schemaErrors.Error {
	e, ok := v.index[name]
	if !ok {
		return &schemaErrors.Error{
			Kind:        schemaErrors.KindUnknownMetric,
			Message:     fmt.Sprintf("metric %q is not declared in the schema", name),
			Metric:      name,
			Suggestions: schemaErrors.SuggestMetricNames(name, v.names),
		}
	}

	if want := e.metric.Kind; op.MetricKind() != want {
		return &schemaErrors.Error{
			Kind:     schemaErrors.KindInvalidMetricType,
			Message:  fmt.Sprintf("metric %q is declared as %s but was emitted via %s", name, want, op),
			Metric:   name,
			Location: e.metric.Location,
		}
	}

	userTags := v.userTags(tags)

	if missing := missingRequired(e.required, userTags, v.ignored); len(missing) > 0 {
		return &schemaErrors.Error{
			Kind:     schemaErrors.KindMissingRequiredTag,
			Message:  fmt.Sprintf("metric %q is missing required tag(s): %s", name, strings.Join(missing, ", ")),
			Metric:   name,
			Tag:      missing[0],
			Location: e.metric.Location,
		}
	}

	if invalid := invalidTags(e, userTags); len(invalid) > 0 {
		return &schemaErrors.Error{
			Kind:        schemaErrors.KindInvalidTag,
			Message:     fmt.Sprintf("metric %q does not allow tag(s): %s", name, strings.Join(invalid, ", ")),
			Metric:      name,
			Tag:         invalid[0],
			Location:    e.metric.Location,
			Suggestions: schemaErrors.SuggestTagNames(allowedNames(e)),
		}
	}

	// Tag value check, in sorted key order so the first failure is
	// deterministic.
	keys := make([]string, 0, len(userTags))
	for k := range userTags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		def, ok := e.visibleTags[key]
		if !ok {
			continue
		}
		value := userTags[key]
		if !def.ValidValue(value, v.registry) {
			return &schemaErrors.Error{
				Kind:     schemaErrors.KindInvalidTagValue,
				Message:  fmt.Sprintf("metric %q tag %q has invalid value %q", name, key, value),
				Metric:   name,
				Tag:      key,
				Location: def.Location,
			}
		}
	}

	return nil
}

// userTags filters out framework-injected tags from the provided set.
func (v *Validator) userTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, val := range tags {
		if _, skip := v.ignored[k]; skip {
			continue
		}
		out[k] = val
	}
	return out
}

// missingRequired returns required tags absent from the provided keys,
// excluding framework-injected names from the requirement itself.
func missingRequired(required []string, provided map[string]string, ignored map[string]struct{}) []string {
	var missing []string
	for _, name := range required {
		if _, skip := ignored[name]; skip {
			continue
		}
		if _, ok := provided[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// invalidTags returns provided keys not permitted on the metric.
func invalidTags(e *entry, provided map[string]string) []string {
	var invalid []string
	switch e.restriction {
	case schema.TagsUnrestricted:
		return nil
	case schema.TagsNoneAllowed:
		for name := range provided {
			invalid = append(invalid, name)
		}
	case schema.TagsRestricted:
		for name := range provided {
			if _, ok := e.allowed[name]; !ok {
				invalid = append(invalid, name)
			}
		}
	}
	sort.Strings(invalid)
	return invalid
}

func allowedNames(e *entry) []string {
	names := make([]string, 0, len(e.allowed))
	for name := range e.allowed {
		names = append(names, name)
	}
	return names
}
