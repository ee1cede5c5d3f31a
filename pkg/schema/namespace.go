package schema

import (
	"sort"
	"strings"
)

// RootName is the name of the synthetic root namespace. It groups
// top-level namespaces and is excluded from fully-qualified metric names.
const RootName = "root"

// Namespace is a node in the schema tree. It owns tag definitions,
// metric definitions, and child namespaces. Tags declared here are
// visible to this namespace and its descendants unless shadowed.
type Namespace struct {
	// Name is the namespace segment used in dotted paths.
	Name string

	// Description is optional human-readable documentation.
	Description string

	// Tags maps tag name to definition, scoped to this namespace.
	Tags map[string]*TagDefinition

	// Metrics maps local metric name to definition.
	Metrics map[string]*MetricDefinition

	// Children maps child namespace name to node.
	Children map[string]*Namespace

	// Location is where the namespace was declared.
	Location Location
}

// NewNamespace creates an empty namespace node.
func NewNamespace(name, description string) *Namespace {
	return &Namespace{
		Name:        name,
		Description: description,
		Tags:        make(map[string]*TagDefinition),
		Metrics:     make(map[string]*MetricDefinition),
		Children:    make(map[string]*Namespace),
	}
}

// NewRoot creates the synthetic root namespace.
func NewRoot() *Namespace {
	return NewNamespace(RootName, "")
}

// clone returns a shallow copy of the node with fresh maps, so add
// operations never mutate a node that may already be shared.
func (n *Namespace) clone() *Namespace {
	c := &Namespace{
		Name:        n.Name,
		Description: n.Description,
		Tags:        make(map[string]*TagDefinition, len(n.Tags)+1),
		Metrics:     make(map[string]*MetricDefinition, len(n.Metrics)+1),
		Children:    make(map[string]*Namespace, len(n.Children)+1),
		Location:    n.Location,
	}
	for k, v := range n.Tags {
		c.Tags[k] = v
	}
	for k, v := range n.Metrics {
		c.Metrics[k] = v
	}
	for k, v := range n.Children {
		c.Children[k] = v
	}
	return c
}

// WithTag returns a new node that additionally holds the tag definition.
// The receiver is unchanged.
func (n *Namespace) WithTag(tag *TagDefinition) *Namespace {
	c := n.clone()
	c.Tags[tag.Name] = tag
	return c
}

// WithMetric returns a new node that additionally holds the metric
// definition. A metric of the same name is replaced (last write wins);
// duplicate detection is the builder's concern.
func (n *Namespace) WithMetric(metric *MetricDefinition) *Namespace {
	c := n.clone()
	c.Metrics[metric.Name] = metric
	return c
}

// WithChild returns a new node that additionally holds the child
// namespace. The receiver is unchanged.
func (n *Namespace) WithChild(child *Namespace) *Namespace {
	c := n.clone()
	c.Children[child.Name] = child
	return c
}

// HasTag reports whether the tag is declared on this namespace.
func (n *Namespace) HasTag(name string) bool {
	_, ok := n.Tags[name]
	return ok
}

// FindNamespace resolves a dotted path to a descendant namespace.
// A single-segment path resolves among direct children; a multi-segment
// path descends one segment at a time, failing at the first missing
// segment.
func (n *Namespace) FindNamespace(path string) (*Namespace, bool) {
	if path == "" {
		return nil, false
	}
	head, rest, more := strings.Cut(path, ".")
	child, ok := n.Children[head]
	if !ok {
		return nil, false
	}
	if !more {
		return child, true
	}
	return child.FindNamespace(rest)
}

// FindMetric resolves a dotted path to a metric definition. The final
// segment names the metric; preceding segments name namespaces.
func (n *Namespace) FindMetric(path string) (*MetricDefinition, bool) {
	if path == "" {
		return nil, false
	}
	head, rest, more := strings.Cut(path, ".")
	if !more {
		m, ok := n.Metrics[head]
		return m, ok
	}
	child, ok := n.Children[head]
	if !ok {
		return nil, false
	}
	return child.FindMetric(rest)
}

// MetricInfo annotates a metric with the namespace that owns it and the
// dotted namespace path used to reach it.
type MetricInfo struct {
	Metric    *MetricDefinition
	Namespace *Namespace
	Path      string
}

// AllMetrics recursively enumerates every metric in this subtree, keyed
// by fully-qualified dotted name. The prefix is prepended to paths; the
// synthetic root namespace name never appears in formatted paths.
func (n *Namespace) AllMetrics(prefix string) map[string]MetricInfo {
	out := make(map[string]MetricInfo)
	n.collectMetrics(prefix, out)
	return out
}

func (n *Namespace) collectMetrics(prefix string, out map[string]MetricInfo) {
	path := prefix
	if n.Name != RootName {
		path = joinPath(prefix, n.Name)
	}
	for name, m := range n.Metrics {
		out[joinPath(path, name)] = MetricInfo{Metric: m, Namespace: n, Path: path}
	}
	for _, child := range n.Children {
		child.collectMetrics(path, out)
	}
}

// EffectiveTags merges parent-namespace tags into this namespace's own
// tag table. Nearest declaration wins: a tag declared here shadows a
// parent tag of the same name. The merge does not recurse into
// grandparents; callers needing full-ancestor visibility walk the path
// themselves, accumulating the result of each level.
func (n *Namespace) EffectiveTags(parent map[string]*TagDefinition) map[string]*TagDefinition {
	merged := make(map[string]*TagDefinition, len(parent)+len(n.Tags))
	for name, tag := range parent {
		merged[name] = tag
	}
	for name, tag := range n.Tags {
		merged[name] = tag
	}
	return merged
}

// TagNames returns the names of tags declared on this namespace, sorted.
func (n *Namespace) TagNames() []string {
	names := make([]string, 0, len(n.Tags))
	for name := range n.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// joinPath joins two dotted path segments, tolerating an empty prefix.
func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
