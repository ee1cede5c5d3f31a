package schema

import (
	"reflect"
	"testing"
)

func TestInvalidTagsTriState(t *testing.T) {
	provided := map[string]string{"method": "GET", "status": "200"}

	unrestricted := &MetricDefinition{Name: "total", Restriction: TagsUnrestricted}
	if got := unrestricted.InvalidTags(provided); got != nil {
		t.Errorf("unrestricted metric reported invalid tags: %v", got)
	}

	closed := &MetricDefinition{Name: "heartbeat", Restriction: TagsNoneAllowed}
	if got := closed.InvalidTags(provided); !reflect.DeepEqual(got, []string{"method", "status"}) {
		t.Errorf("no-tags metric InvalidTags = %v, want every provided key", got)
	}

	restricted := &MetricDefinition{
		Name:        "total",
		Restriction: TagsRestricted,
		AllowedTags: []string{"method"},
	}
	if got := restricted.InvalidTags(provided); !reflect.DeepEqual(got, []string{"status"}) {
		t.Errorf("restricted metric InvalidTags = %v, want [status]", got)
	}
}

func TestMissingRequiredTags(t *testing.T) {
	m := &MetricDefinition{
		Name:         "total",
		RequiredTags: []string{"method", "status"},
	}

	got := m.MissingRequiredTags(map[string]string{"method": "GET"})
	if !reflect.DeepEqual(got, []string{"status"}) {
		t.Errorf("MissingRequiredTags = %v, want [status]", got)
	}

	if got := m.MissingRequiredTags(map[string]string{"method": "GET", "status": "200"}); got != nil {
		t.Errorf("MissingRequiredTags with all present = %v, want nil", got)
	}
}

// inheritanceTree builds a small tree for inheritance tests:
// web.requests.total declares tags, web.requests.errors inherits from it.
func inheritanceTree(t *testing.T, inheritFrom string) *Namespace {
	t.Helper()

	base := &MetricDefinition{
		Name:         "total",
		Kind:         KindCounter,
		Restriction:  TagsRestricted,
		AllowedTags:  []string{"method", "status"},
		RequiredTags: []string{"method"},
	}
	errors := &MetricDefinition{
		Name:        "errors",
		Kind:        KindCounter,
		Restriction: TagsRestricted,
		AllowedTags: []string{"code"},
		InheritTags: inheritFrom,
	}

	requests := NewNamespace("requests", "").WithMetric(base).WithMetric(errors)
	web := NewNamespace("web", "").WithChild(requests)
	return NewRoot().WithChild(web)
}

func TestEffectiveAllowedTagsInheritance(t *testing.T) {
	root := inheritanceTree(t, "web.requests.total")

	m, ok := root.FindMetric("web.requests.errors")
	if !ok {
		t.Fatal("web.requests.errors not found")
	}

	got := m.EffectiveAllowedTags(root)
	want := []string{"code", "method", "status"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EffectiveAllowedTags = %v, want %v", got, want)
	}

	required := m.EffectiveRequiredTags(root)
	if !reflect.DeepEqual(required, []string{"method"}) {
		t.Errorf("EffectiveRequiredTags = %v, want [method]", required)
	}
}

func TestEffectiveTagsUnresolvableReference(t *testing.T) {
	root := inheritanceTree(t, "web.requests.missing")

	m, _ := root.FindMetric("web.requests.errors")
	got := m.EffectiveAllowedTags(root)
	if !reflect.DeepEqual(got, []string{"code"}) {
		t.Errorf("unresolvable inherit_tags should fall back to declared set, got %v", got)
	}
}

func TestEffectiveTagsCycle(t *testing.T) {
	a := &MetricDefinition{
		Name:        "a",
		Kind:        KindCounter,
		Restriction: TagsRestricted,
		AllowedTags: []string{"x"},
		InheritTags: "ns.b",
	}
	b := &MetricDefinition{
		Name:        "b",
		Kind:        KindCounter,
		Restriction: TagsRestricted,
		AllowedTags: []string{"y"},
		InheritTags: "ns.a",
	}
	ns := NewNamespace("ns", "").WithMetric(a).WithMetric(b)
	root := NewRoot().WithChild(ns)

	// Must terminate and include each side's contribution exactly once.
	got := a.EffectiveAllowedTags(root)
	want := []string{"x", "y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cyclic EffectiveAllowedTags = %v, want %v", got, want)
	}
}
