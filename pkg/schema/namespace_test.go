package schema

import (
	"testing"
)

func TestWithOperationsDoNotMutate(t *testing.T) {
	base := NewNamespace("web", "")

	withTag := base.WithTag(&TagDefinition{Name: "method"})
	if base.HasTag("method") {
		t.Error("WithTag mutated the receiver")
	}
	if !withTag.HasTag("method") {
		t.Error("WithTag result is missing the tag")
	}

	withMetric := base.WithMetric(&MetricDefinition{Name: "total", Kind: KindCounter})
	if len(base.Metrics) != 0 {
		t.Error("WithMetric mutated the receiver")
	}
	if _, ok := withMetric.Metrics["total"]; !ok {
		t.Error("WithMetric result is missing the metric")
	}
}

func TestFindMetric(t *testing.T) {
	total := &MetricDefinition{Name: "total", Kind: KindCounter}
	requests := NewNamespace("requests", "").WithMetric(total)
	web := NewNamespace("web", "").WithChild(requests)
	root := NewRoot().WithChild(web)

	m, ok := root.FindMetric("web.requests.total")
	if !ok || m.Name != "total" {
		t.Fatalf("FindMetric(web.requests.total) = %v, %v", m, ok)
	}

	if _, ok := root.FindMetric("web.requests.missing"); ok {
		t.Error("FindMetric found a metric that does not exist")
	}
	if _, ok := root.FindMetric("web.missing.total"); ok {
		t.Error("FindMetric resolved through a missing namespace")
	}
	if _, ok := root.FindMetric(""); ok {
		t.Error("FindMetric(\"\") should fail")
	}
}

func TestAllMetricsExcludesRootName(t *testing.T) {
	requests := NewNamespace("requests", "").
		WithMetric(&MetricDefinition{Name: "total", Kind: KindCounter}).
		WithMetric(&MetricDefinition{Name: "errors", Kind: KindCounter})
	web := NewNamespace("web", "").WithChild(requests)
	root := NewRoot().WithChild(web)

	all := root.AllMetrics("")
	if len(all) != 2 {
		t.Fatalf("AllMetrics returned %d entries, want 2", len(all))
	}
	for _, fq := range []string{"web.requests.total", "web.requests.errors"} {
		if _, ok := all[fq]; !ok {
			t.Errorf("AllMetrics missing %q; got keys %v", fq, keysOf(all))
		}
	}
}

func TestEffectiveTagsShadowing(t *testing.T) {
	parentEnv := &TagDefinition{Name: "env", Values: EnumValues("prod", "staging")}
	childEnv := &TagDefinition{Name: "env", Values: EnumValues("prod")}

	child := NewNamespace("api", "").WithTag(childEnv)
	merged := child.EffectiveTags(map[string]*TagDefinition{"env": parentEnv, "region": {Name: "region"}})

	if got := merged["env"]; got != childEnv {
		t.Error("child declaration should shadow the parent tag")
	}
	if _, ok := merged["region"]; !ok {
		t.Error("parent-only tag should remain visible")
	}
}

func keysOf(m map[string]MetricInfo) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
