package validator

import (
	"reflect"
	"testing"

	"github.com/metricgov/metricgov/pkg/schema"
	schemaErrors "github.com/metricgov/metricgov/pkg/schema/errors"
)

// testTree builds the tree used across validator tests:
//
//	web (tags: method enum, status pattern)
//	  requests
//	    total    counter, allowed [method, status], required [method]
//	    errors   counter, inherits web.requests.total
//	  memory
//	    usage    gauge, no tags allowed
//	  latency    distribution, unrestricted
func testTree(t *testing.T) *schema.Namespace {
	t.Helper()

	method := &schema.TagDefinition{Name: "method", Values: schema.EnumValues("GET", "POST")}
	status := &schema.TagDefinition{Name: "status", Values: schema.EnumValues("200", "404", "500")}

	total := &schema.MetricDefinition{
		Name:         "total",
		Kind:         schema.KindCounter,
		Restriction:  schema.TagsRestricted,
		AllowedTags:  []string{"method", "status"},
		RequiredTags: []string{"method"},
	}
	errors := &schema.MetricDefinition{
		Name:        "errors",
		Kind:        schema.KindCounter,
		InheritTags: "web.requests.total",
	}
	usage := &schema.MetricDefinition{
		Name:        "usage",
		Kind:        schema.KindGauge,
		Restriction: schema.TagsNoneAllowed,
	}
	latency := &schema.MetricDefinition{
		Name: "latency",
		Kind: schema.KindDistribution,
	}

	requests := schema.NewNamespace("requests", "").WithMetric(total).WithMetric(errors)
	memory := schema.NewNamespace("memory", "").WithMetric(usage)
	web := schema.NewNamespace("web", "").
		WithTag(method).WithTag(status).
		WithChild(requests).WithChild(memory).
		WithMetric(latency)

	return schema.NewRoot().WithChild(web)
}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	return New([]*schema.Namespace{testTree(t)}, Options{})
}

func TestCheckAcceptsValidEmission(t *testing.T) {
	v := newTestValidator(t)

	err := v.Check(OpIncrement, "web.requests.total", map[string]string{
		"method": "GET",
		"status": "200",
	})
	if err != nil {
		t.Fatalf("valid emission rejected: %v", err)
	}
}

func TestCheckUnknownMetricSuggests(t *testing.T) {
	v := newTestValidator(t)

	err := v.Check(OpIncrement, "web.requests.totals", map[string]string{"method": "GET"})
	if err == nil {
		t.Fatal("unknown metric accepted")
	}
	if err.Kind != schemaErrors.KindUnknownMetric {
		t.Errorf("kind = %q, want unknown_metric", err.Kind)
	}
	if len(err.Suggestions) == 0 || err.Suggestions[0] != "web.requests.total" {
		t.Errorf("suggestions = %v, want web.requests.total first", err.Suggestions)
	}
}

func TestCheckKindMismatch(t *testing.T) {
	v := newTestValidator(t)

	err := v.Check(OpGauge, "web.requests.total", map[string]string{"method": "GET"})
	if err == nil {
		t.Fatal("kind mismatch accepted")
	}
	if err.Kind != schemaErrors.KindInvalidMetricType {
		t.Errorf("kind = %q, want invalid_metric_type", err.Kind)
	}
}

func TestCheckMissingRequiredTag(t *testing.T) {
	v := newTestValidator(t)

	err := v.Check(OpIncrement, "web.requests.total", map[string]string{"status": "200"})
	if err == nil {
		t.Fatal("missing required tag accepted")
	}
	if err.Kind != schemaErrors.KindMissingRequiredTag {
		t.Errorf("kind = %q, want missing_required_tag", err.Kind)
	}
	if err.Tag != "method" {
		t.Errorf("tag = %q, want method", err.Tag)
	}
}

func TestCheckInvalidTag(t *testing.T) {
	v := newTestValidator(t)

	err := v.Check(OpIncrement, "web.requests.total", map[string]string{
		"method": "GET",
		"region": "us-east-1",
	})
	if err == nil {
		t.Fatal("disallowed tag accepted")
	}
	if err.Kind != schemaErrors.KindInvalidTag {
		t.Errorf("kind = %q, want invalid_tag", err.Kind)
	}
	if err.Tag != "region" {
		t.Errorf("tag = %q, want region", err.Tag)
	}
}

func TestCheckNoTagsAllowed(t *testing.T) {
	v := newTestValidator(t)

	if err := v.Check(OpGauge, "web.memory.usage", nil); err != nil {
		t.Fatalf("tagless emission to no-tags metric rejected: %v", err)
	}

	err := v.Check(OpGauge, "web.memory.usage", map[string]string{"method": "GET"})
	if err == nil || err.Kind != schemaErrors.KindInvalidTag {
		t.Errorf("no-tags metric accepted a tag: %v", err)
	}
}

func TestCheckInvalidTagValue(t *testing.T) {
	v := newTestValidator(t)

	err := v.Check(OpIncrement, "web.requests.total", map[string]string{
		"method": "PATCH",
	})
	if err == nil {
		t.Fatal("out-of-enumeration value accepted")
	}
	if err.Kind != schemaErrors.KindInvalidTagValue {
		t.Errorf("kind = %q, want invalid_tag_value", err.Kind)
	}
	if err.Tag != "method" {
		t.Errorf("tag = %q, want method", err.Tag)
	}
}

func TestCheckPipelineOrder(t *testing.T) {
	v := newTestValidator(t)

	// Emission fails both presence (missing method) and value (bad
	// status). Presence is checked first.
	err := v.Check(OpIncrement, "web.requests.total", map[string]string{"status": "999"})
	if err == nil {
		t.Fatal("expected failure")
	}
	if err.Kind != schemaErrors.KindMissingRequiredTag {
		t.Errorf("first failure kind = %q, want missing_required_tag before value checks", err.Kind)
	}
}

func TestCheckInheritedTags(t *testing.T) {
	v := newTestValidator(t)

	// errors inherits allowed [method, status] and required [method].
	if err := v.Check(OpIncrement, "web.requests.errors", map[string]string{"method": "POST"}); err != nil {
		t.Fatalf("inherited tag configuration rejected valid emission: %v", err)
	}

	err := v.Check(OpIncrement, "web.requests.errors", nil)
	if err == nil || err.Kind != schemaErrors.KindMissingRequiredTag {
		t.Errorf("inherited required tag not enforced: %v", err)
	}
}

func TestCheckIgnoredTags(t *testing.T) {
	v := newTestValidator(t)

	// Framework-injected tags bypass presence and allowed checks even on
	// a restricted metric.
	err := v.Check(OpIncrement, "web.requests.total", map[string]string{
		"method":     "GET",
		"source":     "sdk",
		"experiment": "exp-42",
		"variant":    "b",
	})
	if err != nil {
		t.Fatalf("framework-injected tags rejected: %v", err)
	}
}

func TestCheckDoesNotMutateTags(t *testing.T) {
	v := newTestValidator(t)

	tags := map[string]string{"method": "GET", "status": "200"}
	want := map[string]string{"method": "GET", "status": "200"}

	v.Check(OpIncrement, "web.requests.total", tags)
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("Check mutated caller tags: %v", tags)
	}
}

func TestCheckIdempotent(t *testing.T) {
	v := newTestValidator(t)
	tags := map[string]string{"status": "200"}

	first := v.Check(OpIncrement, "web.requests.total", tags)
	second := v.Check(OpIncrement, "web.requests.total", tags)
	if first == nil || second == nil {
		t.Fatal("expected failures")
	}
	if first.Kind != second.Kind || first.Tag != second.Tag {
		t.Errorf("repeated Check differed: %v vs %v", first, second)
	}
}

func TestOperationKinds(t *testing.T) {
	tests := []struct {
		op   Operation
		want schema.Kind
	}{
		{OpIncrement, schema.KindCounter},
		{OpDecrement, schema.KindCounter},
		{OpGauge, schema.KindGauge},
		{OpHistogram, schema.KindHistogram},
		{OpDistribution, schema.KindDistribution},
		{OpSet, schema.KindSet},
		{OpTiming, schema.KindTiming},
	}
	for _, tt := range tests {
		if got := tt.op.MetricKind(); got != tt.want {
			t.Errorf("MetricKind(%s) = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if got, err := ParseMode(""); err != nil || got != ModeStrict {
		t.Errorf("ParseMode(\"\") = %q, %v, want strict default", got, err)
	}
	if _, err := ParseMode("lenient"); err == nil {
		t.Error("ParseMode(\"lenient\") should fail")
	}
}
