package emitter

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/metricgov/metricgov/pkg/schema"
	schemaErrors "github.com/metricgov/metricgov/pkg/schema/errors"
	"github.com/metricgov/metricgov/pkg/sink"
	"github.com/metricgov/metricgov/pkg/validator"
)

func emitterTree(t *testing.T) *schema.Namespace {
	t.Helper()

	method := &schema.TagDefinition{Name: "method", Values: schema.EnumValues("GET", "POST")}
	total := &schema.MetricDefinition{
		Name:         "total",
		Kind:         schema.KindCounter,
		Restriction:  schema.TagsRestricted,
		AllowedTags:  []string{"method"},
		RequiredTags: []string{"method"},
	}
	latency := &schema.MetricDefinition{Name: "latency", Kind: schema.KindTiming}

	web := schema.NewNamespace("web", "").WithTag(method).WithMetric(total).WithMetric(latency)
	return schema.NewRoot().WithChild(web)
}

func newEmitter(t *testing.T, opts Options) (*Emitter, *sink.MemorySink) {
	t.Helper()
	v := validator.New([]*schema.Namespace{emitterTree(t)}, validator.Options{})
	mem := sink.NewMemorySink()
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	}
	return New(v, mem, opts), mem
}

func TestEmitterForwardsValidEmission(t *testing.T) {
	e, mem := newEmitter(t, Options{})

	if err := e.Increment("web.total", map[string]string{"method": "GET"}); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}

	got := mem.Emissions()
	if len(got) != 1 {
		t.Fatalf("captured %d emissions, want 1", len(got))
	}
	if got[0].Kind != "counter" || got[0].Name != "web.total" || got[0].Value != 1 {
		t.Errorf("captured emission = %+v", got[0])
	}
}

func TestEmitterStrictRejects(t *testing.T) {
	e, mem := newEmitter(t, Options{Mode: validator.ModeStrict})

	err := e.Increment("web.total", nil)
	if err == nil {
		t.Fatal("strict mode accepted an invalid emission")
	}
	if got := ValidationKind(err); got != schemaErrors.KindMissingRequiredTag {
		t.Errorf("ValidationKind = %q, want missing_required_tag", got)
	}
	if len(mem.Emissions()) != 0 {
		t.Error("strict mode forwarded a rejected emission")
	}
}

func TestEmitterWarnForwards(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	e, mem := newEmitter(t, Options{Mode: validator.ModeWarn, Logger: logger})

	if err := e.Increment("web.total", nil); err != nil {
		t.Fatalf("warn mode returned an error: %v", err)
	}
	if len(mem.Emissions()) != 1 {
		t.Error("warn mode did not forward the emission")
	}
	if !strings.Contains(buf.String(), "missing_required_tag") {
		t.Errorf("warn log missing failure kind: %s", buf.String())
	}
}

func TestEmitterDropSuppresses(t *testing.T) {
	e, mem := newEmitter(t, Options{Mode: validator.ModeDrop})

	if err := e.Increment("web.total", nil); err != nil {
		t.Fatalf("drop mode returned an error: %v", err)
	}
	if len(mem.Emissions()) != 0 {
		t.Error("drop mode forwarded a rejected emission")
	}
}

func TestEmitterOffSkipsValidation(t *testing.T) {
	e, mem := newEmitter(t, Options{Mode: validator.ModeOff})

	// Metric not declared anywhere; off mode forwards regardless.
	if err := e.Gauge("undeclared.metric", 1.5, nil); err != nil {
		t.Fatalf("off mode returned an error: %v", err)
	}
	if len(mem.Emissions()) != 1 {
		t.Error("off mode did not forward the emission")
	}
}

func TestEmitterDefaultTagsMerge(t *testing.T) {
	e, mem := newEmitter(t, Options{
		Mode:        validator.ModeOff,
		DefaultTags: map[string]string{"env": "prod", "method": "GET"},
	})

	callSite := map[string]string{"method": "POST"}
	if err := e.Increment("web.total", callSite); err != nil {
		t.Fatal(err)
	}

	got := mem.Emissions()[0].Tags
	if got["env"] != "prod" {
		t.Errorf("default tag env = %q, want prod", got["env"])
	}
	if got["method"] != "POST" {
		t.Errorf("merged method = %q, call-site value should win", got["method"])
	}
	if callSite["env"] != "" {
		t.Error("merge mutated the caller's tag map")
	}
}

func TestEmitterOperationRouting(t *testing.T) {
	e, mem := newEmitter(t, Options{Mode: validator.ModeOff})

	e.IncrementBy("web.total", 5, nil)
	e.Decrement("web.total", nil)
	e.Gauge("g", 2.5, nil)
	e.Histogram("h", 3, nil)
	e.Distribution("d", 4, nil)
	e.Set("s", "user-1", nil)
	e.Timing("web.latency", 250*time.Millisecond, nil)

	got := mem.Emissions()
	if len(got) != 7 {
		t.Fatalf("captured %d emissions, want 7", len(got))
	}
	if got[0].Value != 5 {
		t.Errorf("IncrementBy delta = %v, want 5", got[0].Value)
	}
	if got[1].Value != -1 {
		t.Errorf("Decrement delta = %v, want -1", got[1].Value)
	}
	if got[5].Member != "user-1" {
		t.Errorf("Set member = %q", got[5].Member)
	}
	if got[6].Kind != "timing" || got[6].Value != 250 {
		t.Errorf("Timing emission = %+v, want 250ms", got[6])
	}
}

func TestValidationKindNonValidationError(t *testing.T) {
	if got := ValidationKind(nil); got != "" {
		t.Errorf("ValidationKind(nil) = %q, want empty", got)
	}
}
