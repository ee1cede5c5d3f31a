package validator

import (
	"testing"

	"github.com/metricgov/metricgov/pkg/schema"
	schemaErrors "github.com/metricgov/metricgov/pkg/schema/errors"
)

func TestStructuralValidateClean(t *testing.T) {
	defects := NewStructuralValidator().Validate(testTree(t))
	if defects.HasErrors() {
		t.Errorf("clean tree reported defects: %v", defects)
	}
}

func TestStructuralValidateUndeclaredReferences(t *testing.T) {
	m := &schema.MetricDefinition{
		Name:         "total",
		Kind:         schema.KindCounter,
		Restriction:  schema.TagsRestricted,
		AllowedTags:  []string{"method", "region"},
		RequiredTags: []string{"region"},
	}
	web := schema.NewNamespace("web", "").
		WithTag(&schema.TagDefinition{Name: "method"}).
		WithMetric(m)
	root := schema.NewRoot().WithChild(web)

	defects := NewStructuralValidator().Validate(root)
	// "region" is undeclared and referenced twice, once per role.
	if defects.Count() != 2 {
		t.Fatalf("defect count = %d, want 2: %v", defects.Count(), defects)
	}
	for _, d := range defects.Errors {
		if d.Kind != schemaErrors.KindStructuralDefect {
			t.Errorf("defect kind = %q, want structural_defect", d.Kind)
		}
		if d.Tag != "region" {
			t.Errorf("defect tag = %q, want region", d.Tag)
		}
		if d.Metric != "web.total" {
			t.Errorf("defect metric = %q, want web.total", d.Metric)
		}
	}
}

func TestStructuralValidateUnresolvableInheritance(t *testing.T) {
	method := &schema.TagDefinition{Name: "method"}
	total := &schema.MetricDefinition{
		Name:        "total",
		Kind:        schema.KindCounter,
		Restriction: schema.TagsRestricted,
		AllowedTags: []string{"method"},
	}

	tests := []struct {
		name    string
		inherit string
		want    schemaErrors.Kind
	}{
		{"missing namespace segment", "nosuch.space.total", schemaErrors.KindUnknownNamespace},
		{"missing metric in existing namespace", "web.nosuch", schemaErrors.KindUnknownMetric},
		{"missing metric at root", "nosuch", schemaErrors.KindUnknownMetric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := &schema.MetricDefinition{
				Name:        "errors",
				Kind:        schema.KindCounter,
				Restriction: schema.TagsRestricted,
				InheritTags: tt.inherit,
			}
			web := schema.NewNamespace("web", "").
				WithTag(method).
				WithMetric(total).
				WithMetric(errors)
			root := schema.NewRoot().WithChild(web)

			defects := NewStructuralValidator().Validate(root)
			if defects.Count() != 1 {
				t.Fatalf("defect count = %d, want 1: %v", defects.Count(), defects)
			}
			d := defects.Errors[0]
			if d.Kind != tt.want {
				t.Errorf("defect kind = %q, want %q", d.Kind, tt.want)
			}
			if d.Metric != "web.errors" {
				t.Errorf("defect metric = %q, want web.errors", d.Metric)
			}
		})
	}
}

func TestStructuralValidateAncestorTagSatisfiesChild(t *testing.T) {
	m := &schema.MetricDefinition{
		Name:        "total",
		Kind:        schema.KindCounter,
		Restriction: schema.TagsRestricted,
		AllowedTags: []string{"env"},
	}
	requests := schema.NewNamespace("requests", "").WithMetric(m)
	web := schema.NewNamespace("web", "").
		WithTag(&schema.TagDefinition{Name: "env"}).
		WithChild(requests)
	root := schema.NewRoot().WithChild(web)

	defects := NewStructuralValidator().Validate(root)
	if defects.HasErrors() {
		t.Errorf("tag declared on an ancestor should satisfy the reference: %v", defects)
	}
}
