package schema

import (
	"regexp"
	"strings"
	"testing"
)

func TestTagValuesVariants(t *testing.T) {
	enum := EnumValues("GET", "POST")
	if !enum.Allows("GET") {
		t.Error("enumeration should allow a declared literal")
	}
	if enum.Allows("DELETE") {
		t.Error("enumeration should reject an undeclared literal")
	}
	if enum.Kind() != ValuesEnumeration {
		t.Errorf("Kind() = %q, want %q", enum.Kind(), ValuesEnumeration)
	}

	pattern := PatternValues(regexp.MustCompile(`^v[0-9]+$`))
	if !pattern.Allows("v12") {
		t.Error("pattern should allow a matching value")
	}
	if pattern.Allows("release-12") {
		t.Error("pattern should reject a non-matching value")
	}

	pred := PredicateValues(func(s string) bool { return len(s) <= 3 })
	if !pred.Allows("abc") || pred.Allows("abcd") {
		t.Error("predicate restriction not applied")
	}

	var zero *TagValues
	if !zero.Allows("anything") {
		t.Error("nil value set should be unrestricted")
	}
	if zero.Kind() != ValuesUnrestricted {
		t.Errorf("nil Kind() = %q, want unrestricted", zero.Kind())
	}
}

func TestTagDefinitionIntegerType(t *testing.T) {
	tag := &TagDefinition{Name: "shard", Type: TypeInteger, Values: AnyValues()}
	registry := NewTransformerRegistry()

	if !tag.ValidValue("42", registry) {
		t.Error("integer tag should accept \"42\"")
	}
	if !tag.ValidValue("-7", registry) {
		t.Error("integer tag should accept a negative whole number")
	}
	if tag.ValidValue("4.2", registry) {
		t.Error("integer tag should reject a fractional value")
	}
	if tag.ValidValue("abc", registry) {
		t.Error("integer tag should reject a non-numeric value")
	}
}

func TestTagDefinitionTransformOrder(t *testing.T) {
	tag := &TagDefinition{
		Name:      "region",
		Values:    EnumValues("us_east_1"),
		Transform: []string{"trim", "downcase", "underscore"},
	}
	registry := NewTransformerRegistry()

	if got := tag.TransformValue("  US-East.1 ", registry); got != "us_east_1" {
		t.Errorf("TransformValue = %q, want %q", got, "us_east_1")
	}
	if !tag.ValidValue("  US-East.1 ", registry) {
		t.Error("enumeration should validate against the transformed value")
	}
	if tag.ValidValue("eu-west-1", registry) {
		t.Error("transformed value outside the enumeration should be rejected")
	}
}

func TestTagDefinitionUnknownTransformSkipped(t *testing.T) {
	tag := &TagDefinition{
		Name:      "env",
		Values:    EnumValues("prod"),
		Transform: []string{"nonexistent", "downcase"},
	}
	registry := NewTransformerRegistry()

	if !tag.ValidValue("PROD", registry) {
		t.Error("unknown transform step should be skipped, not fail the value")
	}
}

func TestTagDefinitionCustomValidatorAuthoritative(t *testing.T) {
	// The custom validator wins even when the enumeration disagrees in
	// both directions.
	tag := &TagDefinition{
		Name:     "tier",
		Values:   EnumValues("gold"),
		Validate: func(s string) bool { return strings.HasPrefix(s, "t") },
	}
	registry := NewTransformerRegistry()

	if tag.ValidValue("gold", registry) {
		t.Error("custom validator should override an enumeration match")
	}
	if !tag.ValidValue("t1", registry) {
		t.Error("custom validator acceptance should win over enumeration rejection")
	}
}

func TestParseTagType(t *testing.T) {
	if got, ok := ParseTagType(""); !ok || got != TypeString {
		t.Errorf("ParseTagType(\"\") = %q, %v, want string default", got, ok)
	}
	if _, ok := ParseTagType("float"); ok {
		t.Error("ParseTagType(\"float\") should fail")
	}
}
