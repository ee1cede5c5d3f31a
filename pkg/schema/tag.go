package schema

import (
	"regexp"
	"strconv"
)

// ValueRestrictionKind identifies which form of value restriction a tag
// definition carries.
type ValueRestrictionKind string

const (
	// ValuesUnrestricted accepts any value.
	ValuesUnrestricted ValueRestrictionKind = "unrestricted"
	// ValuesEnumeration accepts only values from a finite set of literals.
	ValuesEnumeration ValueRestrictionKind = "enumeration"
	// ValuesPattern accepts values whose string form matches a regular expression.
	ValuesPattern ValueRestrictionKind = "pattern"
	// ValuesPredicate accepts values for which an arbitrary predicate returns true.
	ValuesPredicate ValueRestrictionKind = "predicate"
)

// TagValues is the tagged-variant value restriction of a tag definition:
// unrestricted, a finite enumeration, a pattern matcher, or an arbitrary
// predicate. The zero value is unrestricted.
type TagValues struct {
	kind      ValueRestrictionKind
	literals  []string
	pattern   *regexp.Regexp
	predicate func(string) bool
}

// AnyValues returns an unrestricted value set.
func AnyValues() *TagValues {
	return &TagValues{kind: ValuesUnrestricted}
}

// EnumValues returns a finite enumeration of permitted literals.
func EnumValues(literals ...string) *TagValues {
	return &TagValues{kind: ValuesEnumeration, literals: literals}
}

// PatternValues returns a pattern-matcher restriction.
func PatternValues(pattern *regexp.Regexp) *TagValues {
	return &TagValues{kind: ValuesPattern, pattern: pattern}
}

// PredicateValues returns a predicate restriction.
func PredicateValues(fn func(string) bool) *TagValues {
	return &TagValues{kind: ValuesPredicate, predicate: fn}
}

// Kind returns which variant of restriction this value set is.
func (v *TagValues) Kind() ValueRestrictionKind {
	if v == nil || v.kind == "" {
		return ValuesUnrestricted
	}
	return v.kind
}

// Literals returns the enumeration literals, or nil for other variants.
func (v *TagValues) Literals() []string {
	if v == nil {
		return nil
	}
	return v.literals
}

// Allows reports whether the restriction accepts the given value.
func (v *TagValues) Allows(value string) bool {
	switch v.Kind() {
	case ValuesEnumeration:
		for _, lit := range v.literals {
			if lit == value {
				return true
			}
		}
		return false
	case ValuesPattern:
		return v.pattern.MatchString(value)
	case ValuesPredicate:
		return v.predicate(value)
	default:
		return true
	}
}

// TagType declares how a tag's values are typed.
type TagType string

const (
	// TypeString accepts any value.
	TypeString TagType = "string"
	// TypeInteger requires the transformed value to be a whole number.
	TypeInteger TagType = "integer"
	// TypeSymbol accepts any value; it exists for schemas that want to
	// signal "identifier-like" intent and is coerced like a string.
	TypeSymbol TagType = "symbol"
)

// ParseTagType converts a string into a TagType. An empty string defaults
// to TypeString.
func ParseTagType(s string) (TagType, bool) {
	switch TagType(s) {
	case "":
		return TypeString, true
	case TypeString, TypeInteger, TypeSymbol:
		return TagType(s), true
	default:
		return "", false
	}
}

// wholeNumberPattern matches string-encoded whole numbers, with an
// optional sign.
var wholeNumberPattern = regexp.MustCompile(`^-?[0-9]+$`)

// TagDefinition describes one tag: its name, permitted values, declared
// type, ordered value transformations, and an optional custom validator.
type TagDefinition struct {
	// Name is the tag identifier, unique within the owning namespace.
	Name string

	// Description is optional human-readable documentation.
	Description string

	// Values restricts which values the tag accepts. Nil means any value
	// is accepted.
	Values *TagValues

	// Type declares how values are typed. Defaults to string.
	Type TagType

	// Transform is the ordered list of named transformation steps applied
	// to a value before any validation.
	Transform []string

	// Validate is an optional custom predicate. When present, its result
	// is authoritative: enumeration and pattern checks are bypassed.
	Validate func(string) bool

	// Location is where the tag was declared.
	Location Location
}

// AllowsValue reports whether the raw value is permitted by the tag's
// value restriction. No transformation is applied; callers that want the
// full pipeline use ValidValue.
func (t *TagDefinition) AllowsValue(value string) bool {
	return t.Values.Allows(value)
}

// TransformValue folds the tag's transformation steps over the value in
// declared order, resolving each step name in the registry. Step names
// that do not resolve are skipped.
func (t *TagDefinition) TransformValue(value string, registry *TransformerRegistry) string {
	if registry == nil || len(t.Transform) == 0 {
		return value
	}
	return registry.Apply(t.Transform, value)
}

// ValidValue transforms the value and then validates it: the declared
// type check first, then the custom validator if present, otherwise the
// value restriction. All checks see the transformed value.
func (t *TagDefinition) ValidValue(value string, registry *TransformerRegistry) bool {
	transformed := t.TransformValue(value, registry)

	if t.Type == TypeInteger && !isWholeNumber(transformed) {
		return false
	}

	if t.Validate != nil {
		return t.Validate(transformed)
	}
	return t.AllowsValue(transformed)
}

// isWholeNumber reports whether the value is a whole number in string or
// numeric form.
func isWholeNumber(value string) bool {
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return true
	}
	return wholeNumberPattern.MatchString(value)
}
