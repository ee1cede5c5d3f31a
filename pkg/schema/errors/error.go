package errors

import (
	"fmt"
	"strings"

	"github.com/metricgov/metricgov/pkg/schema"
)

// Kind categorizes a schema or validation failure.
type Kind string

const (
	// KindUnknownMetric means an emitted metric name is not declared in the schema.
	KindUnknownMetric Kind = "unknown_metric"
	// KindInvalidMetricType means the call-site operation does not match the declared kind.
	KindInvalidMetricType Kind = "invalid_metric_type"
	// KindMissingRequiredTag means a required tag was absent from an emission.
	KindMissingRequiredTag Kind = "missing_required_tag"
	// KindInvalidTag means an emission carried a tag not allowed on the metric.
	KindInvalidTag Kind = "invalid_tag"
	// KindInvalidTagValue means a tag value failed type, enumeration, pattern, or custom validation.
	KindInvalidTagValue Kind = "invalid_tag_value"
	// KindStructuralDefect means the schema references a tag that is not declared anywhere visible.
	KindStructuralDefect Kind = "structural_defect"
	// KindDuplicateMetric means two definitions share a fully-qualified metric name.
	KindDuplicateMetric Kind = "duplicate_metric"
	// KindUnknownNamespace means a dotted path referenced a namespace that does not exist.
	KindUnknownNamespace Kind = "unknown_namespace"
	// KindSyntax means the schema document could not be parsed.
	KindSyntax Kind = "syntax"
	// KindIO means the schema source could not be read.
	KindIO Kind = "io"
)

// Error is a rich schema or validation error with location, offending
// element context, and optional near-match suggestions.
type Error struct {
	Kind        Kind            // Category of failure
	Message     string          // Human-readable message
	Namespace   string          // Dotted namespace path, when known
	Metric      string          // Fully-qualified metric name, when known
	Tag         string          // Offending tag name, when applicable
	Location    schema.Location // Source location, when known
	Suggestions []string        // Suggested near-matches or fixes
}

// Error implements the error interface. It renders the kind, message,
// location, and suggestions in a multi-line diagnostic format.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))
	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location.String()))
	}
	if len(e.Suggestions) > 0 {
		sb.WriteString(fmt.Sprintf("\n  = did you mean: %s?", strings.Join(e.Suggestions, ", ")))
	}
	return sb.String()
}

// ErrorList accumulates errors so callers can inspect every defect found
// in a pass instead of stopping at the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*Error, 0)}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and appends an error with the given kind and message.
func (el *ErrorList) AddError(kind Kind, message string, location schema.Location) {
	el.Add(&Error{Kind: kind, Message: message, Location: location})
}

// HasErrors returns true if the list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// HasKind returns true if the list contains at least one error of the kind.
func (el *ErrorList) HasKind(kind Kind) bool {
	for _, err := range el.Errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}

// ByKind returns all errors of the given kind.
func (el *ErrorList) ByKind(kind Kind) []*Error {
	var out []*Error
	for _, err := range el.Errors {
		if err.Kind == kind {
			out = append(out, err)
		}
	}
	return out
}

// Error implements the error interface, rendering every accumulated error.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d schema error(s):\n", el.Count()))
	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ToError returns nil when the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}
