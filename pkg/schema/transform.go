package schema

import "strings"

// TransformFunc is a single named value transformation applied to a raw
// tag value before validation.
type TransformFunc func(string) string

// TransformerRegistry maps transformation step names to their functions.
// Tag definitions reference steps by name; a name that does not resolve
// in the registry is silently skipped.
type TransformerRegistry struct {
	steps map[string]TransformFunc
}

// NewTransformerRegistry creates a registry preloaded with the built-in
// transformation steps:
//
//   - downcase:   lower-case the value
//   - upcase:     upper-case the value
//   - underscore: replace dots, dashes, and spaces with underscores
//   - trim:       strip leading and trailing whitespace
func NewTransformerRegistry() *TransformerRegistry {
	r := &TransformerRegistry{steps: make(map[string]TransformFunc)}
	r.Register("downcase", strings.ToLower)
	r.Register("upcase", strings.ToUpper)
	r.Register("underscore", normalizeSeparators)
	r.Register("trim", strings.TrimSpace)
	return r
}

// Register adds or replaces a named transformation step.
func (r *TransformerRegistry) Register(name string, fn TransformFunc) {
	r.steps[name] = fn
}

// Lookup returns the transformation step with the given name.
func (r *TransformerRegistry) Lookup(name string) (TransformFunc, bool) {
	fn, ok := r.steps[name]
	return fn, ok
}

// Apply folds the named steps over the value in declared order.
// Unresolvable step names are no-ops.
func (r *TransformerRegistry) Apply(steps []string, value string) string {
	for _, name := range steps {
		if fn, ok := r.steps[name]; ok {
			value = fn(value)
		}
	}
	return value
}

// normalizeSeparators replaces common separator characters with
// underscores so values like "us-east.1" become "us_east_1".
func normalizeSeparators(s string) string {
	replacer := strings.NewReplacer("-", "_", ".", "_", " ", "_")
	return replacer.Replace(s)
}
