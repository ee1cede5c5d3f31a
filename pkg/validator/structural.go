package validator

import (
	"fmt"
	"strings"

	"github.com/metricgov/metricgov/pkg/schema"
	schemaErrors "github.com/metricgov/metricgov/pkg/schema/errors"
)

// StructuralValidator checks the build-time integrity of a schema tree:
// every tag name a metric references in its allowed or required sets
// must be declared somewhere visible along the metric's namespace chain,
// and every inherit_tags path must resolve to a declared metric.
// Tag visibility follows the full ancestor chain, the same rule the
// analyzer and runtime validator use, so a tag declared on a parent
// namespace satisfies a reference from a child's metric.
type StructuralValidator struct{}

// NewStructuralValidator creates a structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{}
}

// Validate walks the tree and returns every structural defect found,
// aggregated across all namespaces. It never fails eagerly; callers
// decide whether defects are fatal.
func (sv *StructuralValidator) Validate(root *schema.Namespace) *schemaErrors.ErrorList {
	defects := schemaErrors.NewErrorList()
	sv.walk(root, root, "", nil, defects)
	return defects
}

func (sv *StructuralValidator) walk(root, n *schema.Namespace, prefix string, parentTags map[string]*schema.TagDefinition, defects *schemaErrors.ErrorList) {
	visible := n.EffectiveTags(parentTags)

	path := prefix
	if n.Name != schema.RootName {
		if path == "" {
			path = n.Name
		} else {
			path = path + "." + n.Name
		}
	}

	for name, m := range n.Metrics {
		fq := name
		if path != "" {
			fq = path + "." + name
		}
		sv.checkReferences(m, fq, path, visible, defects)
		sv.checkInheritance(root, m, fq, path, defects)
	}

	for _, child := range n.Children {
		sv.walk(root, child, path, visible, defects)
	}
}

// checkReferences confirms each tag name the metric declares resolves to
// a visible tag definition.
func (sv *StructuralValidator) checkReferences(m *schema.MetricDefinition, fq, path string, visible map[string]*schema.TagDefinition, defects *schemaErrors.ErrorList) {
	report := func(tag, role string) {
		defects.Add(&schemaErrors.Error{
			Kind:      schemaErrors.KindStructuralDefect,
			Message:   fmt.Sprintf("metric %q lists %s tag %q which is not declared in namespace %q or any ancestor", fq, role, tag, path),
			Namespace: path,
			Metric:    fq,
			Tag:       tag,
			Location:  m.Location,
		})
	}

	for _, tag := range m.AllowedTags {
		if _, ok := visible[tag]; !ok {
			report(tag, "allowed")
		}
	}
	for _, tag := range m.RequiredTags {
		if _, ok := visible[tag]; !ok {
			report(tag, "required")
		}
	}
}

// checkInheritance confirms the metric's inherit_tags path resolves.
// A namespace segment that does not exist and a metric missing from an
// existing namespace are reported as distinct kinds. The runtime falls
// back to the metric's own tags when inheritance cannot resolve, so
// these are lint defects, not load failures.
func (sv *StructuralValidator) checkInheritance(root *schema.Namespace, m *schema.MetricDefinition, fq, path string, defects *schemaErrors.ErrorList) {
	if m.InheritTags == "" {
		return
	}
	if _, ok := root.FindMetric(m.InheritTags); ok {
		return
	}

	kind := schemaErrors.KindUnknownMetric
	message := fmt.Sprintf("metric %q inherits tags from %q which is not declared", fq, m.InheritTags)
	if i := strings.LastIndex(m.InheritTags, "."); i >= 0 {
		nsPath := m.InheritTags[:i]
		if _, ok := root.FindNamespace(nsPath); !ok {
			kind = schemaErrors.KindUnknownNamespace
			message = fmt.Sprintf("metric %q inherits tags from %q but namespace %q does not exist", fq, m.InheritTags, nsPath)
		}
	}

	defects.Add(&schemaErrors.Error{
		Kind:      kind,
		Message:   message,
		Namespace: path,
		Metric:    fq,
		Location:  m.Location,
	})
}
