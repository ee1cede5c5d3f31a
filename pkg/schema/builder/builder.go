package builder

import (
	"fmt"
	"regexp"

	"github.com/metricgov/metricgov/pkg/schema"
	schemaErrors "github.com/metricgov/metricgov/pkg/schema/errors"
)

// builder constructs namespace tree nodes from intermediate YAML
// structures. It accumulates structural errors so a whole document is
// checked in one pass.
type builder struct {
	sourcePath string
	errors     *schemaErrors.ErrorList
}

func newBuilder(sourcePath string) *builder {
	return &builder{
		sourcePath: sourcePath,
		errors:     schemaErrors.NewErrorList(),
	}
}

// buildSchema transforms a parsed document into a namespace tree rooted
// at a synthetic root node.
func (b *builder) buildSchema(doc *yamlSchema) (*schema.Namespace, error) {
	if doc.Name == "" {
		b.errors.AddError(schemaErrors.KindStructuralDefect,
			"schema document is missing required field 'name'",
			schema.Location{File: b.sourcePath, Line: 1, Column: 1})
		return nil, b.errors
	}

	top := b.buildNamespace(doc.Name, doc.namespace(), doc.Name)
	root := schema.NewRoot().WithChild(top)

	if b.errors.HasErrors() {
		return nil, b.errors
	}
	return root, nil
}

// buildNamespace builds one namespace node and its subtree. fqPath is
// the dotted path from the (excluded) root, used in error messages.
func (b *builder) buildNamespace(name string, yn *yamlNamespace, fqPath string) *schema.Namespace {
	node := schema.NewNamespace(name, yn.Description)
	node.Location = b.location(yn.line, yn.column)

	for tagName, yt := range yn.Tags {
		tag := b.buildTag(tagName, yt, fqPath)
		if tag != nil {
			node = node.WithTag(tag)
		}
	}

	for metricName, ym := range yn.Metrics {
		metric := b.buildMetric(metricName, ym, fqPath)
		if metric != nil {
			node = node.WithMetric(metric)
		}
	}

	for childName, yc := range yn.Namespaces {
		child := b.buildNamespace(childName, yc, fqPath+"."+childName)
		node = node.WithChild(child)
	}

	return node
}

// buildTag builds a tag definition, resolving the value shorthand:
// a values list is an enumeration, a pattern string is a regex matcher,
// and neither leaves the tag unrestricted.
func (b *builder) buildTag(name string, yt *yamlTag, fqPath string) *schema.TagDefinition {
	loc := b.location(yt.line, yt.column)

	if len(yt.Values) > 0 && yt.Pattern != "" {
		b.errors.AddError(schemaErrors.KindStructuralDefect,
			fmt.Sprintf("tag %q in namespace %q declares both 'values' and 'pattern'; declare exactly one", name, fqPath),
			loc)
		return nil
	}

	values := schema.AnyValues()
	switch {
	case len(yt.Values) > 0:
		values = schema.EnumValues(yt.Values...)
	case yt.Pattern != "":
		re, err := regexp.Compile(yt.Pattern)
		if err != nil {
			b.errors.AddError(schemaErrors.KindStructuralDefect,
				fmt.Sprintf("tag %q in namespace %q has invalid pattern %q: %v", name, fqPath, yt.Pattern, err),
				loc)
			return nil
		}
		values = schema.PatternValues(re)
	}

	tagType, ok := schema.ParseTagType(yt.Type)
	if !ok {
		b.errors.AddError(schemaErrors.KindStructuralDefect,
			fmt.Sprintf("tag %q in namespace %q has unknown type %q (valid: string, integer, symbol)", name, fqPath, yt.Type),
			loc)
		return nil
	}

	return &schema.TagDefinition{
		Name:        name,
		Description: yt.Description,
		Values:      values,
		Type:        tagType,
		Transform:   yt.Transform,
		Location:    loc,
	}
}

// buildMetric builds a metric definition, resolving the allowed-tags
// tri-state: an absent key means unrestricted, an explicit empty list
// means no tags allowed.
func (b *builder) buildMetric(name string, ym *yamlMetric, fqPath string) *schema.MetricDefinition {
	loc := b.location(ym.line, ym.column)

	if ym.Type == "" {
		b.errors.AddError(schemaErrors.KindStructuralDefect,
			fmt.Sprintf("metric %q in namespace %q is missing required field 'type'", name, fqPath),
			loc)
		return nil
	}

	kind, err := schema.ParseKind(ym.Type)
	if err != nil {
		b.errors.Add(&schemaErrors.Error{
			Kind:        schemaErrors.KindStructuralDefect,
			Message:     fmt.Sprintf("metric %q in namespace %q has unknown type %q", name, fqPath, ym.Type),
			Namespace:   fqPath,
			Metric:      fqPath + "." + name,
			Location:    loc,
			Suggestions: schemaErrors.SuggestMetricNames(ym.Type, schema.KindNames()),
		})
		return nil
	}

	metric := &schema.MetricDefinition{
		Name:         name,
		Kind:         kind,
		Description:  ym.Description,
		Units:        ym.Units,
		RequiredTags: ym.RequiredTags,
		InheritTags:  ym.InheritTags,
		Location:     loc,
	}

	switch {
	case ym.AllowedTags == nil:
		metric.Restriction = schema.TagsUnrestricted
	case len(*ym.AllowedTags) == 0:
		metric.Restriction = schema.TagsNoneAllowed
	default:
		metric.Restriction = schema.TagsRestricted
		metric.AllowedTags = *ym.AllowedTags
	}

	return metric
}

func (b *builder) location(line, column int) schema.Location {
	return schema.Location{File: b.sourcePath, Line: line, Column: column}
}
