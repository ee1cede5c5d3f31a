package builder

import (
	"fmt"
	"os"

	"github.com/metricgov/metricgov/pkg/schema"
	schemaErrors "github.com/metricgov/metricgov/pkg/schema/errors"
)

// Schema is a compiled schema: the immutable namespace tree plus the
// construction-time defects collected while building it. Construction
// does not fail on a structural defect; callers decide whether defects
// are fatal by calling Err or inspecting Defects.
type Schema struct {
	// Root is the synthetic root of the namespace tree.
	Root *schema.Namespace

	// Sources lists the files the schema was compiled from.
	Sources []string

	// Defects holds construction-time defects such as duplicate metric
	// definitions discovered during multi-file merge.
	Defects *schemaErrors.ErrorList
}

// Err returns the accumulated construction defects as a single aggregate
// error, or nil when the schema is defect-free.
func (s *Schema) Err() error {
	return s.Defects.ToError()
}

// Parser compiles schema files into namespace trees.
type Parser struct {
	maxFileSize int64
}

// NewParser creates a parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// WithMaxFileSize sets the maximum schema file size.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// Parse compiles the schema file at the given path.
func (p *Parser) Parse(path string) (*Schema, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &schemaErrors.Error{
			Kind:     schemaErrors.KindIO,
			Message:  fmt.Sprintf("failed to access schema file: %v", err),
			Location: schema.Location{File: path},
		}
	}
	if info.Size() > p.maxFileSize {
		return nil, &schemaErrors.Error{
			Kind:     schemaErrors.KindIO,
			Message:  fmt.Sprintf("schema file size %d exceeds maximum %d bytes", info.Size(), p.maxFileSize),
			Location: schema.Location{File: path},
		}
	}

	doc, err := parseYAMLFile(path)
	if err != nil {
		return nil, &schemaErrors.Error{
			Kind:        schemaErrors.KindSyntax,
			Message:     fmt.Sprintf("YAML parsing failed: %v", err),
			Location:    schema.Location{File: path, Line: 1, Column: 1},
			Suggestions: []string{"check YAML syntax (indentation, colons, quotes)"},
		}
	}

	return p.build(doc, path)
}

// ParseBytes compiles schema YAML from memory. The sourcePath is used
// only for error reporting.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*Schema, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &schemaErrors.Error{
			Kind:     schemaErrors.KindIO,
			Message:  fmt.Sprintf("schema size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: schema.Location{File: sourcePath},
		}
	}

	doc, err := parseYAMLBytes(data)
	if err != nil {
		return nil, &schemaErrors.Error{
			Kind:        schemaErrors.KindSyntax,
			Message:     fmt.Sprintf("YAML parsing failed: %v", err),
			Location:    schema.Location{File: sourcePath, Line: 1, Column: 1},
			Suggestions: []string{"check YAML syntax (indentation, colons, quotes)"},
		}
	}

	return p.build(doc, sourcePath)
}

// ParseMulti compiles several schema files into one tree. Trees are
// merged namespace by namespace; a metric defined in more than one file
// under the same fully-qualified name is recorded as a duplicate_metric
// defect, with the last definition winning.
func (p *Parser) ParseMulti(paths []string) (*Schema, error) {
	if len(paths) == 0 {
		return nil, &schemaErrors.Error{
			Kind:    schemaErrors.KindIO,
			Message: "no schema files provided",
		}
	}

	merged, err := p.Parse(paths[0])
	if err != nil {
		return nil, err
	}

	for _, path := range paths[1:] {
		next, err := p.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		merged.Root = mergeNamespaces(merged.Root, next.Root, "", merged.Defects)
		merged.Sources = append(merged.Sources, path)
		merged.Defects.Errors = append(merged.Defects.Errors, next.Defects.Errors...)
	}

	return merged, nil
}

func (p *Parser) build(doc *yamlSchema, sourcePath string) (*Schema, error) {
	b := newBuilder(sourcePath)
	root, err := b.buildSchema(doc)
	if err != nil {
		return nil, err
	}
	return &Schema{
		Root:    root,
		Sources: []string{sourcePath},
		Defects: schemaErrors.NewErrorList(),
	}, nil
}

// mergeNamespaces folds src into dst, returning a new node. Tags and
// child namespaces merge recursively with src winning on conflict;
// conflicting metric definitions are recorded as duplicates.
func mergeNamespaces(dst, src *schema.Namespace, prefix string, defects *schemaErrors.ErrorList) *schema.Namespace {
	merged := dst

	path := prefix
	if src.Name != schema.RootName {
		if path == "" {
			path = src.Name
		} else {
			path = path + "." + src.Name
		}
	}

	for _, tag := range src.Tags {
		merged = merged.WithTag(tag)
	}

	for name, metric := range src.Metrics {
		if _, exists := dst.Metrics[name]; exists {
			fq := name
			if path != "" {
				fq = path + "." + name
			}
			defects.Add(&schemaErrors.Error{
				Kind:      schemaErrors.KindDuplicateMetric,
				Message:   fmt.Sprintf("metric %q is defined more than once; the last definition wins", fq),
				Namespace: path,
				Metric:    fq,
				Location:  metric.Location,
			})
		}
		merged = merged.WithMetric(metric)
	}

	for name, child := range src.Children {
		if existing, ok := dst.Children[name]; ok {
			merged = merged.WithChild(mergeNamespaces(existing, child, path, defects))
		} else {
			merged = merged.WithChild(child)
		}
	}

	return merged
}
