package source

import (
	"context"
	"fmt"

	"github.com/metricgov/metricgov/pkg/config"
	"github.com/metricgov/metricgov/pkg/schema/builder"
)

// Source loads a compiled schema from somewhere. Load may be called
// repeatedly; each call returns a fresh compilation of the current
// content.
type Source interface {
	// Load compiles the schema from the origin.
	Load(ctx context.Context) (*builder.Schema, error)

	// Path returns the local filesystem path holding the schema, for
	// watching. Empty when the origin has no stable local path.
	Path() string
}

// FileSource loads a schema from a local file.
type FileSource struct {
	path   string
	parser *builder.Parser
}

// NewFileSource creates a source over a local schema file.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path:   path,
		parser: builder.NewParser(),
	}
}

func (s *FileSource) Load(ctx context.Context) (*builder.Schema, error) {
	return s.parser.Parse(s.path)
}

func (s *FileSource) Path() string {
	return s.path
}

// FromConfig constructs the source selected by the schema configuration.
func FromConfig(cfg config.SchemaConfig) (Source, error) {
	switch cfg.Mode {
	case "file":
		return NewFileSource(cfg.FilePath), nil
	case "git":
		return NewGitSource(cfg.Git)
	default:
		return nil, fmt.Errorf("unknown schema source mode %q", cfg.Mode)
	}
}
