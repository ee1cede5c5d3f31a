package builder

import (
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSchema is the intermediate structure for a schema document.
// The top level of a document is itself a namespace declaration.
type yamlSchema struct {
	Version     string                    `yaml:"version"`
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description"`
	Tags        map[string]*yamlTag       `yaml:"tags"`
	Metrics     map[string]*yamlMetric    `yaml:"metrics"`
	Namespaces  map[string]*yamlNamespace `yaml:"namespaces"`
}

// namespace converts the document's top level into a namespace node.
func (s *yamlSchema) namespace() *yamlNamespace {
	return &yamlNamespace{
		Name:        s.Name,
		Description: s.Description,
		Tags:        s.Tags,
		Metrics:     s.Metrics,
		Namespaces:  s.Namespaces,
		line:        1,
		column:      1,
	}
}

// yamlNamespace is the intermediate structure for a namespace node.
type yamlNamespace struct {
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description"`
	Tags        map[string]*yamlTag       `yaml:"tags"`
	Metrics     map[string]*yamlMetric    `yaml:"metrics"`
	Namespaces  map[string]*yamlNamespace `yaml:"namespaces"`

	line   int
	column int
}

// UnmarshalYAML records the node's source position alongside the decoded
// fields.
func (n *yamlNamespace) UnmarshalYAML(value *yaml.Node) error {
	type plain yamlNamespace
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	n.line = value.Line
	n.column = value.Column
	return nil
}

// yamlTag is the intermediate structure for a tag definition.
type yamlTag struct {
	Description string   `yaml:"description"`
	Values      []string `yaml:"values"`
	Pattern     string   `yaml:"pattern"`
	Type        string   `yaml:"type"`
	Transform   []string `yaml:"transform"`

	line   int
	column int
}

func (t *yamlTag) UnmarshalYAML(value *yaml.Node) error {
	type plain yamlTag
	if err := value.Decode((*plain)(t)); err != nil {
		return err
	}
	t.line = value.Line
	t.column = value.Column
	return nil
}

// yamlMetric is the intermediate structure for a metric definition.
// AllowedTags is a pointer so an absent key (unrestricted) can be
// distinguished from an explicit empty list (no tags allowed).
type yamlMetric struct {
	Type         string    `yaml:"type"`
	Description  string    `yaml:"description"`
	Units        string    `yaml:"units"`
	AllowedTags  *[]string `yaml:"allowed_tags"`
	RequiredTags []string  `yaml:"required_tags"`
	InheritTags  string    `yaml:"inherit_tags"`

	line   int
	column int
}

func (m *yamlMetric) UnmarshalYAML(value *yaml.Node) error {
	type plain yamlMetric
	if err := value.Decode((*plain)(m)); err != nil {
		return err
	}
	m.line = value.Line
	m.column = value.Column
	return nil
}

// parseYAMLFile reads and parses a schema file into the intermediate
// structure.
func parseYAMLFile(path string) (*yamlSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseYAMLBytes(data)
}

// parseYAMLBytes parses schema YAML from memory.
func parseYAMLBytes(data []byte) (*yamlSchema, error) {
	var doc yamlSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
