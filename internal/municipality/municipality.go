package municipality

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is the configuration of one municipality.
type Entry struct {
	ID        string    `yaml:"-" json:"id"`
	Name      string    `yaml:"name" json:"name"`
	Templates Templates `yaml:"templates,omitempty" json:"templates"`
	Header    string    `yaml:"header,omitempty" json:"header,omitempty"`
	Intro     string    `yaml:"intro,omitempty" json:"intro,omitempty"`
	Footer    string    `yaml:"footer,omitempty" json:"footer,omitempty"`
}

// Templates references a template file per document kind. Paths are
// relative to the template directory.
type Templates struct {
	Analysis string `yaml:"analysis,omitempty" json:"analysis,omitempty"`
	Decision string `yaml:"decision,omitempty" json:"decision,omitempty"`
}

// Path returns the template reference for a document kind name.
func (t Templates) Path(kind string) string {
	switch kind {
	case "analysis":
		return t.Analysis
	case "decision":
		return t.Decision
	default:
		return ""
	}
}

// File is the root of a municipality configuration file.
type File struct {
	Default        string           `yaml:"default,omitempty"`
	Municipalities map[string]Entry `yaml:"municipalities"`
}

// UnmarshalYAML accepts either the structured form or a bare id → entry
// mapping.
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}

	if hasKey(node, "municipalities") {
		type plain File

		return node.Decode((*plain)(f))
	}

	return node.Decode(&f.Municipalities)
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}

	return false
}
