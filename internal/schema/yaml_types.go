package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts kinds case-insensitively and with dashes, so that
// "Application-Only" and "application_only" are the same kind.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected kind name, got %v", node.Line, node.Kind)
	}

	*k = Kind(canonical(node.Value))

	return nil
}

// UnmarshalYAML accepts cases in lower case or by their Polish names.
func (c *GrammaticalCase) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected case name, got %v", node.Line, node.Kind)
	}

	switch v := canonical(node.Value); v {
	case "mianownik":
		*c = CaseNominative
	case "dopelniacz", "dopełniacz":
		*c = CaseGenitive
	default:
		*c = GrammaticalCase(v)
	}

	return nil
}

// UnmarshalYAML accepts a single key or a list of keys.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// StringOrArray is a list of strings that may be written as a scalar.
type StringOrArray []string

func canonical(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}
