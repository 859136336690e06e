package schema

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Wire convention defaults.
const (
	DefaultApplicationSuffix = "_wniosek"
	DefaultAnalysisSuffix    = "_analiza"
	DefaultMirrorPrefix      = "wniosek_"
	DefaultTitleField        = "wnioskodawca_title"
)

//go:embed fields.yaml
var defaultFields []byte

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
)

// Default returns the built-in field schema. It is compiled once and shared;
// a Schema is immutable so concurrent readers are safe.
func Default() *Schema {
	defaultOnce.Do(func() {
		f, err := Parse(defaultFields)
		if err != nil {
			panic(fmt.Sprintf("schema: built-in fields.yaml: %v", err))
		}

		defaultSchema = MustCompile(f)
	})

	return defaultSchema
}

// Load reads, parses and compiles a schema file. An empty path yields the
// built-in schema.
func Load(path string) (*Schema, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	return Compile(f)
}

// LoadSource parses a schema file without compiling it, for diagnostics.
// An empty path yields the built-in file.
func LoadSource(path string) (*File, error) {
	if path == "" {
		return Parse(defaultFields)
	}

	return LoadFile(path)
}

// LoadFile loads and parses a YAML schema file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.ApplicationSuffix == "" {
		f.ApplicationSuffix = DefaultApplicationSuffix
	}

	if f.AnalysisSuffix == "" {
		f.AnalysisSuffix = DefaultAnalysisSuffix
	}

	if f.MirrorPrefix == "" {
		f.MirrorPrefix = DefaultMirrorPrefix
	}

	if f.Petitioner.TitleField == "" {
		f.Petitioner.TitleField = DefaultTitleField
	}

	for i := range f.Fields {
		fd := &f.Fields[i]
		if fd.Kind == "" {
			fd.Kind = KindPlain
		}

		if fd.Label == "" {
			fd.Label = fd.Key
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
