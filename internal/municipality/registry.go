package municipality

import (
	_ "embed"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"wz-generator/internal/diagnostic"
)

//go:embed municipalities.yaml
var defaultConfig []byte

// Registry is an immutable set of municipality entries.
type Registry struct {
	entries map[string]Entry
	// names maps normalised display names to ids.
	names map[string]string
	def   string
}

// Default returns the built-in registry.
func Default() *Registry {
	r, err := Parse(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("municipality: built-in configuration: %v", err))
	}

	return r
}

// Load reads a configuration file. An empty path yields the built-in
// registry.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read municipality file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML (or JSON) configuration data.
func Parse(data []byte) (*Registry, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse municipality YAML: %w", err)
	}

	return New(f)
}

// New builds a registry from a parsed file. Ids are normalised; when no
// default is named the lexically first id is used.
func New(f File) (*Registry, error) {
	if len(f.Municipalities) == 0 {
		return nil, fmt.Errorf("municipality configuration has no entries")
	}

	r := &Registry{
		entries: make(map[string]Entry, len(f.Municipalities)),
		names:   make(map[string]string, len(f.Municipalities)),
	}

	for id, e := range f.Municipalities {
		key := NormalizeID(id)
		if _, dup := r.entries[key]; dup {
			return nil, fmt.Errorf("municipality %q declared twice", key)
		}

		e.ID = key
		if e.Name == "" {
			e.Name = id
		}

		r.entries[key] = e
		r.names[NormalizeID(e.Name)] = key
	}

	r.def = NormalizeID(f.Default)
	if r.def == "" {
		r.def = slices.Sorted(maps.Keys(r.entries))[0]
	}

	if _, ok := r.entries[r.def]; !ok {
		return nil, fmt.Errorf("default municipality %q is not declared", f.Default)
	}

	return r, nil
}

// NormalizeID turns a display name or id into a registry key:
// "Gmina Konopnica" → "konopnica", "Nowa Wieś" → "nowa_wieś".
func NormalizeID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "gmina ")

	return strings.Join(strings.Fields(s), "_")
}

// Lookup finds an entry by id or display name, both compared after
// NormalizeID. An id wins over another entry's display name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	key := NormalizeID(name)
	if e, ok := r.entries[key]; ok {
		return e, true
	}

	e, ok := r.entries[r.names[key]]

	return e, ok
}

// Resolve is Lookup falling back to the default entry.
func (r *Registry) Resolve(name string) Entry {
	if e, ok := r.Lookup(name); ok {
		return e
	}

	return r.Default()
}

// Default returns the fallback entry.
func (r *Registry) Default() Entry {
	return r.entries[r.def]
}

// Entries returns all entries sorted by display name.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}

	slices.SortFunc(out, func(a, b Entry) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	return out
}

// Names returns the display names sorted.
func (r *Registry) Names() []string {
	entries := r.Entries()

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	return names
}

// Check reports template references that cannot be read from templates.
// Missing dedicated templates are warnings: rendering falls back to the
// built-in template.
func (r *Registry) Check(templates fs.FS) *diagnostic.Diagnostics {
	d := &diagnostic.Diagnostics{}

	for _, e := range r.Entries() {
		for _, kind := range []string{"analysis", "decision"} {
			path := e.Templates.Path(kind)
			if path == "" {
				d.AddInfo("no_template", fmt.Sprintf("no %s template, the built-in one is used", kind), e.ID)
				continue
			}

			if templates == nil {
				d.AddWarning("template_missing", fmt.Sprintf("%s template %s: no template directory configured", kind, path), e.ID)
				continue
			}

			if _, err := fs.Stat(templates, path); err != nil {
				d.AddWarning("template_missing", fmt.Sprintf("%s template %s: %v", kind, path, err), e.ID)
			}
		}
	}

	return d
}
