package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"wz-generator/internal/logging"
	"wz-generator/internal/municipality"
)

// ErrInvariant reports that no template could be selected even though a
// built-in template exists for every kind. It indicates a broken build,
// never bad input.
var ErrInvariant = errors.New("template invariant violated")

//go:embed builtin/*.xml
var builtinFS embed.FS

var (
	builtinOnce  sync.Once
	builtinRoots map[Kind]*Node
	builtinErr   error
)

func builtin(kind Kind) (*Node, error) {
	builtinOnce.Do(func() {
		builtinRoots = map[Kind]*Node{}

		for _, k := range Kinds() {
			data, err := builtinFS.ReadFile(BuiltinPath(k))
			if err != nil {
				builtinErr = err
				return
			}

			root, err := Parse(data)
			if err != nil {
				builtinErr = fmt.Errorf("%s: %w", BuiltinPath(k), err)
				return
			}

			builtinRoots[k] = root
		}
	})

	if builtinErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvariant, builtinErr)
	}

	root, ok := builtinRoots[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no built-in template for kind %q", ErrInvariant, kind)
	}

	return root, nil
}

// BuiltinPath returns the embedded path of the built-in template of kind.
func BuiltinPath(kind Kind) string {
	return "builtin/" + string(kind) + ".xml"
}

// Selection is a resolved template.
type Selection struct {
	Kind Kind
	// Source is the template path, or builtin/<kind>.xml.
	Source    string
	Dedicated bool
	// Fallback explains why a dedicated template was not used.
	Fallback string
	Root     *Node
}

// Selector resolves templates for a municipality and document kind.
type Selector struct {
	Municipalities *municipality.Registry
	// Templates holds the dedicated templates; nil means built-ins only.
	Templates fs.FS
	Logger    *logging.Logger
}

// NewSelector returns a selector. A nil registry selects the built-in one.
func NewSelector(reg *municipality.Registry, templates fs.FS, logger *logging.Logger) *Selector {
	if reg == nil {
		reg = municipality.Default()
	}

	return &Selector{Municipalities: reg, Templates: templates, Logger: logging.OrNop(logger)}
}

// Resolve selects the dedicated template of the municipality for kind when
// it is registered, present and well-formed, and the built-in template
// otherwise. An error is returned only when the built-in template itself is
// unusable; it wraps ErrInvariant.
func (s *Selector) Resolve(municipalityName string, kind Kind) (Selection, error) {
	entry := s.Municipalities.Resolve(municipalityName)
	log := logging.OrNop(s.Logger).With("municipality", entry.ID, "kind", string(kind))

	path := entry.Templates.Path(string(kind))

	root, reason := s.dedicated(path)
	if root != nil {
		return Selection{Kind: kind, Source: path, Dedicated: true, Root: root}, nil
	}

	if path != "" {
		log.Warn("dedicated template unusable, using built-in", "path", path, "reason", reason)
	}

	sel, err := Builtin(kind)
	if err != nil {
		log.Error("built-in template unusable", "error", err)
		return Selection{}, err
	}

	sel.Fallback = reason

	return sel, nil
}

// Builtin returns the built-in selection for kind.
func Builtin(kind Kind) (Selection, error) {
	root, err := builtin(kind)
	if err != nil {
		return Selection{}, err
	}

	return Selection{Kind: kind, Source: BuiltinPath(kind), Root: root}, nil
}

// dedicated loads the template at path, or explains why it cannot be used.
func (s *Selector) dedicated(path string) (*Node, string) {
	switch {
	case path == "":
		return nil, "no template registered"
	case s.Templates == nil:
		return nil, "no template directory configured"
	}

	data, err := fs.ReadFile(s.Templates, path)
	if err != nil {
		return nil, err.Error()
	}

	root, err := Parse(data)
	if err != nil {
		return nil, err.Error()
	}

	return root, ""
}
