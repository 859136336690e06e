package schema

import (
	"fmt"
	"strings"

	"wz-generator/internal/match"
)

// Field is a compiled field declaration.
type Field struct {
	FieldDef

	// Position is the declaration index, used for ordering.
	Position int
}

// IsApplicationOnly reports whether the field is authored only in the
// application record.
func (f Field) IsApplicationOnly() bool {
	return f.Kind.IsApplicationOnly()
}

// Schema is a compiled, immutable field schema.
type Schema struct {
	file    File
	fields  []Field
	index   map[string]int
	aliases map[string]string
	derived map[string][]int

	nominative string
	genitive   string
}

// Compile validates f and resolves it into a Schema.
func Compile(f *File) (*Schema, error) {
	d := Validate(f)
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("invalid field schema: %w", err)
	}

	s := &Schema{
		file:    *f,
		fields:  make([]Field, len(f.Fields)),
		index:   make(map[string]int, len(f.Fields)),
		aliases: map[string]string{},
		derived: map[string][]int{},
	}

	for i, fd := range f.Fields {
		s.fields[i] = Field{FieldDef: fd, Position: i}
		s.index[fd.Key] = i

		for _, a := range fd.Aliases {
			s.aliases[a] = fd.Key
		}

		if fd.Kind == KindDerived {
			s.derived[fd.Group] = append(s.derived[fd.Group], i)
		}

		switch fd.Case {
		case CaseNominative:
			s.nominative = fd.Key
		case CaseGenitive:
			s.genitive = fd.Key
		}
	}

	return s, nil
}

// MustCompile is like Compile but panics on an invalid schema.
func MustCompile(f *File) *Schema {
	s, err := Compile(f)
	if err != nil {
		panic(err)
	}

	return s
}

// Version returns the schema version.
func (s *Schema) Version() string { return s.file.Version }

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)

	return out
}

// Keys returns the field keys in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Key
	}

	return keys
}

// Field looks up a field by key.
func (s *Schema) Field(key string) (Field, bool) {
	i, ok := s.index[key]
	if !ok {
		return Field{}, false
	}

	return s.fields[i], true
}

// Index returns the declaration position of key, or -1.
func (s *Schema) Index(key string) int {
	if i, ok := s.index[key]; ok {
		return i
	}

	return -1
}

// Known reports whether key is a declared field key.
func (s *Schema) Known(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Label returns the display label of key, or key itself when unknown.
func (s *Schema) Label(key string) string {
	if f, ok := s.Field(key); ok {
		return f.Label
	}

	return key
}

// Labels returns key → label for every field.
func (s *Schema) Labels() map[string]string {
	out := make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		out[f.Key] = f.Label
	}

	return out
}

// Kind returns the kind of key. Unknown keys are plain.
func (s *Schema) Kind(key string) Kind {
	if f, ok := s.Field(key); ok {
		return f.Kind
	}

	return KindPlain
}

// IsApplicationOnly reports whether key belongs to the application-only set.
func (s *Schema) IsApplicationOnly(key string) bool {
	return s.Kind(key).IsApplicationOnly()
}

// Groups returns the repeated-group fields in declaration order.
func (s *Schema) Groups() []Field {
	return s.filter(func(f Field) bool { return f.Kind == KindRepeatedGroup })
}

// Derived returns the fields derived from the given group.
func (s *Schema) Derived(group string) []Field {
	idx := s.derived[group]
	out := make([]Field, len(idx))

	for i, j := range idx {
		out[i] = s.fields[j]
	}

	return out
}

// Required returns the required fields in declaration order.
func (s *Schema) Required() []Field {
	return s.filter(func(f Field) bool { return f.Required })
}

// LongTextKeys returns the keys of multi-line text fields.
func (s *Schema) LongTextKeys() []string {
	var keys []string

	for _, f := range s.fields {
		if f.LongText {
			keys = append(keys, f.Key)
		}
	}

	return keys
}

// ApplicationOnlyKeys returns the application-only set in declaration order.
func (s *Schema) ApplicationOnlyKeys() []string {
	var keys []string

	for _, f := range s.fields {
		if f.IsApplicationOnly() {
			keys = append(keys, f.Key)
		}
	}

	return keys
}

// NominativeKey returns the petitioner field carrying the nominative form.
func (s *Schema) NominativeKey() string { return s.nominative }

// GenitiveKey returns the petitioner field carrying the genitive form.
func (s *Schema) GenitiveKey() string { return s.genitive }

// TitleWireKey returns the wire key of the honorific selector.
func (s *Schema) TitleWireKey() string {
	return s.ApplicationKey(s.file.Petitioner.TitleField)
}

// ApplicationKey returns the wire key of key on the application side.
func (s *Schema) ApplicationKey(key string) string {
	return key + s.file.ApplicationSuffix
}

// AnalysisKey returns the wire key of key on the analysis side.
func (s *Schema) AnalysisKey(key string) string {
	return key + s.file.AnalysisSuffix
}

// StripApplication returns the base key of an application-side wire key.
func (s *Schema) StripApplication(wireKey string) (string, bool) {
	return cutSuffix(wireKey, s.file.ApplicationSuffix)
}

// StripAnalysis returns the base key of an analysis-side wire key.
func (s *Schema) StripAnalysis(wireKey string) (string, bool) {
	return cutSuffix(wireKey, s.file.AnalysisSuffix)
}

// Prefixed returns key under the mirror prefix.
func (s *Schema) Prefixed(key string) string {
	return s.file.MirrorPrefix + key
}

// Unprefix strips the mirror prefix from a record key. It only succeeds for
// keys of the application-only set.
func (s *Schema) Unprefix(recordKey string) (string, bool) {
	key, ok := strings.CutPrefix(recordKey, s.file.MirrorPrefix)
	if !ok || !s.IsApplicationOnly(key) {
		return "", false
	}

	return key, true
}

// RecordKey returns the key under which a field is stored in a record:
// prefixed for application-only fields, the bare key otherwise.
func (s *Schema) RecordKey(key string) string {
	if s.IsApplicationOnly(key) {
		return s.Prefixed(key)
	}

	return key
}

// FieldKey resolves a record key (prefixed or bare, current or alias) to a
// declared field key.
func (s *Schema) FieldKey(recordKey string) (string, bool) {
	if key, ok := s.Unprefix(recordKey); ok {
		return key, true
	}

	if s.Known(recordKey) {
		return recordKey, true
	}

	if key, ok := s.aliases[recordKey]; ok {
		return key, true
	}

	if trimmed, ok := strings.CutPrefix(recordKey, s.file.MirrorPrefix); ok {
		if key, ok := s.aliases[trimmed]; ok {
			return key, true
		}
	}

	return "", false
}

// Suggest returns up to three known keys close to an unknown key.
func (s *Schema) Suggest(key string) []string {
	return match.Suggest(key, s.Keys(), 3)
}

func (s *Schema) filter(keep func(Field) bool) []Field {
	var out []Field

	for _, f := range s.fields {
		if keep(f) {
			out = append(out, f)
		}
	}

	return out
}

func cutSuffix(s, suffix string) (string, bool) {
	base, ok := strings.CutSuffix(s, suffix)
	if !ok || base == "" {
		return "", false
	}

	return base, true
}
