package schema

// File represents the root of a YAML field schema file.
type File struct {
	// Version of the schema format (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// ApplicationSuffix marks wire keys authored in the application record.
	ApplicationSuffix string `yaml:"application_suffix,omitempty"`

	// AnalysisSuffix marks wire keys authored in the analysis record.
	AnalysisSuffix string `yaml:"analysis_suffix,omitempty"`

	// MirrorPrefix namespaces application-only keys inside both records.
	MirrorPrefix string `yaml:"mirror_prefix,omitempty"`

	// Petitioner configures the title selector of the petitioner pair.
	Petitioner PetitionerDef `yaml:"petitioner,omitempty"`

	// Fields in declaration order.
	Fields []FieldDef `yaml:"fields"`
}

// PetitionerDef configures the single-select honorific input.
type PetitionerDef struct {
	// TitleField is the base key of the title selector.
	TitleField string `yaml:"title_field,omitempty"`
}

// FieldDef is a single field declaration.
type FieldDef struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label,omitempty"`
	Kind  Kind   `yaml:"kind,omitempty"`

	// Format applies to the field value (application side).
	Format Format `yaml:"format,omitempty"`

	// ElementFormat applies to each element of a repeated group.
	ElementFormat Format `yaml:"element_format,omitempty"`

	// Group names the repeated group a derived field is computed from.
	Group string `yaml:"group,omitempty"`

	// Derive selects what a derived field holds.
	Derive Derivation `yaml:"derive,omitempty"`

	// Case marks the petitioner fields composed with an honorific.
	Case GrammaticalCase `yaml:"case,omitempty"`

	// Aliases are older names of this key accepted when loading a case.
	Aliases StringOrArray `yaml:"aliases,omitempty"`

	Required bool `yaml:"required,omitempty"`
	LongText bool `yaml:"long_text,omitempty"`
}

// Kind classifies a field.
type Kind string

const (
	KindPlain           Kind = "plain"
	KindApplicationOnly Kind = "application_only"
	KindRepeatedGroup   Kind = "repeated_group"
	KindDerived         Kind = "derived"
)

// IsValid returns true if the kind is a recognized value.
func (k Kind) IsValid() bool {
	switch k {
	case KindPlain, KindApplicationOnly, KindRepeatedGroup, KindDerived:
		return true
	default:
		return false
	}
}

// IsApplicationOnly reports whether fields of this kind are authored only in
// the application record.
func (k Kind) IsApplicationOnly() bool {
	return k == KindApplicationOnly || k == KindRepeatedGroup || k == KindDerived
}

// Format is a value format applied while merging.
type Format string

const (
	FormatNone Format = ""
	FormatDate Format = "date"
)

// IsValid returns true if the format is a recognized value.
func (f Format) IsValid() bool {
	return f == FormatNone || f == FormatDate
}

// Derivation selects the value a derived field carries.
type Derivation string

const (
	DeriveNone     Derivation = ""
	DeriveMultiple Derivation = "multiple"
	DeriveCount    Derivation = "count"
)

// IsValid returns true if the derivation is a recognized value.
func (d Derivation) IsValid() bool {
	return d == DeriveNone || d == DeriveMultiple || d == DeriveCount
}

// GrammaticalCase marks a petitioner field.
type GrammaticalCase string

const (
	CaseNone       GrammaticalCase = ""
	CaseNominative GrammaticalCase = "nominative"
	CaseGenitive   GrammaticalCase = "genitive"
)

// IsValid returns true if the case is a recognized value.
func (c GrammaticalCase) IsValid() bool {
	return c == CaseNone || c == CaseNominative || c == CaseGenitive
}
