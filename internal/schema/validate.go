package schema

import (
	"fmt"

	"wz-generator/internal/diagnostic"
)

// Validate checks a parsed schema file. It is a structural check only:
// keys are unique, enumerated attributes are recognized, derived fields
// point at a repeated group and the petitioner pair is declared at most once.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("schema_is_nil", "schema file is nil", "")
		return res
	}

	if len(f.Fields) == 0 {
		res.AddError("no_fields", "schema declares no fields", "")
		return res
	}

	seen := map[string]int{}
	kinds := map[string]Kind{}

	for i, fd := range f.Fields {
		if fd.Key == "" {
			res.AddError("empty_key", fmt.Sprintf("field #%d has no key", i+1), "")
			continue
		}

		if j, ok := seen[fd.Key]; ok {
			res.AddError("duplicate_key", fmt.Sprintf("duplicate key (first declared as field #%d)", j+1), fd.Key)
			continue
		}

		seen[fd.Key] = i
		kinds[fd.Key] = fd.Kind
	}

	aliases := map[string]string{}
	cases := map[GrammaticalCase]string{}

	for _, fd := range f.Fields {
		if fd.Key == "" {
			continue
		}

		validateField(res, fd, kinds)

		for _, a := range fd.Aliases {
			if owner, ok := aliases[a]; ok && owner != fd.Key {
				res.AddError("duplicate_alias", fmt.Sprintf("alias %q already used by %s", a, owner), fd.Key)
			}

			if _, ok := kinds[a]; ok {
				res.AddError("alias_shadows_key", fmt.Sprintf("alias %q is also a field key", a), fd.Key)
			}

			aliases[a] = fd.Key
		}

		if fd.Case != CaseNone {
			if other, ok := cases[fd.Case]; ok {
				res.AddError("duplicate_case",
					fmt.Sprintf("%s form already carried by %s", fd.Case, other), fd.Key)
			}

			cases[fd.Case] = fd.Key
		}
	}

	if _, ok := cases[CaseGenitive]; ok {
		if _, ok := cases[CaseNominative]; !ok {
			res.AddError("genitive_without_nominative", "genitive petitioner field declared without a nominative one", cases[CaseGenitive])
		}
	}

	return res
}

func validateField(res *diagnostic.Diagnostics, fd FieldDef, kinds map[string]Kind) {
	if !fd.Kind.IsValid() {
		res.AddError("invalid_kind", fmt.Sprintf("unknown kind %q", fd.Kind), fd.Key)
	}

	if !fd.Format.IsValid() {
		res.AddError("invalid_format", fmt.Sprintf("unknown format %q", fd.Format), fd.Key)
	}

	if !fd.ElementFormat.IsValid() {
		res.AddError("invalid_format", fmt.Sprintf("unknown element format %q", fd.ElementFormat), fd.Key)
	}

	if !fd.Derive.IsValid() {
		res.AddError("invalid_derive", fmt.Sprintf("unknown derivation %q", fd.Derive), fd.Key)
	}

	if !fd.Case.IsValid() {
		res.AddError("invalid_case", fmt.Sprintf("unknown grammatical case %q", fd.Case), fd.Key)
	}

	if fd.ElementFormat != FormatNone && fd.Kind != KindRepeatedGroup {
		res.AddWarning("element_format_ignored", "element_format only applies to repeated groups", fd.Key)
	}

	if fd.Case != CaseNone && fd.Kind != KindApplicationOnly {
		res.AddError("case_on_shared_field", "petitioner fields must be application_only", fd.Key)
	}

	switch fd.Kind {
	case KindDerived:
		if fd.Group == "" {
			res.AddError("derived_without_group", "derived field names no group", fd.Key)
		} else if kinds[fd.Group] != KindRepeatedGroup {
			res.AddError("derived_group_unknown", fmt.Sprintf("group %q is not a repeated_group", fd.Group), fd.Key)
		}

		if fd.Derive == DeriveNone {
			res.AddError("derived_without_derive", "derived field names no derivation", fd.Key)
		}

		if fd.Required {
			res.AddWarning("required_derived", "derived fields are computed and cannot be required", fd.Key)
		}
	default:
		if fd.Group != "" || fd.Derive != DeriveNone {
			res.AddWarning("derive_ignored", "group/derive only apply to derived fields", fd.Key)
		}
	}
}
