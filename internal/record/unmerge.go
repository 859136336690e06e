package record

import (
	"wz-generator/internal/form"
	"wz-generator/internal/schema"
	"wz-generator/internal/title"
)

// Unmerge projects a stored record pair back onto form inputs, in schema
// order. Petitioner values are split into the honorific selector and the
// name fragments, joined groups into instances, and localized dates are
// converted back to ISO.
func Unmerge(s *schema.Schema, pair Pair) form.Submission {
	var (
		sub       form.Submission
		honorific string
	)

	app, ana := pair.Application, pair.Analysis

	for _, f := range s.Fields() {
		if !f.IsApplicationOnly() {
			if v, ok := app[f.Key]; ok {
				sub.Add(s.ApplicationKey(f.Key), v)
			}

			if v, ok := ana[f.Key]; ok {
				sub.Add(s.AnalysisKey(f.Key), v)
			}

			continue
		}

		v, ok := app[s.Prefixed(f.Key)]
		if !ok {
			continue
		}

		switch {
		case f.Kind == schema.KindDerived:
			continue
		case f.Kind == schema.KindRepeatedGroup:
			seq := form.SplitJoined(v)
			if f.ElementFormat == schema.FormatDate {
				seq = seq.Map(form.ISODate)
			}

			for i, elem := range seq {
				sub.Add(form.InstanceKey(s.ApplicationKey(f.Key), i), elem)
			}
		case f.Case == schema.CaseNominative:
			tok, rest := title.Split(v, title.Nominative)
			if tok != "" {
				honorific = tok
			}

			sub.Add(s.ApplicationKey(f.Key), rest)
		case f.Case == schema.CaseGenitive:
			tok, rest := title.Split(v, title.Genitive)
			if tok != "" && honorific == "" {
				honorific = title.ToNominative(tok)
			}

			sub.Add(s.ApplicationKey(f.Key), rest)
		case f.Format == schema.FormatDate:
			sub.Add(s.ApplicationKey(f.Key), form.ISODate(v))
		default:
			sub.Add(s.ApplicationKey(f.Key), v)
		}
	}

	if honorific != "" {
		sub.Add(s.TitleWireKey(), honorific)
	}

	return sub
}

// Split returns the honorific and the name fragments of a stored petitioner.
// It is the inverse of the composition done by Merge.
func Split(s *schema.Schema, r Record) (honorific title.Title, nominative, genitive string) {
	nomTok, nominative := title.Split(r.Get(s.Prefixed(s.NominativeKey())), title.Nominative)
	genTok, genitive := title.Split(r.Get(s.Prefixed(s.GenitiveKey())), title.Genitive)

	if t, ok := title.Parse(nomTok, title.Nominative); ok {
		return t, nominative, genitive
	}

	t, _ := title.Parse(genTok, title.Genitive)

	return t, nominative, genitive
}
