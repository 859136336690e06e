package record

import (
	"strconv"
	"strings"

	"wz-generator/internal/form"
	"wz-generator/internal/logging"
	"wz-generator/internal/schema"
	"wz-generator/internal/title"
)

// Merger builds record pairs from submissions. It holds no per-request
// state and is safe for concurrent use.
type Merger struct {
	Schema *schema.Schema
	Logger *logging.Logger
}

// NewMerger returns a merger over s. A nil schema selects the built-in one.
func NewMerger(s *schema.Schema, logger *logging.Logger) *Merger {
	if s == nil {
		s = schema.Default()
	}

	return &Merger{Schema: s, Logger: logging.OrNop(logger)}
}

// Merge builds the application and analysis records from sub. It never
// fails: missing fields are simply absent and unknown keys are skipped.
func (m *Merger) Merge(sub form.Submission) Pair {
	s := m.Schema
	log := logging.OrNop(m.Logger)
	pair := NewPair()
	seen := map[string]bool{}

	for _, v := range sub.Values {
		if seen[v.Key] {
			continue
		}

		seen[v.Key] = true

		if m.isGroupInstance(v.Key) || v.Key == s.TitleWireKey() {
			continue
		}

		if base, ok := s.StripApplication(v.Key); ok {
			m.mergeApplication(pair, base, v.Text, log)
			continue
		}

		if base, ok := s.StripAnalysis(v.Key); ok {
			m.mergeAnalysis(pair, base, v.Text, log)
			continue
		}

		log.Debug("ignoring submitted key without side suffix", "key", v.Key)
	}

	m.mergeGroups(pair, sub)
	m.mergePetitioner(pair, sub)

	return pair
}

func (m *Merger) mergeApplication(pair Pair, base, text string, log *logging.Logger) {
	f, ok := m.Schema.Field(base)
	if !ok {
		log.Debug("ignoring unknown application field", "key", base, "suggestions", m.Schema.Suggest(base))
		return
	}

	switch {
	case f.Kind == schema.KindRepeatedGroup, f.Kind == schema.KindDerived:
		// written from the collected group
		return
	case f.Case != schema.CaseNone:
		// composed with the honorific
		return
	case f.IsApplicationOnly():
		if f.Format == schema.FormatDate {
			text = form.LocalizeDate(text)
		}

		pair.mirror(m.Schema.Prefixed(base), text)
	default:
		pair.Application[base] = text
	}
}

func (m *Merger) mergeAnalysis(pair Pair, base, text string, log *logging.Logger) {
	f, ok := m.Schema.Field(base)
	if !ok {
		log.Debug("ignoring unknown analysis field", "key", base, "suggestions", m.Schema.Suggest(base))
		return
	}

	if f.IsApplicationOnly() {
		log.Debug("discarding application-only field submitted on the analysis side", "key", base)
		return
	}

	pair.Analysis[base] = text
}

func (m *Merger) mergeGroups(pair Pair, sub form.Submission) {
	for _, g := range m.Schema.Groups() {
		seq := sub.Group(m.Schema.ApplicationKey(g.Key))
		if g.ElementFormat == schema.FormatDate {
			seq = seq.Map(form.LocalizeDate)
		}

		pair.mirror(m.Schema.Prefixed(g.Key), seq.Joined())

		for _, d := range m.Schema.Derived(g.Key) {
			switch d.Derive {
			case schema.DeriveMultiple:
				pair.mirror(m.Schema.Prefixed(d.Key), form.BoolText(seq.Multiple()))
			case schema.DeriveCount:
				pair.mirror(m.Schema.Prefixed(d.Key), strconv.Itoa(seq.Count()))
			}
		}
	}
}

func (m *Merger) mergePetitioner(pair Pair, sub form.Submission) {
	s := m.Schema

	nominative, genitive := s.NominativeKey(), s.GenitiveKey()
	if nominative == "" {
		return
	}

	honorific := strings.TrimSpace(sub.Text(s.TitleWireKey()))

	if name, ok := sub.Get(s.ApplicationKey(nominative)); ok {
		pair.mirror(s.Prefixed(nominative), compose(honorific, name, title.Nominative))
	}

	if genitive == "" {
		return
	}

	if name, ok := sub.Get(s.ApplicationKey(genitive)); ok {
		pair.mirror(s.Prefixed(genitive), compose(honorific, name, title.Genitive))
	}
}

// isGroupInstance reports whether wireKey is an application-side instance
// of a repeated group.
func (m *Merger) isGroupInstance(wireKey string) bool {
	for _, g := range m.Schema.Groups() {
		if _, ok := form.GroupIndex(wireKey, m.Schema.ApplicationKey(g.Key)); ok {
			return true
		}
	}

	return false
}

// compose joins the honorific (given in the nominative, as the selector
// submits it) in case c with a name fragment. Unknown honorifics are kept
// verbatim in both cases.
func compose(honorific, name string, c title.Case) string {
	if t, ok := title.Parse(honorific, title.Nominative); ok {
		return title.Compose(t, name, c)
	}

	name = strings.TrimSpace(name)
	if name == "" || honorific == "" {
		return name
	}

	if c == title.Genitive {
		honorific = title.ToGenitive(honorific)
	}

	return honorific + " " + name
}

func (p Pair) mirror(key, value string) {
	p.Application[key] = value
	p.Analysis[key] = value
}
