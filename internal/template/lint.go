package template

import (
	"fmt"
	"maps"
	"slices"

	"wz-generator/internal/diagnostic"
	"wz-generator/internal/schema"
)

// contextKeys are filled by BuildContext rather than by the records.
var contextKeys = []string{
	KeyMunicipality, KeyCaseNumber, KeyMunicipalityName, KeyMunicipalityHeader,
	KeyMunicipalityIntro, KeyMunicipalityFooter, KeyGeneratedAt,
	"data_wniosku", "data_uzupełnienia", "data_uzupelnienia",
}

// Placeholders returns the distinct placeholder keys used anywhere below n,
// in document order.
func (n *Node) Placeholders() []string {
	var (
		keys []string
		seen = map[string]bool{}
	)

	var walk func(*Node)
	walk = func(n *Node) {
		texts := []string{n.Text}
		for _, name := range slices.Sorted(maps.Keys(n.Attrs)) {
			texts = append(texts, n.Attrs[name])
		}

		for _, t := range texts {
			for _, k := range Placeholders(t) {
				if !seen[k] {
					seen[k] = true
					keys = append(keys, k)
				}
			}
		}

		for _, c := range n.Children {
			walk(c)
		}
	}

	walk(n)

	return keys
}

// Lint reports placeholders that no record or context key can fill. They
// render as "", which is rarely what the template author meant.
func Lint(root *Node, s *schema.Schema, source string) *diagnostic.Diagnostics {
	d := &diagnostic.Diagnostics{}

	known := map[string]bool{}
	for _, k := range contextKeys {
		known[k] = true
	}

	for _, f := range s.Fields() {
		known[s.RecordKey(f.Key)] = true
	}

	for _, key := range root.Placeholders() {
		if known[key] {
			continue
		}

		var hints []string
		if f, ok := s.FieldKey(key); ok {
			hints = []string{s.RecordKey(f)}
		} else {
			for _, k := range s.Suggest(key) {
				hints = append(hints, s.RecordKey(k))
			}
		}

		d.AddWarning("unknown_placeholder", fmt.Sprintf("%s: {{%s}} matches no field", source, key), key, hints...)
	}

	return d
}
