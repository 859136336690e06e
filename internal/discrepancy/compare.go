package discrepancy

import (
	"wz-generator/internal/record"
	"wz-generator/internal/schema"
)

// Row is one line of the side-by-side comparison table.
type Row struct {
	Key             string `json:"key"`
	Label           string `json:"label"`
	Application     string `json:"wniosek"`
	Analysis        string `json:"analiza"`
	Match           bool   `json:"match"`
	ApplicationOnly bool   `json:"application_only"`
	LongText        bool   `json:"long_text"`
}

// Compare returns a row for every schema field in schema order. Derived
// fields are skipped. Application-only fields show the mirrored value on
// both sides and always match.
func Compare(s *schema.Schema, pair record.Pair, opts ...Option) []Row {
	o := newOptions(opts)
	rows := make([]Row, 0, len(s.Keys()))

	for _, f := range s.Fields() {
		if f.Kind == schema.KindDerived {
			continue
		}

		row := Row{
			Key:             f.Key,
			Label:           f.Label,
			ApplicationOnly: f.IsApplicationOnly(),
			LongText:        f.LongText,
		}

		if row.ApplicationOnly {
			row.Application = pair.Application.Get(s.Prefixed(f.Key))
			row.Analysis = pair.Analysis.Get(s.Prefixed(f.Key))
		} else {
			row.Application = pair.Application.Get(f.Key)
			row.Analysis = pair.Analysis.Get(f.Key)
		}

		row.Match = row.ApplicationOnly || o.equal(row.Application, row.Analysis)
		rows = append(rows, row)
	}

	return rows
}

// Mismatches counts the rows that do not match.
func Mismatches(rows []Row) int {
	n := 0

	for _, r := range rows {
		if !r.Match {
			n++
		}
	}

	return n
}
