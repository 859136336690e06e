package discrepancy

import (
	"slices"
	"strings"

	"wz-generator/internal/record"
	"wz-generator/internal/schema"
)

// Discrepancy is a shared field whose values differ between the records.
type Discrepancy struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Application string `json:"wniosek"`
	Analysis    string `json:"analiza"`
}

// Option configures value comparison.
type Option func(*options)

type options struct {
	foldCase bool
}

// FoldCase makes comparison case-insensitive.
func FoldCase() Option {
	return func(o *options) { o.foldCase = true }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) equal(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if o.foldCase {
		return strings.EqualFold(a, b)
	}

	return a == b
}

// Detect returns the discrepancies between the two records of pair. Keys
// present in only one record compare against "". Application-only fields
// are never compared. The result follows schema order, with keys unknown
// to the schema sorted lexically after the known ones.
func Detect(s *schema.Schema, pair record.Pair, opts ...Option) []Discrepancy {
	o := newOptions(opts)

	var out []Discrepancy

	for _, key := range sharedKeys(s, pair) {
		app, ana := pair.Application.Get(key), pair.Analysis.Get(key)
		if o.equal(app, ana) {
			continue
		}

		out = append(out, Discrepancy{
			Key:         key,
			Label:       s.Label(key),
			Application: app,
			Analysis:    ana,
		})
	}

	return out
}

// sharedKeys collects the comparable keys of both records in output order.
func sharedKeys(s *schema.Schema, pair record.Pair) []string {
	set := map[string]bool{}

	for _, r := range []record.Record{pair.Application, pair.Analysis} {
		for key := range r {
			if _, ok := s.Unprefix(key); ok || s.IsApplicationOnly(key) {
				continue
			}

			set[key] = true
		}
	}

	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, func(a, b string) int {
		ia, ib := s.Index(a), s.Index(b)

		switch {
		case ia >= 0 && ib >= 0:
			return ia - ib
		case ia >= 0:
			return -1
		case ib >= 0:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})

	return keys
}
