package record

import (
	"maps"
	"slices"
)

// Record maps a record key to its value. Application-only fields are stored
// under the mirror prefix.
type Record map[string]string

// Get returns the value of key, or "" when absent.
func (r Record) Get(key string) string {
	return r[key]
}

// Has reports whether key is present, even with an empty value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Clone returns a copy of r. A nil record clones to an empty one.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	maps.Copy(out, r)

	return out
}

// Keys returns the keys of r sorted lexically.
func (r Record) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

// Pair is the application record and the analysis record of one case.
type Pair struct {
	Application Record `json:"wniosek"`
	Analysis    Record `json:"analiza"`
}

// NewPair returns a pair of empty records.
func NewPair() Pair {
	return Pair{Application: Record{}, Analysis: Record{}}
}

// Clone deep-copies both records.
func (p Pair) Clone() Pair {
	return Pair{Application: p.Application.Clone(), Analysis: p.Analysis.Clone()}
}

// Context returns the values visible to a template: the application record
// overlaid with the analysis record.
func (p Pair) Context() map[string]string {
	ctx := make(map[string]string, len(p.Application)+len(p.Analysis))
	maps.Copy(ctx, p.Application)
	maps.Copy(ctx, p.Analysis)

	return ctx
}
