package form

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Value is a single submitted (key, text) pair.
type Value struct {
	Key  string `json:"key"`
	Text string `json:"value"`
}

// Submission is an ordered set of submitted values. Order is submission
// order; a key may repeat, in which case Get returns the first occurrence.
type Submission struct {
	Values []Value `json:"values"`
}

// NewSubmission builds a submission from pairs in the given order.
func NewSubmission(values ...Value) Submission {
	return Submission{Values: values}
}

// FromMap builds a submission from a plain map. Keys are sorted so that the
// result is deterministic; group instances sort by their numeric index.
func FromMap(m map[string]string) Submission {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return lessKey(keys[i], keys[j])
	})

	values := make([]Value, 0, len(keys))
	for _, k := range keys {
		values = append(values, Value{Key: k, Text: m[k]})
	}

	return Submission{Values: values}
}

// FromURLValues adapts a decoded HTTP form. url.Values loses submission
// order, so keys are ordered as in FromMap; every value of a repeated key is
// kept in the order the form carried it.
func FromURLValues(v url.Values) Submission {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return lessKey(keys[i], keys[j])
	})

	var values []Value

	for _, k := range keys {
		for _, text := range v[k] {
			values = append(values, Value{Key: k, Text: text})
		}
	}

	return Submission{Values: values}
}

// Add appends a value.
func (s *Submission) Add(key, text string) {
	s.Values = append(s.Values, Value{Key: key, Text: text})
}

// Get returns the first value submitted under key.
func (s Submission) Get(key string) (string, bool) {
	for _, v := range s.Values {
		if v.Key == key {
			return v.Text, true
		}
	}

	return "", false
}

// Text returns the first value under key, or "" when absent.
func (s Submission) Text(key string) string {
	text, _ := s.Get(key)
	return text
}

// Has reports whether key was submitted at all.
func (s Submission) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of submitted values.
func (s Submission) Len() int {
	return len(s.Values)
}

// Map returns the submission as a map, first occurrence winning.
func (s Submission) Map() map[string]string {
	out := make(map[string]string, len(s.Values))
	for _, v := range s.Values {
		if _, ok := out[v.Key]; !ok {
			out[v.Key] = v.Text
		}
	}

	return out
}

// Group collects the instances of a repeated group named base: the
// unsuffixed key and every key of the form base_N with N a decimal index.
// Values keep submission order and blank values are dropped.
func (s Submission) Group(base string) Sequence {
	var seq Sequence

	for _, v := range s.Values {
		if _, ok := GroupIndex(v.Key, base); !ok {
			continue
		}

		text := strings.TrimSpace(v.Text)
		if text == "" {
			continue
		}

		seq = append(seq, text)
	}

	return seq
}

// GroupIndex reports whether key is an instance of the group base and
// returns its index: 0 for the unsuffixed instance, N for base_N.
func GroupIndex(key, base string) (int, bool) {
	if key == base {
		return 0, true
	}

	suffix, ok := strings.CutPrefix(key, base+"_")
	if !ok || suffix == "" {
		return 0, false
	}

	n := 0

	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, false
		}

		n = n*10 + int(r-'0')
	}

	return n, true
}

// InstanceKey returns the wire key of instance i of group base.
func InstanceKey(base string, i int) string {
	if i == 0 {
		return base
	}

	return base + "_" + strconv.Itoa(i)
}

// lessKey orders keys by (group base, index) so that instances of the same
// group sort numerically (dzialki_wniosek_2 before dzialki_wniosek_10).
func lessKey(a, b string) bool {
	ab, ai := splitIndex(a)
	bb, bi := splitIndex(b)

	if ab != bb {
		return ab < bb
	}

	return ai < bi
}

func splitIndex(key string) (string, int) {
	i := strings.LastIndexByte(key, '_')
	if i < 0 {
		return key, 0
	}

	if n, ok := GroupIndex(key, key[:i]); ok && n > 0 {
		return key[:i], n
	}

	return key, 0
}
