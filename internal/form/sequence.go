package form

import "strings"

// Separator joins the elements of a repeated group into a single value.
const Separator = ", "

// Sequence is the ordered, non-empty values of a repeated field group.
type Sequence []string

// Joined returns the elements joined with ", " in collection order.
func (s Sequence) Joined() string {
	return strings.Join(s, Separator)
}

// Multiple reports whether the group has more than one element.
func (s Sequence) Multiple() bool {
	return len(s) > 1
}

// Count returns the number of elements.
func (s Sequence) Count() int {
	return len(s)
}

// Map returns a new sequence with fn applied to every element.
func (s Sequence) Map(fn func(string) string) Sequence {
	if s == nil {
		return nil
	}

	out := make(Sequence, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}

	return out
}

// SplitJoined reverses Joined. Blank elements are dropped.
func SplitJoined(joined string) Sequence {
	var seq Sequence

	for _, part := range strings.Split(joined, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			seq = append(seq, part)
		}
	}

	return seq
}

// BoolText renders a flag the way records store it.
func BoolText(b bool) string {
	if b {
		return "true"
	}

	return "false"
}
