package title

import (
	"sort"
	"strings"
)

// Case is a grammatical case of a petitioner honorific.
type Case int

const (
	Nominative Case = iota
	Genitive
)

// String returns the Polish name of the case.
func (c Case) String() string {
	switch c {
	case Nominative:
		return "mianownik"
	case Genitive:
		return "dopełniacz"
	default:
		return "unknown"
	}
}

// Title is one of the enumerated petitioner honorifics.
type Title int

const (
	None Title = iota
	Pan
	Pani
	Panstwo
	Podmiot
)

type forms struct {
	nominative string
	genitive   string
}

var table = map[Title]forms{
	Pan:     {nominative: "Pan", genitive: "Pana"},
	Pani:    {nominative: "Pani", genitive: "Pani"},
	Panstwo: {nominative: "Państwo", genitive: "Państwa"},
	Podmiot: {nominative: "Podmiot", genitive: "Podmiotu"},
}

var (
	byNominative = map[string]Title{}
	byGenitive   = map[string]Title{}
	// prefix tokens per case, longest first
	tokens = map[Case][]string{}
)

func init() {
	for t, f := range table {
		byNominative[f.nominative] = t
		byGenitive[f.genitive] = t
		tokens[Nominative] = append(tokens[Nominative], f.nominative)
		tokens[Genitive] = append(tokens[Genitive], f.genitive)
	}

	for c := range tokens {
		sort.Slice(tokens[c], func(i, j int) bool {
			a, b := tokens[c][i], tokens[c][j]
			if len(a) != len(b) {
				return len(a) > len(b)
			}

			return a < b
		})
	}
}

// All returns the enumerated titles in selector order.
func All() []Title {
	return []Title{Pan, Pani, Panstwo, Podmiot}
}

// Nominative returns the nominative form, or "" for None.
func (t Title) Nominative() string {
	return table[t].nominative
}

// Genitive returns the genitive form, or "" for None.
func (t Title) Genitive() string {
	return table[t].genitive
}

// Form returns the form of t in case c.
func (t Title) Form(c Case) string {
	if c == Genitive {
		return t.Genitive()
	}

	return t.Nominative()
}

// String returns the nominative form.
func (t Title) String() string {
	return t.Nominative()
}

// Parse recognizes an exact honorific token in the given case.
func Parse(s string, c Case) (Title, bool) {
	var (
		t  Title
		ok bool
	)

	if c == Genitive {
		t, ok = byGenitive[s]
	} else {
		t, ok = byNominative[s]
	}

	return t, ok
}

// ToGenitive maps a nominative honorific to its genitive form. Values
// outside the domain are returned unchanged.
func ToGenitive(s string) string {
	if t, ok := byNominative[s]; ok {
		return t.Genitive()
	}

	return s
}

// ToNominative maps a genitive honorific to its nominative form. Values
// outside the domain are returned unchanged.
func ToNominative(s string) string {
	if t, ok := byGenitive[s]; ok {
		return t.Nominative()
	}

	return s
}

// Split extracts a leading honorific of case c from s. The honorific must be
// followed by exactly one separating space. When no known honorific prefixes
// s, the title is empty and rest is s unchanged.
func Split(s string, c Case) (prefix, rest string) {
	for _, tok := range tokens[c] {
		if strings.HasPrefix(s, tok+" ") {
			return tok, s[len(tok)+1:]
		}
	}

	return "", s
}

// Compose joins an honorific in case c with a name fragment. A blank name
// yields "" and an unknown title yields the trimmed name alone.
func Compose(t Title, name string, c Case) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	form := t.Form(c)
	if form == "" {
		return name
	}

	return form + " " + name
}
