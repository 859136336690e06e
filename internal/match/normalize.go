package match

import (
	"strings"
	"unicode"
)

var diacritics = map[rune]rune{
	'ą': 'a', 'ć': 'c', 'ę': 'e', 'ł': 'l', 'ń': 'n',
	'ó': 'o', 'ś': 's', 'ź': 'z', 'ż': 'z',
}

// NormalizeKey normalizes a field key or identifier for fuzzy matching.
// The normalization pipeline:
// 1. Case-fold to lower.
// 2. Fold Polish diacritics to their ASCII base letter.
// 3. Strip separators (_, -, ., spaces).
func NormalizeKey(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if isSeparator(r) {
			continue
		}

		if base, ok := diacritics[r]; ok {
			r = base
		}

		b.WriteRune(r)
	}

	return b.String()
}

// TokenizeKey splits a key into normalized lowercase tokens on separators.
func TokenizeKey(s string) []string {
	fields := strings.FieldsFunc(s, isSeparator)
	for i, f := range fields {
		fields[i] = NormalizeKey(f)
	}

	return fields
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
