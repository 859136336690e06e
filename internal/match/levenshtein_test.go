package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"a", "a", 0},
		{"dzialki", "dzialki", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Runes, not bytes
		{"obręb", "obreb", 1},
		{"łąka", "laka", 2},

		// Field keys
		{"dzialka", "dzialki", 1},
		{"uzasadnienie", "uzasadnienia", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestLevenshteinNormalized(t *testing.T) {
	assert.InDelta(t, 1.0, LevenshteinNormalized("", ""), 1e-9)
	assert.InDelta(t, 1.0, LevenshteinNormalized("gaz", "gaz"), 1e-9)
	assert.InDelta(t, 0.0, LevenshteinNormalized("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.8, LevenshteinNormalized("obręb", "obreb"), 1e-9)
}

func TestNormalizedScore(t *testing.T) {
	assert.InDelta(t, 1.0, NormalizedScore("Obręb", "obreb"), 1e-9)
	assert.InDelta(t, 1.0, NormalizedScore("data-wniosku", "data_wniosku"), 1e-9)
}
