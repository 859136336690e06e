package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverseMappings(t *testing.T) {
	for _, tt := range All() {
		t.Run(tt.Nominative(), func(t *testing.T) {
			assert.Equal(t, tt.Nominative(), ToNominative(ToGenitive(tt.Nominative())))
			assert.Equal(t, tt.Genitive(), ToGenitive(ToNominative(tt.Genitive())))
		})
	}
}

func TestForwardMapping(t *testing.T) {
	tests := map[string]string{
		"Pan":     "Pana",
		"Pani":    "Pani",
		"Państwo": "Państwa",
		"Podmiot": "Podmiotu",
	}

	for nom, gen := range tests {
		assert.Equal(t, gen, ToGenitive(nom))
		assert.Equal(t, nom, ToNominative(gen))
	}
}

func TestUnknownTokensAreIdentity(t *testing.T) {
	for _, s := range []string{"", "Dr", "pan", "Panowie", "Pan "} {
		assert.Equal(t, s, ToGenitive(s))
		assert.Equal(t, s, ToNominative(s))
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		c         Case
		wantTitle string
		wantRest  string
	}{
		{"nominative pan", "Pan Jan Kowalski", Nominative, "Pan", "Jan Kowalski"},
		{"nominative pani", "Pani Anna Nowak", Nominative, "Pani", "Anna Nowak"},
		{"nominative panstwo", "Państwo Anna i Jan Nowak", Nominative, "Państwo", "Anna i Jan Nowak"},
		{"nominative podmiot", "Podmiot XYZ Sp. z o.o.", Nominative, "Podmiot", "XYZ Sp. z o.o."},
		{"genitive pana", "Pana Jana Kowalskiego", Genitive, "Pana", "Jana Kowalskiego"},
		{"genitive panstwa", "Państwa Nowaków", Genitive, "Państwa", "Nowaków"},
		{"genitive podmiotu", "Podmiotu XYZ", Genitive, "Podmiotu", "XYZ"},
		{"no separator", "Panna Maria", Nominative, "", "Panna Maria"},
		{"wrong case", "Pana Jana", Nominative, "", "Pana Jana"},
		{"no title", "Jan Kowalski", Nominative, "", "Jan Kowalski"},
		{"title only", "Pan", Nominative, "", "Pan"},
		{"empty", "", Genitive, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTitle, gotRest := Split(tt.input, tt.c)
			assert.Equal(t, tt.wantTitle, gotTitle)
			assert.Equal(t, tt.wantRest, gotRest)
		})
	}
}

func TestComposeAndReload(t *testing.T) {
	nom := Compose(Pan, "Jan Kowalski", Nominative)
	gen := Compose(Pan, "Jana Kowalskiego", Genitive)

	assert.Equal(t, "Pan Jan Kowalski", nom)
	assert.Equal(t, "Pana Jana Kowalskiego", gen)

	prefix, rest := Split(gen, Genitive)
	assert.Equal(t, "Jana Kowalskiego", rest)

	selected, ok := Parse(ToNominative(prefix), Nominative)
	require.True(t, ok)
	assert.Equal(t, Pan, selected)
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "", Compose(Pani, "   ", Nominative))
	assert.Equal(t, "Jan", Compose(None, " Jan ", Nominative))
	assert.Equal(t, "Państwa Nowaków", Compose(Panstwo, "Nowaków", Genitive))
}

func TestParse(t *testing.T) {
	got, ok := Parse("Podmiotu", Genitive)
	require.True(t, ok)
	assert.Equal(t, Podmiot, got)

	_, ok = Parse("Podmiotu", Nominative)
	assert.False(t, ok)
	assert.Equal(t, "dopełniacz", Genitive.String())
}
