package discrepancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wz-generator/internal/record"
	"wz-generator/internal/schema"
)

func TestDetect(t *testing.T) {
	s := schema.Default()
	pair := record.Pair{
		Application: record.Record{
			"wniosek_gmina": "Konopnica",
			"woda":          "studnia",
			"gaz":           "brak",
			"uwagi":         " bez uwag ",
			"zzz_custom":    "a",
			"aaa_custom":    "a",
		},
		Analysis: record.Record{
			"wniosek_gmina":     "Konopnica",
			"woda":              "wodociąg",
			"gaz":               "brak",
			"uwagi":             "bez uwag",
			"wysokosc_zabudowy": "9 m",
			"zzz_custom":        "b",
			"aaa_custom":        "b",
			"rodzaj_inwestycji": "",
		},
	}

	got := Detect(s, pair)

	keys := make([]string, len(got))
	for i, d := range got {
		keys[i] = d.Key
	}

	// schema order first: wysokosc_zabudowy precedes woda
	assert.Equal(t, []string{"wysokosc_zabudowy", "woda", "aaa_custom", "zzz_custom"}, keys)

	require.Len(t, got, 4)
	assert.Equal(t, Discrepancy{
		Key:         "wysokosc_zabudowy",
		Label:       "Wysokość zabudowy",
		Application: "",
		Analysis:    "9 m",
	}, got[0])
	assert.Equal(t, "Zaopatrzenie w wodę", got[1].Label)
	assert.Equal(t, "aaa_custom", got[2].Label)
}

func TestDetectNeverReportsApplicationOnlyFields(t *testing.T) {
	s := schema.Default()
	pair := record.Pair{
		Application: record.Record{"wniosek_obreb": "Motycz", "obreb": "x"},
		Analysis:    record.Record{"wniosek_obreb": "Radawiec", "obreb": "y"},
	}

	assert.Empty(t, Detect(s, pair))
}

func TestDetectFoldCase(t *testing.T) {
	s := schema.Default()
	pair := record.Pair{
		Application: record.Record{"gaz": "Brak"},
		Analysis:    record.Record{"gaz": "brak"},
	}

	assert.Len(t, Detect(s, pair), 1)
	assert.Empty(t, Detect(s, pair, FoldCase()))
}

func TestDetectIsDeterministic(t *testing.T) {
	s := schema.Default()
	pair := record.NewPair()

	for _, key := range s.Keys() {
		if !s.IsApplicationOnly(key) {
			pair.Application[key] = "a"
			pair.Analysis[key] = "b"
		}
	}

	first := Detect(s, pair)
	for range 20 {
		assert.Equal(t, first, Detect(s, pair))
	}

	for i := 1; i < len(first); i++ {
		assert.Less(t, s.Index(first[i-1].Key), s.Index(first[i].Key))
	}
}

func TestCompare(t *testing.T) {
	s := schema.Default()
	pair := record.Pair{
		Application: record.Record{"wniosek_obreb": "Motycz", "gaz": "brak", "wniosek_dzialki_count": "1"},
		Analysis:    record.Record{"wniosek_obreb": "Motycz", "gaz": "sieć"},
	}

	rows := Compare(s, pair)
	byKey := map[string]Row{}
	for _, r := range rows {
		byKey[r.Key] = r
	}

	assert.NotContains(t, byKey, "dzialki_count")
	assert.Equal(t, "wnioskodawca_mianownik", rows[0].Key)

	obreb := byKey["obreb"]
	assert.True(t, obreb.ApplicationOnly)
	assert.True(t, obreb.Match)
	assert.Equal(t, "Motycz", obreb.Analysis)

	gaz := byKey["gaz"]
	assert.False(t, gaz.Match)
	assert.Equal(t, "sieć", gaz.Analysis)

	assert.True(t, byKey["uzasadnienie"].LongText)
	assert.True(t, byKey["uwagi"].Match, "absent on both sides")
	assert.Equal(t, 1, Mismatches(rows))
}
