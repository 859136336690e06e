package record

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wz-generator/internal/form"
	"wz-generator/internal/schema"
	"wz-generator/internal/title"
)

func sampleSubmission() form.Submission {
	return form.NewSubmission(
		form.Value{Key: "wnioskodawca_title_wniosek", Text: "Pan"},
		form.Value{Key: "wnioskodawca_mianownik_wniosek", Text: "Jan Kowalski"},
		form.Value{Key: "wnioskodawca_dopelniacz_wniosek", Text: "Jana Kowalskiego"},
		form.Value{Key: "wnioskodawca_adres_wniosek", Text: "ul. Lipowa 1, 21-030 Konopnica"},
		form.Value{Key: "gmina_wniosek", Text: "Konopnica"},
		form.Value{Key: "obreb_wniosek", Text: "Motycz"},
		form.Value{Key: "dzialki_wniosek", Text: "123/4"},
		form.Value{Key: "dzialki_wniosek_1", Text: "123/5"},
		form.Value{Key: "data_zlozenia_wniosku_wniosek", Text: "2025-03-07"},
		form.Value{Key: "data_wykonania_analizy_wniosek", Text: "2025-04-10"},
		form.Value{Key: "data_uzupelnienia_wniosku_wniosek", Text: "2025-03-20"},
		form.Value{Key: "data_uzupelnienia_wniosku_wniosek_1", Text: " "},
		form.Value{Key: "data_uzupelnienia_wniosku_wniosek_2", Text: "2025-04-01"},
		form.Value{Key: "woda_wniosek", Text: "sieć wodociągowa"},
		form.Value{Key: "woda_analiza", Text: "sieć wodociągowa"},
		form.Value{Key: "gaz_wniosek", Text: "brak"},
		form.Value{Key: "gaz_analiza", Text: "sieć gazowa"},
		form.Value{Key: "opis_inwestycji_analiza", Text: "budowa budynku mieszkalnego"},
	)
}

func TestMerge(t *testing.T) {
	m := NewMerger(nil, nil)
	pair := m.Merge(sampleSubmission())

	wantApp := Record{
		"wniosek_wnioskodawca_mianownik":    "Pan Jan Kowalski",
		"wniosek_wnioskodawca_dopelniacz":   "Pana Jana Kowalskiego",
		"wniosek_wnioskodawca_adres":        "ul. Lipowa 1, 21-030 Konopnica",
		"wniosek_gmina":                     "Konopnica",
		"wniosek_obreb":                     "Motycz",
		"wniosek_dzialki":                   "123/4, 123/5",
		"wniosek_dzialki_multiple":          "true",
		"wniosek_dzialki_count":             "2",
		"wniosek_data_zlozenia_wniosku":     "07.03.2025",
		"wniosek_data_wykonania_analizy":    "10.04.2025",
		"wniosek_data_uzupelnienia_wniosku": "20.03.2025, 01.04.2025",
		"woda":                              "sieć wodociągowa",
		"gaz":                               "brak",
	}

	if diff := cmp.Diff(wantApp, pair.Application); diff != "" {
		t.Errorf("application record mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "sieć gazowa", pair.Analysis["gaz"])
	assert.Equal(t, "budowa budynku mieszkalnego", pair.Analysis["opis_inwestycji"])
	assert.False(t, pair.Application.Has("opis_inwestycji"))
}

func TestMergeMirrorsApplicationOnlyFields(t *testing.T) {
	s := schema.Default()
	pair := NewMerger(s, nil).Merge(sampleSubmission())

	for _, key := range s.ApplicationOnlyKeys() {
		prefixed := s.Prefixed(key)
		assert.Equal(t, pair.Application[prefixed], pair.Analysis[prefixed], prefixed)
		assert.False(t, pair.Analysis.Has(key), "%s must never appear unprefixed", key)
		assert.False(t, pair.Application.Has(key), "%s must never appear unprefixed", key)
	}
}

func TestMergeDiscardsApplicationOnlyOnAnalysisSide(t *testing.T) {
	pair := NewMerger(nil, nil).Merge(form.NewSubmission(
		form.Value{Key: "obreb_wniosek", Text: "Motycz"},
		form.Value{Key: "obreb_analiza", Text: "Radawiec"},
		form.Value{Key: "wniosek_obreb_analiza", Text: "Radawiec"},
	))

	assert.Equal(t, "Motycz", pair.Analysis["wniosek_obreb"])
	assert.False(t, pair.Analysis.Has("obreb"))
}

func TestMergeIgnoresUnknownKeys(t *testing.T) {
	pair := NewMerger(nil, nil).Merge(form.NewSubmission(
		form.Value{Key: "mystery_wniosek", Text: "x"},
		form.Value{Key: "mystery_analiza", Text: "y"},
		form.Value{Key: "case_number", Text: "RI.1"},
	))

	assert.False(t, pair.Application.Has("mystery"))
	assert.False(t, pair.Analysis.Has("mystery"))
	assert.False(t, pair.Application.Has("case_number"))
}

func TestMergeFirstValueWins(t *testing.T) {
	pair := NewMerger(nil, nil).Merge(form.NewSubmission(
		form.Value{Key: "wnioskodawca_title_wniosek", Text: "Pani"},
		form.Value{Key: "wnioskodawca_title_wniosek", Text: "Pan"},
		form.Value{Key: "wnioskodawca_mianownik_wniosek", Text: "Anna Nowak"},
		form.Value{Key: "woda_wniosek", Text: "studnia"},
		form.Value{Key: "woda_wniosek", Text: "wodociąg"},
	))

	assert.Equal(t, "Pani Anna Nowak", pair.Application["wniosek_wnioskodawca_mianownik"])
	assert.Equal(t, "studnia", pair.Application["woda"])
}

func TestMergeGroups(t *testing.T) {
	tests := []struct {
		name     string
		values   []form.Value
		joined   string
		multiple string
		count    string
	}{
		{
			name:     "two plots",
			values:   []form.Value{{Key: "dzialki_wniosek", Text: "123/4"}, {Key: "dzialki_wniosek_1", Text: "123/5"}},
			joined:   "123/4, 123/5",
			multiple: "true",
			count:    "2",
		},
		{
			name:     "single plot",
			values:   []form.Value{{Key: "dzialki_wniosek", Text: "123/4"}},
			joined:   "123/4",
			multiple: "false",
			count:    "1",
		},
		{
			name:     "no plots",
			joined:   "",
			multiple: "false",
			count:    "0",
		},
		{
			name:     "blank instances dropped",
			values:   []form.Value{{Key: "dzialki_wniosek", Text: ""}, {Key: "dzialki_wniosek_3", Text: " 7/1 "}},
			joined:   "7/1",
			multiple: "false",
			count:    "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := NewMerger(nil, nil).Merge(form.NewSubmission(tt.values...))

			for _, r := range []Record{pair.Application, pair.Analysis} {
				assert.Equal(t, tt.joined, r["wniosek_dzialki"])
				assert.Equal(t, tt.multiple, r["wniosek_dzialki_multiple"])
				assert.Equal(t, tt.count, r["wniosek_dzialki_count"])
			}
		})
	}
}

func TestMergeDates(t *testing.T) {
	pair := NewMerger(nil, nil).Merge(form.NewSubmission(
		form.Value{Key: "data_zlozenia_wniosku_wniosek", Text: "not-a-date"},
		form.Value{Key: "data_uzupelnienia_wniosku_wniosek", Text: "2025-13-01"},
		form.Value{Key: "data_uzupelnienia_wniosku_wniosek_1", Text: "2025-03-07"},
	))

	assert.Equal(t, "not-a-date", pair.Analysis["wniosek_data_zlozenia_wniosku"])
	assert.Equal(t, "2025-13-01, 07.03.2025", pair.Analysis["wniosek_data_uzupelnienia_wniosku"])
}

func TestMergePetitioner(t *testing.T) {
	tests := []struct {
		name       string
		honorific  string
		nominative string
		genitive   string
		wantNom    string
		wantGen    string
	}{
		{"pan", "Pan", "Jan Kowalski", "Jana Kowalskiego", "Pan Jan Kowalski", "Pana Jana Kowalskiego"},
		{"pani", "Pani", "Anna Nowak", "Anny Nowak", "Pani Anna Nowak", "Pani Anny Nowak"},
		{"panstwo", "Państwo", "Kowalscy", "Kowalskich", "Państwo Kowalscy", "Państwa Kowalskich"},
		{"podmiot", "Podmiot", "ABC sp. z o.o.", "ABC sp. z o.o.", "Podmiot ABC sp. z o.o.", "Podmiotu ABC sp. z o.o."},
		{"blank genitive", "Pan", "Jan", "  ", "Pan Jan", ""},
		{"blank name", "Pan", "", "Jana", "", "Pana Jana"},
		{"no title", "", "Jan", "Jana", "Jan", "Jana"},
		{"unknown title", "Dr", "Jan", "Jana", "Dr Jan", "Dr Jana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := NewMerger(nil, nil).Merge(form.NewSubmission(
				form.Value{Key: "wnioskodawca_title_wniosek", Text: tt.honorific},
				form.Value{Key: "wnioskodawca_mianownik_wniosek", Text: tt.nominative},
				form.Value{Key: "wnioskodawca_dopelniacz_wniosek", Text: tt.genitive},
			))

			assert.Equal(t, tt.wantNom, pair.Application["wniosek_wnioskodawca_mianownik"])
			assert.Equal(t, tt.wantGen, pair.Application["wniosek_wnioskodawca_dopelniacz"])
			assert.Equal(t, tt.wantGen, pair.Analysis["wniosek_wnioskodawca_dopelniacz"])
		})
	}
}

func TestUnmerge(t *testing.T) {
	s := schema.Default()
	pair := NewMerger(s, nil).Merge(sampleSubmission())
	sub := Unmerge(s, pair)

	assert.Equal(t, "Pan", sub.Text("wnioskodawca_title_wniosek"))
	assert.Equal(t, "Jan Kowalski", sub.Text("wnioskodawca_mianownik_wniosek"))
	assert.Equal(t, "Jana Kowalskiego", sub.Text("wnioskodawca_dopelniacz_wniosek"))
	assert.Equal(t, "2025-03-07", sub.Text("data_zlozenia_wniosku_wniosek"))
	assert.Equal(t, "123/4", sub.Text("dzialki_wniosek"))
	assert.Equal(t, "123/5", sub.Text("dzialki_wniosek_1"))
	assert.Equal(t, "2025-04-01", sub.Text("data_uzupelnienia_wniosku_wniosek_1"))
	assert.Equal(t, "sieć gazowa", sub.Text("gaz_analiza"))
	assert.False(t, sub.Has("dzialki_count_wniosek"))
	assert.False(t, sub.Has("opis_inwestycji_wniosek"))
}

func TestMergeUnmergeRoundTrip(t *testing.T) {
	s := schema.Default()
	m := NewMerger(s, nil)

	subs := map[string]form.Submission{
		"sample": sampleSubmission(),
		"empty":  {},
		"genitive only": form.NewSubmission(
			form.Value{Key: "wnioskodawca_title_wniosek", Text: "Państwo"},
			form.Value{Key: "wnioskodawca_mianownik_wniosek", Text: ""},
			form.Value{Key: "wnioskodawca_dopelniacz_wniosek", Text: "Kowalskich"},
		),
		"malformed": form.NewSubmission(
			form.Value{Key: "data_wykonania_analizy_wniosek", Text: "wczoraj"},
			form.Value{Key: "data_uzupelnienia_wniosku_wniosek", Text: "07.03.2025"},
			form.Value{Key: "wnioskodawca_mianownik_wniosek", Text: "Jan"},
		),
	}

	for name, sub := range subs {
		t.Run(name, func(t *testing.T) {
			first := m.Merge(sub)
			second := m.Merge(Unmerge(s, first))

			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("round trip mismatch (-first +second):\n%s\nprojection: %s",
					diff, spew.Sdump(Unmerge(s, first)))
			}
		})
	}
}

func TestSplit(t *testing.T) {
	s := schema.Default()

	honorific, nom, gen := Split(s, Record{
		"wniosek_wnioskodawca_dopelniacz": "Pana Jana Kowalskiego",
	})
	assert.Equal(t, title.Pan, honorific)
	assert.Empty(t, nom)
	assert.Equal(t, "Jana Kowalskiego", gen)

	honorific, nom, _ = Split(s, Record{"wniosek_wnioskodawca_mianownik": "Jan"})
	assert.Equal(t, title.None, honorific)
	assert.Equal(t, "Jan", nom)
}

func TestPairContext(t *testing.T) {
	p := Pair{
		Application: Record{"wniosek_gmina": "Konopnica", "woda": "studnia"},
		Analysis:    Record{"wniosek_gmina": "Konopnica", "woda": "wodociąg"},
	}

	ctx := p.Context()
	require.Len(t, ctx, 2)
	assert.Equal(t, "wodociąg", ctx["woda"])

	clone := p.Clone()
	clone.Application["woda"] = "x"
	assert.Equal(t, "studnia", p.Application["woda"])
	assert.Equal(t, []string{"wniosek_gmina", "woda"}, p.Application.Keys())
}
