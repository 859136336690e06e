package engine

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"wz-generator/internal/casefile"
	"wz-generator/internal/document"
	"wz-generator/internal/export"
	"wz-generator/internal/form"
	"wz-generator/internal/logging"
	"wz-generator/internal/template"
	"wz-generator/internal/validate"
)

var now = time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC)

func submission() form.Submission {
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
		form.Value{Key: "woda_wniosek", Text: "sieć wodociągowa"},
		form.Value{Key: "woda_analiza", Text: "sieć wodociągowa"},
		form.Value{Key: "gaz_wniosek", Text: "brak"},
		form.Value{Key: "gaz_analiza", Text: "sieć gazowa"},
		form.Value{Key: "opis_inwestycji_analiza", Text: "budowa budynku mieszkalnego"},
	)
}

type fakeConverter struct {
	calls int
	err   error
}

func (f *fakeConverter) Convert(_ context.Context, docx []byte) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return append([]byte("%PDF-1.7 "), docx[:2]...), nil
}

func newEngine(opts Options) *Engine {
	opts.Clock = func() time.Time { return now }
	return New(opts)
}

func validCase(e *Engine) casefile.Case {
	return e.Merge(submission(), "Konopnica", "RI.6730.1.2025")
}

func TestCompare(t *testing.T) {
	e := newEngine(Options{})
	cmpResult := e.Compare(submission(), "Konopnica", "RI.1")

	assert.Equal(t, "Konopnica", cmpResult.Case.Municipality)
	assert.Equal(t, "RI.1", cmpResult.Case.Number)
	assert.True(t, cmpResult.Validation.IsValid(), cmpResult.Validation.Messages())

	var keys []string
	for _, d := range cmpResult.Discrepancies {
		keys = append(keys, d.Key)
	}

	assert.Equal(t, []string{"opis_inwestycji", "gaz"}, keys)
	assert.NotEmpty(t, cmpResult.Rows)
}

func TestCompareNeverBlockedByValidation(t *testing.T) {
	e := newEngine(Options{})
	cmpResult := e.Compare(form.NewSubmission(form.Value{Key: "gaz_wniosek", Text: "brak"}), "", "")

	assert.True(t, cmpResult.Validation.HasErrors())
	require.Len(t, cmpResult.Discrepancies, 1)
	assert.Equal(t, "gaz", cmpResult.Discrepancies[0].Key)
}

func TestGenerateDOCX(t *testing.T) {
	e := newEngine(Options{})

	art, err := e.Generate(context.Background(), GenerateRequest{
		Case: validCase(e), Kind: template.KindAnalysis, Format: template.FormatDOCX,
	})
	require.NoError(t, err)

	assert.Equal(t, "RI_6730_1_2025.docx", art.Name)
	assert.Equal(t, document.MediaType, art.MediaType)
	assert.Equal(t, "builtin/analysis.xml", art.Template)
	assert.False(t, art.Dedicated)

	text, err := document.ExtractText(art.Content)
	require.NoError(t, err)
	assert.Contains(t, text, "Motycz")
	assert.Contains(t, text, "123/4, 123/5")
	assert.Contains(t, text, "RI.6730.1.2025")
}

func TestGenerateDedicatedTemplate(t *testing.T) {
	e := newEngine(Options{Templates: fstest.MapFS{
		"konopnica/decision.xml": {Data: []byte(`<Decision><Title>Decyzja dla {{wniosek_wnioskodawca_dopelniacz}}</Title></Decision>`)},
	}})

	art, err := e.Generate(context.Background(), GenerateRequest{
		Case: validCase(e), Kind: template.KindDecision, Format: template.FormatDOCX,
	})
	require.NoError(t, err)
	assert.True(t, art.Dedicated)
	assert.Equal(t, "konopnica/decision.xml", art.Template)

	text, err := document.ExtractText(art.Content)
	require.NoError(t, err)
	assert.Contains(t, text, "Decyzja dla Pana Jana Kowalskiego")
}

func TestGenerateBlockedByValidation(t *testing.T) {
	e := newEngine(Options{})

	c := validCase(e)
	delete(c.Application, "wniosek_obreb")

	art, err := e.Generate(context.Background(), GenerateRequest{Case: c, Kind: template.KindAnalysis})
	assert.Nil(t, art)
	require.ErrorIs(t, err, validate.ErrInvalid)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Messages(), 1)
	assert.Contains(t, verr.Error(), "Obręb")
}

func TestGeneratePDF(t *testing.T) {
	conv := &fakeConverter{}
	e := newEngine(Options{Converter: conv})

	art, err := e.Generate(context.Background(), GenerateRequest{
		Case: validCase(e), Kind: template.KindDecision, Format: template.FormatPDF,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, conv.calls)
	assert.Equal(t, template.FormatPDF, art.Format)
	assert.Equal(t, "RI_6730_1_2025.pdf", art.Name)
	assert.Equal(t, "application/pdf", art.MediaType)
	assert.Equal(t, "%PDF-1.7 PK", string(art.Content))
}

func TestGeneratePDFUnavailableKeepsDOCX(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := newEngine(Options{Logger: logging.FromZap(zap.New(core))})

	art, err := e.Generate(context.Background(), GenerateRequest{
		Case: validCase(e), Kind: template.KindAnalysis, Format: template.FormatPDF,
	})
	require.ErrorIs(t, err, export.ErrUnavailable)
	require.NotNil(t, art)

	assert.Equal(t, template.FormatDOCX, art.Format)
	assert.Equal(t, "RI_6730_1_2025.docx", art.Name)

	_, err = document.ExtractText(art.Content)
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("pdf export failed, docx still available").Len())
}

func TestGenerateUnknownMunicipalityUsesDefault(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := newEngine(Options{
		Logger: logging.FromZap(zap.New(core)),
		Templates: fstest.MapFS{
			"konopnica/decision.xml": {Data: []byte(`<Decision><PlaceDate>{{municipality_name}}, dnia {{data}}</PlaceDate><Location>{{gmina}}</Location></Decision>`)},
		},
	})

	c := validCase(e)
	c.Municipality = "Lublin"

	art, err := e.Generate(context.Background(), GenerateRequest{Case: c, Kind: template.KindDecision})
	require.NoError(t, err)
	assert.True(t, art.Dedicated)
	assert.Equal(t, "konopnica/decision.xml", art.Template)

	text, err := document.ExtractText(art.Content)
	require.NoError(t, err)
	assert.Contains(t, text, "Lublin, dnia 10.04.2025 r.")
	assert.Contains(t, text, "Gmina Lublin")
	assert.NotContains(t, text, "Konopnica")
	assert.Equal(t, 1, logs.FilterMessage("unknown municipality, using default").Len())
}

func TestGenerateAll(t *testing.T) {
	e := newEngine(Options{Converter: &fakeConverter{}})

	arts, err := e.GenerateAll(context.Background(), validCase(e), nil, template.FormatPDF)
	require.NoError(t, err)
	require.Len(t, arts, 2)

	assert.Equal(t, template.KindAnalysis, arts[0].Kind)
	assert.Equal(t, "RI_6730_1_2025.pdf", arts[0].Name)
	assert.Equal(t, template.KindDecision, arts[1].Kind)
	assert.Equal(t, "decyzja_RI_6730_1_2025.pdf", arts[1].Name)
}

func TestGenerateAllWithoutNumber(t *testing.T) {
	e := newEngine(Options{})

	c := validCase(e)
	c.Number = ""

	arts, err := e.GenerateAll(context.Background(), c, nil, template.FormatDOCX)
	require.NoError(t, err)

	assert.Equal(t, "analiza_urbanistyczna_20250410_093000.docx", arts[0].Name)
	assert.Equal(t, "decyzja_20250410_093000.docx", arts[1].Name)
}

func TestGenerateAllExportFailure(t *testing.T) {
	e := newEngine(Options{})

	arts, err := e.GenerateAll(context.Background(), validCase(e), nil, template.FormatPDF)
	require.ErrorIs(t, err, export.ErrUnavailable)
	require.Len(t, arts, 2)

	for _, a := range arts {
		assert.Equal(t, template.FormatDOCX, a.Format)
	}
}

func TestGenerateAllValidationFailure(t *testing.T) {
	e := newEngine(Options{})

	arts, err := e.GenerateAll(context.Background(), casefile.Case{}, nil, template.FormatDOCX)
	assert.Nil(t, arts)
	assert.ErrorIs(t, err, validate.ErrInvalid)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e := newEngine(Options{})
	c := validCase(e)

	file, err := e.Save(c)
	require.NoError(t, err)
	assert.Equal(t, "RI_6730_1_2025.json", file.Name)
	assert.Equal(t, "application/json", file.MediaType)

	loaded, err := e.Load(file.Content)
	require.NoError(t, err)

	if diff := cmp.Diff(c, loaded.Case); diff != "" {
		t.Errorf("loaded case mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, loaded.Discrepancies, 2)
	assert.True(t, loaded.Validation.IsValid())

	again := e.Merge(loaded.Form, c.Municipality, c.Number)
	if diff := cmp.Diff(c, again); diff != "" {
		t.Errorf("re-merged form mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveDoesNotValidate(t *testing.T) {
	e := newEngine(Options{})

	file, err := e.Save(casefile.Case{Number: "RI.2"})
	require.NoError(t, err)
	assert.Equal(t, "RI_2.json", file.Name)
}

func TestLoadMalformed(t *testing.T) {
	_, err := newEngine(Options{}).Load([]byte("{"))
	assert.ErrorIs(t, err, casefile.ErrMalformed)
}
