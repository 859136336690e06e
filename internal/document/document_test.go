package document

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Document {
	d := New("Analiza <urbanistyczna>")
	d.Created = time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	d.Heading(1, "Analiza urbanistyczna", AlignCenter)
	d.Paragraph(Bold("Numer sprawy: "), Plain("RI.6730.1.2025"))
	d.AlignedParagraph(AlignRight, Italic("Konopnica, 10.04.2025 r."))
	d.Paragraph(Plain("linia 1\nlinia 2 & <3>"))
	d.AddTable(Table{
		Header: []string{"Pole", "Wartość analizy"},
		Rows:   [][]string{{"Obręb", "Motycz"}, {"Działki", "123/4, 123/5"}},
	})

	return d
}

func TestText(t *testing.T) {
	want := "Analiza urbanistyczna\n" +
		"Numer sprawy: RI.6730.1.2025\n" +
		"Konopnica, 10.04.2025 r.\n" +
		"linia 1\nlinia 2 & <3>\n" +
		"Pole | Wartość analizy\n" +
		"Obręb | Motycz\n" +
		"Działki | 123/4, 123/5\n"

	assert.Equal(t, want, sample().Text())
}

func TestDOCXPackage(t *testing.T) {
	data, err := DOCX(sample())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		parts[f.Name] = string(body)
	}

	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml", "word/_rels/document.xml.rels", "docProps/core.xml"} {
		assert.Contains(t, parts, name)
	}

	body := parts["word/document.xml"]
	assert.Contains(t, body, `<w:pStyle w:val="Heading1"/><w:jc w:val="center"/>`)
	assert.Contains(t, body, `<w:jc w:val="right"/>`)
	assert.Contains(t, body, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve">Numer sprawy: </w:t>`)
	assert.Contains(t, body, `<w:rPr><w:i/></w:rPr>`)
	assert.Contains(t, body, `linia 1</w:t><w:br/><w:t xml:space="preserve">linia 2 &amp; &lt;3&gt;`)
	assert.Contains(t, body, `<w:tblHeader/>`)

	core := parts["docProps/core.xml"]
	assert.Contains(t, core, "<dc:title>Analiza &lt;urbanistyczna&gt;</dc:title>")
	assert.Contains(t, core, "2025-04-10T12:00:00Z")
}

func TestExtractText(t *testing.T) {
	data, err := DOCX(sample())
	require.NoError(t, err)

	text, err := ExtractText(data)
	require.NoError(t, err)

	assert.Contains(t, text, "Analiza urbanistyczna\n")
	assert.Contains(t, text, "Numer sprawy: RI.6730.1.2025\n")
	assert.Contains(t, text, "linia 1\nlinia 2 & <3>\n")
	assert.Contains(t, text, "Obręb\nMotycz\n")

	_, err = ExtractText([]byte("plain text"))
	assert.ErrorIs(t, err, ErrNotDOCX)
}

func TestDOCXIsDeterministic(t *testing.T) {
	a, err := DOCX(sample())
	require.NoError(t, err)

	b, err := DOCX(sample())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	err := WriteFiles([]File{
		{Name: "a.docx", Content: []byte("a")},
		{Name: "../escape.docx", Content: []byte("b")},
	}, dir)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "a.docx"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(got))

	_, err = os.Stat(filepath.Join(dir, "escape.docx"))
	assert.NoError(t, err)
}

func TestBundle(t *testing.T) {
	files := []File{
		{Name: "RI_1.docx", Content: []byte("analysis")},
		{Name: "../decyzja_RI_1.docx", Content: []byte("decision")},
	}

	data, err := Bundle(files, time.Time{})
	require.NoError(t, err)

	again, err := Bundle(files, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, data, again)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	assert.Equal(t, "RI_1.docx", zr.File[0].Name)
	assert.Equal(t, "decyzja_RI_1.docx", zr.File[1].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "decision", string(content))
}
