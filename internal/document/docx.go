package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// MediaType is the MIME type of a .docx package.
const MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	nsW  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPR = "http://schemas.openxmlformats.org/package/2006/relationships"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + nsPR + `">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + nsPR + `">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const styles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="` + nsW + `">
<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/><w:lang w:val="pl-PL"/></w:rPr></w:rPrDefault>
<w:pPrDefault><w:pPr><w:spacing w:after="120" w:line="264" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="240"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="200"/><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:outlineLvl w:val="2"/></w:pPr><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>
<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:tblPr><w:tblBorders>
<w:top w:val="single" w:sz="4" w:space="0" w:color="808080"/><w:left w:val="single" w:sz="4" w:space="0" w:color="808080"/>
<w:bottom w:val="single" w:sz="4" w:space="0" w:color="808080"/><w:right w:val="single" w:sz="4" w:space="0" w:color="808080"/>
<w:insideH w:val="single" w:sz="4" w:space="0" w:color="808080"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="808080"/>
</w:tblBorders></w:tblPr></w:style>
</w:styles>`

// WriteDOCX writes d as a .docx package.
func WriteDOCX(w io.Writer, d *Document) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		body func(io.Writer) error
	}{
		{"[Content_Types].xml", static(contentTypes)},
		{"_rels/.rels", static(rootRels)},
		{"docProps/core.xml", func(w io.Writer) error { return writeCore(w, d) }},
		{"word/_rels/document.xml.rels", static(documentRels)},
		{"word/styles.xml", static(styles)},
		{"word/document.xml", func(w io.Writer) error { return writeBody(w, d) }},
	}

	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: modTime(d)})
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}

		if err := p.body(fw); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}

	return zw.Close()
}

// DOCX renders d into memory.
func DOCX(d *Document) ([]byte, error) {
	var buf bytes.Buffer

	if err := WriteDOCX(&buf, d); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func static(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

// zipEpoch is the earliest time a zip header can hold.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

func modTime(d *Document) time.Time {
	if d.Created.IsZero() {
		return zipEpoch
	}

	return d.Created
}

func writeCore(w io.Writer, d *Document) error {
	var b bytes.Buffer

	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"`)
	b.WriteString(` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"`)
	b.WriteString(` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	b.WriteString(`<dc:title>`)
	escape(&b, d.Title)
	b.WriteString(`</dc:title><dc:creator>wz-generator</dc:creator>`)

	if !d.Created.IsZero() {
		stamp := d.Created.UTC().Format(time.RFC3339)
		b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>`)
	}

	b.WriteString(`</cp:coreProperties>`)

	_, err := w.Write(b.Bytes())

	return err
}

func writeBody(w io.Writer, d *Document) error {
	var b bytes.Buffer

	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:body>`)

	for _, blk := range d.Blocks {
		switch blk.Kind {
		case KindTable:
			writeTable(&b, blk.Table)
		case KindHeading:
			level := min(max(blk.Level, 1), 3)
			writeParagraph(&b, "Heading"+strconv.Itoa(level), blk.Align, blk.Runs)
		default:
			writeParagraph(&b, "", blk.Align, blk.Runs)
		}
	}

	// A4 with 2 cm margins.
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>`)
	b.WriteString(`<w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134" w:header="709" w:footer="709" w:gutter="0"/>`)
	b.WriteString(`</w:sectPr></w:body></w:document>`)

	_, err := w.Write(b.Bytes())

	return err
}

func writeParagraph(b *bytes.Buffer, style string, align Align, runs []Run) {
	b.WriteString(`<w:p>`)

	if style != "" || align != AlignLeft {
		b.WriteString(`<w:pPr>`)

		if style != "" {
			b.WriteString(`<w:pStyle w:val="` + style + `"/>`)
		}

		switch align {
		case AlignCenter:
			b.WriteString(`<w:jc w:val="center"/>`)
		case AlignRight:
			b.WriteString(`<w:jc w:val="right"/>`)
		}

		b.WriteString(`</w:pPr>`)
	}

	for _, r := range runs {
		writeRun(b, r)
	}

	b.WriteString(`</w:p>`)
}

func writeRun(b *bytes.Buffer, r Run) {
	b.WriteString(`<w:r>`)

	if r.Bold || r.Italic {
		b.WriteString(`<w:rPr>`)

		if r.Bold {
			b.WriteString(`<w:b/>`)
		}

		if r.Italic {
			b.WriteString(`<w:i/>`)
		}

		b.WriteString(`</w:rPr>`)
	}

	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			b.WriteString(`<w:br/>`)
		}

		b.WriteString(`<w:t xml:space="preserve">`)
		escape(b, line)
		b.WriteString(`</w:t>`)
	}

	b.WriteString(`</w:r>`)
}

func writeTable(b *bytes.Buffer, t *Table) {
	if t == nil {
		return
	}

	b.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="5000" w:type="pct"/></w:tblPr>`)

	if len(t.Header) > 0 {
		writeRow(b, t.Header, true)
	}

	for _, row := range t.Rows {
		writeRow(b, row, false)
	}

	b.WriteString(`</w:tbl>`)
}

func writeRow(b *bytes.Buffer, cells []string, header bool) {
	b.WriteString(`<w:tr>`)

	if header {
		b.WriteString(`<w:trPr><w:tblHeader/></w:trPr>`)
	}

	for _, c := range cells {
		b.WriteString(`<w:tc>`)

		if header {
			b.WriteString(`<w:tcPr><w:shd w:val="clear" w:color="auto" w:fill="D9D9D9"/></w:tcPr>`)
		}

		writeParagraph(b, "", AlignLeft, []Run{{Text: c, Bold: header}})
		b.WriteString(`</w:tc>`)
	}

	b.WriteString(`</w:tr>`)
}

func escape(b *bytes.Buffer, s string) {
	// xml.EscapeText only fails on write errors; bytes.Buffer never returns one
	_ = xml.EscapeText(b, []byte(s))
}
