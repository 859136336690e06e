package document

import (
	"strings"
	"time"
)

// Align is a paragraph alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Kind distinguishes block types.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindTable
)

// Run is a span of text with uniform styling.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

// Plain returns an unstyled run.
func Plain(text string) Run { return Run{Text: text} }

// Bold returns a bold run.
func Bold(text string) Run { return Run{Text: text, Bold: true} }

// Italic returns an italic run.
func Italic(text string) Run { return Run{Text: text, Italic: true} }

// Table is a grid of text cells with an optional header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Block is a top-level element of a document.
type Block struct {
	Kind  Kind
	Level int // heading level, 1-based
	Align Align
	Runs  []Run
	Table *Table
}

// Text returns the concatenated run text of the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}

	return sb.String()
}

// Document is an ordered list of blocks.
type Document struct {
	Title   string
	Created time.Time
	Blocks  []Block
}

// New returns an empty document.
func New(title string) *Document {
	return &Document{Title: title}
}

// Heading appends a heading of the given level.
func (d *Document) Heading(level int, text string, align Align) {
	d.Blocks = append(d.Blocks, Block{Kind: KindHeading, Level: level, Align: align, Runs: []Run{Plain(text)}})
}

// Paragraph appends a left-aligned paragraph.
func (d *Document) Paragraph(runs ...Run) {
	d.AlignedParagraph(AlignLeft, runs...)
}

// AlignedParagraph appends a paragraph with the given alignment.
func (d *Document) AlignedParagraph(align Align, runs ...Run) {
	d.Blocks = append(d.Blocks, Block{Kind: KindParagraph, Align: align, Runs: runs})
}

// AddTable appends a table.
func (d *Document) AddTable(t Table) {
	d.Blocks = append(d.Blocks, Block{Kind: KindTable, Table: &t})
}

// Text renders the document as plain text, one block per line and table
// cells separated by " | ".
func (d *Document) Text() string {
	var sb strings.Builder

	for _, b := range d.Blocks {
		if b.Kind == KindTable {
			if len(b.Table.Header) > 0 {
				sb.WriteString(strings.Join(b.Table.Header, " | "))
				sb.WriteByte('\n')
			}

			for _, row := range b.Table.Rows {
				sb.WriteString(strings.Join(row, " | "))
				sb.WriteByte('\n')
			}

			continue
		}

		sb.WriteString(b.Text())
		sb.WriteByte('\n')
	}

	return sb.String()
}
