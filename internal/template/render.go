package template

import (
	"strconv"
	"strings"

	"wz-generator/internal/document"
	"wz-generator/internal/logging"
	"wz-generator/internal/schema"
)

// Renderer turns a selected template into a document.
type Renderer struct {
	Schema *schema.Schema
	Logger *logging.Logger
}

// NewRenderer returns a renderer over s. A nil schema selects the built-in
// one.
func NewRenderer(s *schema.Schema, logger *logging.Logger) *Renderer {
	if s == nil {
		s = schema.Default()
	}

	return &Renderer{Schema: s, Logger: logging.OrNop(logger)}
}

// Render renders sel against ctx. Rendering cannot fail: unknown elements
// are rendered as plain paragraphs and unknown placeholders as "".
func (r *Renderer) Render(sel Selection, ctx map[string]string) *document.Document {
	w := &walker{
		root:   sel.Root,
		schema: r.Schema,
		log:    logging.OrNop(r.Logger),
		ctx:    ctx,
		doc:    document.New(Fill(sel.Root.Attr("title"), ctx)),
	}

	if w.doc.Title == "" {
		w.doc.Title = defaultTitle(sel.Kind)
	}

	w.children(sel.Root)

	return w.doc
}

func defaultTitle(k Kind) string {
	if k == KindDecision {
		return "Decyzja o warunkach zabudowy"
	}

	return "Analiza urbanistyczna"
}

type walker struct {
	root   *Node
	schema *schema.Schema
	log    *logging.Logger
	ctx    map[string]string
	doc    *document.Document
}

func (w *walker) fill(s string) string {
	return strings.TrimSpace(Fill(s, w.ctx))
}

func (w *walker) children(n *Node) {
	for _, c := range n.Children {
		w.node(c, n)
	}
}

// node renders one element.
func (w *walker) node(n, parent *Node) {
	if key := n.Attr("if"); key != "" && strings.TrimSpace(w.ctx[key]) == "" {
		return
	}

	align := parseAlign(n.Attr("align"))

	switch n.Name {
	case "Title":
		if parent == w.root || parent.Name == "Header" {
			w.heading(1, n.Text, align)
		} else {
			w.paragraph(align, document.Bold(w.fill(n.Text)))
		}
	case "Heading":
		level, err := strconv.Atoi(n.Attr("level"))
		if err != nil {
			level = 2
		}

		w.heading(level, n.Text, align)
	case "DecisionTitle":
		w.heading(1, n.Text, orAlign(n, document.AlignCenter))
	case "Subtitle", "ReferenceNumber":
		w.paragraph(align, document.Bold(w.fill(n.Text)))
	case "PlaceDate":
		w.paragraph(orAlign(n, document.AlignRight), document.Bold(w.fill(n.Text)))
	case "CaseNumber":
		if nr := w.fill(n.Text); nr != "" {
			label := n.Attr("label")
			if _, ok := n.Attrs["label"]; !ok {
				label = "Numer sprawy: "
			}

			w.paragraph(align, document.Bold(w.fill(label)+nr))
		}
	case "Section", "Annex":
		title := n.Attr("title")
		if n.Name == "Annex" && title == "" {
			title = "Załączniki"
		}

		w.heading(2, title, align)
		w.text(n, align)
		w.children(n)
	case "Point":
		w.numbered(n, ".")
		w.children(n)
	case "Subpoint":
		w.numbered(n, ")")
		w.children(n)
	case "List":
		for _, item := range n.Children {
			if item.Name == "Item" {
				w.item(item, "- ")
			}
		}
	case "Item":
		w.item(n, "")
	case "Note":
		if text := w.fill(n.Text); text != "" {
			w.doc.AlignedParagraph(align, document.Italic(text))
		}
	case "FieldTable":
		w.fieldTable(n)
	case "Footer":
		w.doc.Paragraph()
		w.text(n, align)
		w.children(n)
	case "Label":
		// consumed by Item
	default:
		w.text(n, align)
		w.children(n)
	}
}

func (w *walker) heading(level int, text string, align document.Align) {
	if text = w.fill(text); text != "" {
		w.doc.Heading(level, text, align)
	}
}

func (w *walker) paragraph(align document.Align, runs ...document.Run) {
	for _, r := range runs {
		if r.Text != "" {
			w.doc.AlignedParagraph(align, runs...)
			return
		}
	}
}

// text renders the element's own text as a paragraph, if any.
func (w *walker) text(n *Node, align document.Align) {
	w.paragraph(align, document.Plain(w.fill(n.Text)))
}

// numbered renders the "index. title" line of a Point or Subpoint.
func (w *walker) numbered(n *Node, defaultMarker string) {
	title := w.fill(n.Attr("title"))
	if title == "" {
		return
	}

	if idx := n.Attr("index"); idx != "" {
		title = idx + marker(n, defaultMarker) + " " + title
	}

	w.paragraph(parseAlign(n.Attr("align")), document.Bold(title))
}

// item renders a list or enumeration entry. The label comes from the label
// attribute or a Label child, the value from a Text child or the element
// text.
func (w *walker) item(n *Node, bullet string) {
	label := n.Attr("label")
	if label == "" {
		label = n.ChildText("Label")
	}

	text := n.Text
	if c := n.Child("Text"); c != nil {
		text = c.Text
	}

	label, text = w.fill(label), w.fill(text)
	if label == "" && text == "" {
		return
	}

	body := text
	if label != "" {
		body = label + ": " + text
	}

	var runs []document.Run

	switch idx := n.Attr("index"); {
	case bullet != "":
		runs = append(runs, document.Plain(bullet+body))
	case idx != "":
		runs = append(runs, document.Bold(idx+marker(n, ".")+" "), document.Plain(body))
	default:
		runs = append(runs, document.Plain(body))
	}

	w.doc.AlignedParagraph(parseAlign(n.Attr("align")), runs...)
}

// fieldTable renders the schema labels against the context values. The
// fields attribute restricts and orders the rows.
func (w *walker) fieldTable(n *Node) {
	var keys []string

	if list := n.Attr("fields"); list != "" {
		for _, k := range strings.Split(list, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	} else {
		for _, f := range w.schema.Fields() {
			if f.Kind != schema.KindDerived {
				keys = append(keys, f.Key)
			}
		}
	}

	t := document.Table{
		Header: []string{
			firstNonBlank(n.Attr("label-header"), "Pole"),
			firstNonBlank(n.Attr("value-header"), "Wartość analizy"),
		},
	}

	for _, key := range keys {
		if !w.schema.Known(key) {
			w.log.Debug("field table references an unknown field", "key", key)
		}

		value := strings.TrimSpace(w.ctx[w.schema.RecordKey(key)])
		t.Rows = append(t.Rows, []string{w.schema.Label(key), value})
	}

	w.doc.AddTable(t)
}

func marker(n *Node, def string) string {
	if m, ok := n.Attrs["marker"]; ok {
		return m
	}

	return def
}

func parseAlign(s string) document.Align {
	switch strings.ToLower(s) {
	case "center", "centre":
		return document.AlignCenter
	case "right":
		return document.AlignRight
	default:
		return document.AlignLeft
	}
}

func orAlign(n *Node, def document.Align) document.Align {
	if _, ok := n.Attrs["align"]; ok {
		return parseAlign(n.Attr("align"))
	}

	return def
}
