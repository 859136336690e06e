package template

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is an element of a parsed template.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Attr returns the value of an attribute, or "".
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// ChildText returns the text of the first child with the given name.
func (n *Node) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.Text
	}

	return ""
}

// Parse reads a template document. Element text is whitespace-normalised:
// runs of spaces and line breaks collapse to a single space.
func Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		root  *Node
		stack []*Node
		text  []*strings.Builder
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("parsing template: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				n.Attrs[a.Name.Local] = a.Value
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing template: more than one root element")
				}

				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}

			stack = append(stack, n)
			text = append(text, &strings.Builder{})
		case xml.EndElement:
			last := len(stack) - 1
			stack[last].Text = normalizeSpace(text[last].String())
			stack, text = stack[:last], text[:last]
		case xml.CharData:
			if len(stack) > 0 {
				text[len(text)-1].Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parsing template: no root element")
	}

	return root, nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
