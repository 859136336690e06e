// Package template selects and renders the XML document templates of a
// municipality.
//
// A template is an XML tree whose elements map onto document blocks
// (Title, Paragraph, Section, Point, Subpoint, List, Item, FieldTable, ...)
// and whose text and attributes may contain {{key}} placeholders. Keys
// resolve against the render context; unknown keys render as "".
//
// Every document kind has a built-in template, so resolution never fails.
// A dedicated template that is missing or malformed is reported and the
// built-in one is used instead.
package template
