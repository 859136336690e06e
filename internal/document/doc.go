// Package document holds the rendered document model and writes it as a
// WordprocessingML (.docx) package.
//
// The model is deliberately small: headings, paragraphs made of styled
// runs, and plain tables. Layout beyond that is left to the word processor.
package document
