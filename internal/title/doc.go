// Package title maps the four petitioner honorifics between the nominative
// and the genitive grammatical case.
//
// The mapping is closed and total over Pan, Pani, Państwo and Podmiot:
//
//	Pan     -> Pana
//	Pani    -> Pani
//	Państwo -> Państwa
//	Podmiot -> Podmiotu
//
// Anything outside the domain maps to itself in both directions. Split
// extracts a leading honorific from free text such as "Pana Jana Kowalskiego"
// and is used both when composing the genitive field and when a stored
// value is loaded back into the title selector and name input.
package title
