// Package form models a raw field submission and collects repeated field
// groups into ordered sequences.
//
// A submission is an ordered list of (key, text) pairs. Repeated groups use
// the wire convention base, base_1, base_2, ...; Group turns them into a
// Sequence in submission order with blank instances dropped.
package form
