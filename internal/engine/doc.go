// Package engine wires the pipeline together: merge a submission into a
// record pair, compare the records, validate them, select and render a
// template, and optionally export the result to PDF.
//
// An Engine holds only immutable configuration and is safe for concurrent
// use. Every call works on its own copy of the field values.
package engine
