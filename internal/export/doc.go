// Package export converts rendered DOCX documents into fixed-layout PDF
// through an external office suite. Conversion is a single synchronous call:
// a failure is reported to the caller and never retried.
package export
