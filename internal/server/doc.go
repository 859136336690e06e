// Package server is the HTTP boundary of the engine: a gin router that
// accepts form submissions and saved cases and answers with comparisons,
// rendered documents and case files.
package server
