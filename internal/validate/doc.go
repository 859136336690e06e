// Package validate checks a merged case before a document is rendered.
//
// Failures block rendering only. Saving, loading and comparing a case never
// consult this package, so an incomplete case can always be stored and
// reviewed. Messages are in Polish since they are shown to the caseworker
// as they are.
package validate
