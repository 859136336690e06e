// Package diagnostic provides structured errors, warnings and notes produced
// while checking case data, the field schema and municipality configuration.
//
// Key capabilities:
//   - Rule violations tied to a field key
//   - "Did you mean" suggestions for unknown keys
//   - A combined error value for callers that only need pass/fail
package diagnostic
