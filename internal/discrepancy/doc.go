// Package discrepancy compares the application record with the analysis
// record of a case field by field.
package discrepancy
