// Package casefile serializes a case (number, municipality and both
// records) to the flat JSON form the form UI saves and loads, and keeps
// saved cases in a directory.
package casefile
