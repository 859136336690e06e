// Package match provides key normalization, Levenshtein distance calculation
// and candidate ranking used to suggest known field keys for unknown ones.
//
// Key functions:
//   - NormalizeKey: folds case, Polish diacritics and separators
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known keys by similarity to an unknown key
package match
