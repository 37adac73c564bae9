// Package match finds the closest known name to a misspelled one.
//
// It backs the "did you mean" hints of the resolver (unknown fields and
// union alternatives) and of the job file loader (unknown target kinds and
// formats).
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - NormalizeIdent: normalizes identifiers for case-insensitive matching
//   - Closest: picks the nearest candidate within a distance bound
package match
