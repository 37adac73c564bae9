// Package pretty renders closed expressions back into the description
// language for diagnostics. The output is meant for humans; it is stable but
// carries no formatting guarantees beyond being re-parseable.
package pretty
