// Package diagnostic defines the generator's error taxonomy and collects
// non-fatal notes.
//
// Error kinds:
//   - ResolutionError: parse, import or type-check failure in the resolver
//   - UnsupportedTypeError: a type outside the mappable subset
//   - NotAUnionError: a declaration requested from a non-union type
//   - InvalidIdentifierError: a name the Go printer cannot emit
//
// Every error message is long-form: the rule that was violated, a minimal
// valid example and the rendered offending expression.
package diagnostic
