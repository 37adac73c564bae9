// Package generate is the public entry point of dhallgen.
//
// ResolveAndEmbed turns a configuration expression into a Go expression
// that rebuilds the resolved value. UnionToDeclaration turns a union type
// into a neutral sum-type declaration that the printers in dhallgen's gen
// package render as Go or YAML.
//
// Both functions take a Resolver, so callers can substitute their own
// implementation. NewResolver returns the bundled one.
package generate
