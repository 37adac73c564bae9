// Package native holds the target-neutral output of the generator: the
// native type vocabulary and the sum-type declarations built from unions.
//
// Nothing here knows how to print Go. Printers in internal/gen turn these
// values into source.
package native
