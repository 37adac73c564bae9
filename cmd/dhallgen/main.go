// Package main provides the CLI entrypoint for dhallgen.
//
// dhallgen turns configuration expressions into Go source:
//   - embed: resolve an expression and emit a variable rebuilding its value
//   - union: compile a union type into a sealed-interface sum type
//   - run: process every target of a job file
//   - watch: rerun a job file whenever one of its inputs changes
//   - inspect: print the resolved form of an expression
package main

import (
	"fmt"
	"io"
	"os"

	"dhallgen/internal/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes the error followed by any hints attached to it.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "\nHint: %s\n", hint)
	}
}
