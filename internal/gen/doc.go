// Package gen prints neutral declarations and embedded values as files.
//
// Generation uses text/template, then golang.org/x/tools/imports to format
// the result. When formatting fails the raw output is kept next to the
// intended file for debugging.
//
// Printers:
//   - DeclarationPrinter: one sealed interface per declaration, one struct
//     per variant, a marker method tying them together
//   - ValuePrinter: one package-level core.Expr variable per value
//   - YAMLPrinter: declarations as a YAML document for other tooling
package gen
