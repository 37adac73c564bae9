// Package embed turns a closed value into a Go expression that rebuilds an
// equal value at run time using only package core.
//
// The encoder walks the value by its tag and re-applies each constructor
// around the encoded children. Text is the one exception: it is never
// encoded through its chunk representation but as a Go string literal
// passed to core.PlainText, so only that call depends on how text is stored.
package embed
