package gen

import (
	"go/token"
	"unicode"
	"unicode/utf8"

	"dhallgen/internal/diagnostic"
)

// Identifier roles used in errors and diagnostics.
const (
	roleDeclaration = "declaration"
	roleConstructor = "constructor"
	roleField       = "field"
	roleValue       = "value"
	rolePackage     = "package"
)

// reservedNames are predeclared identifiers and package names the
// generated code itself refers to.
var reservedNames = map[string]bool{
	"bool":    true,
	"float64": true,
	"string":  true,
	"big":     true,
	"core":    true,
	"math":    true,
}

// validateIdentifier checks that name can be emitted verbatim.
func validateIdentifier(role, name string) error {
	switch {
	case name == "":
		return diagnostic.NewInvalidIdentifierError(role, name, "the name is empty")
	case token.IsKeyword(name):
		return diagnostic.NewInvalidIdentifierError(role, name, "the name is a Go keyword")
	case !token.IsIdentifier(name):
		return diagnostic.NewInvalidIdentifierError(role, name, "the name is not a Go identifier")
	case name == "_":
		return diagnostic.NewInvalidIdentifierError(role, name, "the blank identifier cannot be referenced")
	case role != roleField && role != rolePackage && reservedNames[name]:
		return diagnostic.NewInvalidIdentifierError(role, name,
			"the name would shadow an identifier the generated code uses")
	}

	return nil
}

// isExported reports whether name starts with an upper-case letter.
func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// markerName is the name of the method tying variants to their declaration.
func markerName(declaration string) string {
	return "is" + declaration
}

// topLevel tracks package-level names of one file.
type topLevel map[string]string

func (t topLevel) claim(role, name string) error {
	if prev, ok := t[name]; ok {
		return diagnostic.NewInvalidIdentifierError(role, name,
			"the name is already used by a "+prev+" in the same file")
	}

	t[name] = role

	return nil
}
