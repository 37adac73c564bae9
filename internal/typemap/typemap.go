// Package typemap converts the restricted structural type algebra into
// native types. It is total over Bool, Double, Integer, Natural, Text and
// List/Optional of those, and rejects everything else.
package typemap

import (
	"dhallgen/core"
	"dhallgen/internal/diagnostic"
	"dhallgen/internal/native"
	"dhallgen/internal/pretty"
)

// Map converts a type expression into a native type.
func Map(expr core.Expr) (native.Type, error) {
	return MapAt(diagnostic.NewPath(""), expr)
}

// MapAt is like Map but reports failures at the given path.
func MapAt(path *diagnostic.Path, expr core.Expr) (native.Type, error) {
	switch t := expr.(type) {
	case core.Builtin:
		if nt, ok := primitives[t]; ok {
			return nt, nil
		}
	case core.ListType:
		elem, err := MapAt(path.Elem(), t.Elem)
		if err != nil {
			return native.Type{}, err
		}

		return native.ListOf(elem), nil
	case core.OptionalType:
		elem, err := MapAt(path.Optional(), t.Elem)
		if err != nil {
			return native.Type{}, err
		}

		return native.OptionalOf(elem), nil
	}

	return native.Type{}, diagnostic.NewUnsupportedTypeError(path.String(), render(expr))
}

var primitives = map[core.Builtin]native.Type{
	core.Bool:    native.BoolType,
	core.Double:  native.Float64Type,
	core.Integer: native.SignedBigIntType,
	core.Natural: native.UnsignedBigIntType,
	core.Text:    native.StrType,
}

func render(expr core.Expr) string {
	if expr == nil {
		return "<missing type>"
	}

	return pretty.Render(expr)
}
