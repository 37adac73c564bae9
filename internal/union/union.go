// Package union compiles union types into native sum-type declarations.
package union

import (
	"dhallgen/core"
	"dhallgen/internal/diagnostic"
	"dhallgen/internal/native"
	"dhallgen/internal/pretty"
	"dhallgen/internal/typemap"
)

// Compile builds a declaration named name from a union type, one variant per
// alternative in source order. Names are used verbatim.
//
// If any alternative cannot be mapped the whole union is rejected and no
// variants are returned.
func Compile(name string, expr core.Expr) (native.Declaration, error) {
	u, ok := expr.(core.UnionType)
	if !ok {
		rendered := "<missing expression>"
		if expr != nil {
			rendered = pretty.Render(expr)
		}

		return native.Declaration{}, diagnostic.NewNotAUnionError(name, rendered)
	}

	root := diagnostic.NewPath(name)
	variants := make([]native.Variant, 0, len(u.Alternatives))

	for _, alt := range u.Alternatives {
		shape, err := compileShape(root.Field(alt.Name), alt.Type)
		if err != nil {
			return native.Declaration{}, err
		}

		variants = append(variants, native.Variant{Name: alt.Name, Shape: shape})
	}

	return native.Declaration{Name: name, Variants: variants}, nil
}

func compileShape(path *diagnostic.Path, payload core.Expr) (native.FieldShape, error) {
	if payload == nil {
		return native.EmptyShape(), nil
	}

	record, ok := payload.(core.RecordType)
	if !ok {
		t, err := typemap.MapAt(path, payload)
		if err != nil {
			return native.FieldShape{}, err
		}

		return native.SingleShape(t), nil
	}

	fields := make([]native.Field, 0, len(record.Fields))

	for _, f := range record.Fields {
		t, err := typemap.MapAt(path.Field(f.Name), f.Value)
		if err != nil {
			return native.FieldShape{}, err
		}

		fields = append(fields, native.Field{Name: f.Name, Type: t})
	}

	return native.RecordShape(fields...), nil
}
