package typemap

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dhallgen/core"
	"dhallgen/internal/diagnostic"
	"dhallgen/internal/errors"
	"dhallgen/internal/native"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		expr core.Expr
		want native.Type
	}{
		{"bool", core.Bool, native.BoolType},
		{"double", core.Double, native.Float64Type},
		{"integer", core.Integer, native.SignedBigIntType},
		{"natural", core.Natural, native.UnsignedBigIntType},
		{"text", core.Text, native.StrType},
		{
			"list of optional text",
			core.ListType{Elem: core.OptionalType{Elem: core.Text}},
			native.ListOf(native.OptionalOf(native.StrType)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Map(tt.expr)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestMap_Unsupported(t *testing.T) {
	tests := []struct {
		name     string
		expr     core.Expr
		rendered string
	}{
		{"record", core.RecordType{Fields: core.Fields{{Name: "x", Value: core.Bool}}}, "{ x : Bool }"},
		{"union", core.UnionType{Alternatives: core.Alternatives{{Name: "A"}}}, "< A >"},
		{"function", core.Pi{Label: "_", Domain: core.Bool, Codomain: core.Bool}, "Bool -> Bool"},
		{"universe", core.Type, "Type"},
		{"unapplied builtin", core.List, "List"},
		{"value", core.BoolLit(true), "True"},
		{"nil", nil, "<missing type>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Map(tt.expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, diagnostic.ErrUnsupportedType))

			var unsupported *diagnostic.UnsupportedTypeError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, tt.rendered, unsupported.Rendered)
			assert.Contains(t, err.Error(), diagnostic.SupportedTypesMessage)
		})
	}
}

func TestMapAt_ReportsNestedPath(t *testing.T) {
	expr := core.ListType{Elem: core.OptionalType{Elem: core.RecordType{}}}

	_, err := MapAt(diagnostic.NewPath("T").Field("A").Field("x"), expr)
	require.Error(t, err)

	var unsupported *diagnostic.UnsupportedTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "T.A.x[]?", unsupported.Path)
	assert.Equal(t, "{}", unsupported.Rendered)
}

var leaves = []struct {
	expr   core.Expr
	native native.Type
}{
	{core.Bool, native.BoolType},
	{core.Double, native.Float64Type},
	{core.Integer, native.SignedBigIntType},
	{core.Natural, native.UnsignedBigIntType},
	{core.Text, native.StrType},
}

// wrap nests leaf inside List (true) and Optional (false) layers, outermost
// first.
func wrap(layers []bool, leaf int) (core.Expr, native.Type) {
	expr, want := leaves[leaf].expr, leaves[leaf].native

	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i] {
			expr, want = core.ListType{Elem: expr}, native.ListOf(want)
		} else {
			expr, want = core.OptionalType{Elem: expr}, native.OptionalOf(want)
		}
	}

	return expr, want
}

func TestMap_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("nested supported types mirror their nesting", prop.ForAll(
		func(layers []bool, leaf int) bool {
			expr, want := wrap(layers, leaf)

			got, err := Map(expr)

			return err == nil && got.Equal(want)
		},
		gen.SliceOf(gen.Bool()),
		gen.IntRange(0, len(leaves)-1),
	))

	properties.Property("records anywhere in the nesting are rejected", prop.ForAll(
		func(layers []bool, name string) bool {
			var expr core.Expr = core.RecordType{Fields: core.Fields{{Name: name, Value: core.Bool}}}

			for i := len(layers) - 1; i >= 0; i-- {
				if layers[i] {
					expr = core.ListType{Elem: expr}
				} else {
					expr = core.OptionalType{Elem: expr}
				}
			}

			_, err := Map(expr)

			return errors.Is(err, diagnostic.ErrUnsupportedType)
		},
		gen.SliceOf(gen.Bool()),
		gen.Identifier(),
	))

	properties.Property("function types are rejected", prop.ForAll(
		func(from, to int) bool {
			_, err := Map(core.Pi{Label: "_", Domain: leaves[from].expr, Codomain: leaves[to].expr})

			return errors.Is(err, diagnostic.ErrUnsupportedType)
		},
		gen.IntRange(0, len(leaves)-1),
		gen.IntRange(0, len(leaves)-1),
	))

	properties.TestingRun(t)
}
