package union

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

func TestCompile(t *testing.T) {
	u := core.UnionType{Alternatives: core.Alternatives{
		{Name: "A", Type: core.RecordType{Fields: core.Fields{{Name: "x", Value: core.Bool}}}},
		{Name: "B"},
		{Name: "C", Type: core.ListType{Elem: core.Natural}},
	}}

	decl, err := Compile("T", u)
	require.NoError(t, err)

	assert.Equal(t, "T", decl.Name)
	assert.Equal(t, []string{"A", "B", "C"}, decl.VariantNames())

	a, _ := decl.Variant("A")
	assert.Equal(t, native.ShapeRecord, a.Shape.Kind)
	require.Len(t, a.Shape.Fields, 1)
	assert.Equal(t, "x", a.Shape.Fields[0].Name)
	assert.True(t, a.Shape.Fields[0].Type.Equal(native.BoolType))

	b, _ := decl.Variant("B")
	assert.Equal(t, native.ShapeEmpty, b.Shape.Kind)

	c, _ := decl.Variant("C")
	assert.Equal(t, native.ShapeSingle, c.Shape.Kind)
	require.NotNil(t, c.Shape.Single)
	assert.True(t, c.Shape.Single.Equal(native.ListOf(native.UnsignedBigIntType)))
}

func TestCompile_EmptyRecordPayloadIsRecordShape(t *testing.T) {
	decl, err := Compile("T", core.UnionType{Alternatives: core.Alternatives{{Name: "A", Type: core.RecordType{}}}})
	require.NoError(t, err)

	assert.Equal(t, native.ShapeRecord, decl.Variants[0].Shape.Kind)
	assert.Empty(t, decl.Variants[0].Shape.Fields)
}

func TestCompile_PreservesFieldOrder(t *testing.T) {
	u := core.UnionType{Alternatives: core.Alternatives{{Name: "A", Type: core.RecordType{Fields: core.Fields{
		{Name: "zeta", Value: core.Text},
		{Name: "alpha", Value: core.Double},
		{Name: "mid", Value: core.Integer},
	}}}}}

	decl, err := Compile("T", u)
	require.NoError(t, err)

	names := make([]string, 0, 3)
	for _, f := range decl.Variants[0].Shape.Fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestCompile_NotAUnion(t *testing.T) {
	for _, expr := range []core.Expr{
		core.RecordType{Fields: core.Fields{{Name: "x", Value: core.Bool}}},
		core.Bool,
		core.BoolLit(false),
		nil,
	} {
		_, err := Compile("T", expr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, diagnostic.ErrNotAUnion))
		assert.Contains(t, err.Error(), diagnostic.UnionExampleType)
	}
}

func TestCompile_UnsupportedAlternativeFailsWholeUnion(t *testing.T) {
	u := core.UnionType{Alternatives: core.Alternatives{
		{Name: "Good", Type: core.Bool},
		{Name: "Bad", Type: core.RecordType{Fields: core.Fields{
			{Name: "nested", Value: core.RecordType{}},
		}}},
		{Name: "Later"},
	}}

	decl, err := Compile("T", u)
	require.Error(t, err)
	assert.Empty(t, decl.Variants)
	assert.Empty(t, decl.Name)

	var unsupported *diagnostic.UnsupportedTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "T.Bad.nested", unsupported.Path)
}

func TestCompile_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	base := core.Alternatives{
		{Name: "A", Type: core.Bool},
		{Name: "B"},
		{Name: "C", Type: core.RecordType{Fields: core.Fields{{Name: "x", Value: core.Text}}}},
		{Name: "D", Type: core.OptionalType{Elem: core.Integer}},
		{Name: "E"},
	}

	properties.Property("swapping two alternatives swaps exactly those variants", prop.ForAll(
		func(i, j int) bool {
			swapped := append(core.Alternatives{}, base...)
			swapped[i], swapped[j] = swapped[j], swapped[i]

			before, err := Compile("T", core.UnionType{Alternatives: base})
			if err != nil {
				return false
			}

			after, err := Compile("T", core.UnionType{Alternatives: swapped})
			if err != nil {
				return false
			}

			want := before.VariantNames()
			want[i], want[j] = want[j], want[i]

			got := after.VariantNames()
			for k := range want {
				if want[k] != got[k] {
					return false
				}
			}

			return after.Variants[i].Shape.Kind == before.Variants[j].Shape.Kind &&
				after.Variants[j].Shape.Kind == before.Variants[i].Shape.Kind
		},
		gen.IntRange(0, len(base)-1),
		gen.IntRange(0, len(base)-1),
	))

	properties.Property("one unmappable alternative yields zero variants", prop.ForAll(
		func(at int) bool {
			alts := append(core.Alternatives{}, base...)
			alts[at] = core.Alternative{Name: alts[at].Name, Type: core.Pi{Label: "_", Domain: core.Bool, Codomain: core.Bool}}

			decl, err := Compile("T", core.UnionType{Alternatives: alts})

			return errors.Is(err, diagnostic.ErrUnsupportedType) && len(decl.Variants) == 0
		},
		gen.IntRange(0, len(base)-1),
	))

	properties.TestingRun(t)
}
