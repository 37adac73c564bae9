package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{BoolType, "Bool"},
		{Float64Type, "Float64"},
		{SignedBigIntType, "SignedBigInt"},
		{UnsignedBigIntType, "UnsignedBigInt"},
		{StrType, "Str"},
		{ListOf(OptionalOf(StrType)), "ListOf(OptionalOf(Str))"},
		{Type{Kind: KindList}, "ListOf(unknown)"},
		{Type{}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestType_Equal(t *testing.T) {
	assert.True(t, ListOf(BoolType).Equal(ListOf(BoolType)))
	assert.False(t, ListOf(BoolType).Equal(OptionalOf(BoolType)))
	assert.False(t, ListOf(BoolType).Equal(ListOf(StrType)))
	assert.False(t, ListOf(BoolType).Equal(Type{Kind: KindList}))
	assert.True(t, StrType.Equal(Type{Kind: KindStr}))
}

func TestDeclaration_Variant(t *testing.T) {
	decl := Declaration{
		Name: "Shape",
		Variants: []Variant{
			{Name: "Circle", Shape: RecordShape(Field{Name: "radius", Type: Float64Type})},
			{Name: "Label", Shape: SingleShape(StrType)},
			{Name: "Point", Shape: EmptyShape()},
		},
	}

	assert.Equal(t, []string{"Circle", "Label", "Point"}, decl.VariantNames())

	v, ok := decl.Variant("Label")
	assert.True(t, ok)
	assert.Equal(t, ShapeSingle, v.Shape.Kind)
	assert.Equal(t, StrType, *v.Shape.Single)

	_, ok = decl.Variant("Square")
	assert.False(t, ok)
}

func TestShapeKind_String(t *testing.T) {
	assert.Equal(t, "empty", ShapeEmpty.String())
	assert.Equal(t, "record", ShapeRecord.String())
	assert.Equal(t, "unknown", ShapeKind(7).String())
}
