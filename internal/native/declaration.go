package native

import (
	"dhallgen/internal/common"
)

// ShapeKind represents the payload shape of a variant.
type ShapeKind int

const (
	ShapeEmpty ShapeKind = iota
	ShapeSingle
	ShapeRecord
)

// String returns a human-readable representation of the ShapeKind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeEmpty:
		return "empty"
	case ShapeSingle:
		return "single"
	case ShapeRecord:
		return "record"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML renders the shape kind by name.
func (k ShapeKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Field is a named payload field of a record-shaped variant.
type Field struct {
	Name string `yaml:"name"`
	Type Type   `yaml:"type"`
}

// FieldShape is the payload of one variant: nothing, a single value, or an
// ordered list of named fields.
type FieldShape struct {
	Kind   ShapeKind `yaml:"kind"`
	Single *Type     `yaml:"single,omitempty"`
	Fields []Field   `yaml:"fields,omitempty"`
}

// EmptyShape returns the shape of a variant without payload.
func EmptyShape() FieldShape {
	return FieldShape{Kind: ShapeEmpty}
}

// SingleShape returns the shape of a variant carrying one value.
func SingleShape(t Type) FieldShape {
	return FieldShape{Kind: ShapeSingle, Single: &t}
}

// RecordShape returns the shape of a variant carrying named fields.
func RecordShape(fields ...Field) FieldShape {
	return FieldShape{Kind: ShapeRecord, Fields: fields}
}

// Variant is one constructor of a declaration.
type Variant struct {
	Name  string     `yaml:"name"`
	Shape FieldShape `yaml:"shape"`
}

// Declaration is a native sum type with one variant per union alternative,
// in source order.
type Declaration struct {
	Name     string    `yaml:"name"`
	Variants []Variant `yaml:"variants"`
}

// Variant returns the named variant.
func (d Declaration) Variant(name string) (Variant, bool) {
	for _, v := range d.Variants {
		if v.Name == name {
			return v, true
		}
	}

	return Variant{}, false
}

// VariantNames returns the constructor names in declaration order.
func (d Declaration) VariantNames() []string {
	names := make([]string, len(d.Variants))
	for i, v := range d.Variants {
		names[i] = v.Name
	}

	return names
}
