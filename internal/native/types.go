package native

import (
	"fmt"

	"dhallgen/internal/common"
)

// Kind represents the kind of a native type.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindFloat64
	KindSignedBigInt
	KindUnsignedBigInt
	KindStr
	KindList
	KindOptional
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindFloat64:
		return "Float64"
	case KindSignedBigInt:
		return "SignedBigInt"
	case KindUnsignedBigInt:
		return "UnsignedBigInt"
	case KindStr:
		return "Str"
	case KindList:
		return "ListOf"
	case KindOptional:
		return "OptionalOf"
	default:
		return common.UnknownStr
	}
}

// Type is a native type. Elem is set only for KindList and KindOptional.
type Type struct {
	Kind Kind
	Elem *Type
}

// Primitive native types.
var (
	BoolType           = Type{Kind: KindBool}
	Float64Type        = Type{Kind: KindFloat64}
	SignedBigIntType   = Type{Kind: KindSignedBigInt}
	UnsignedBigIntType = Type{Kind: KindUnsignedBigInt}
	StrType            = Type{Kind: KindStr}
)

// ListOf returns the list type with the given element type.
func ListOf(elem Type) Type {
	return Type{Kind: KindList, Elem: &elem}
}

// OptionalOf returns the optional type with the given element type.
func OptionalOf(elem Type) Type {
	return Type{Kind: KindOptional, Elem: &elem}
}

// IsComposite returns true for list and optional types.
func (t Type) IsComposite() bool {
	return t.Kind == KindList || t.Kind == KindOptional
}

// String returns the type in constructor notation, e.g. "ListOf(OptionalOf(Str))".
func (t Type) String() string {
	if t.IsComposite() {
		if t.Elem == nil {
			return t.Kind.String() + "(" + common.UnknownStr + ")"
		}

		return fmt.Sprintf("%s(%s)", t.Kind, t.Elem)
	}

	return t.Kind.String()
}

// Equal reports whether two native types are identical.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}

	if !t.IsComposite() {
		return true
	}

	if t.Elem == nil || other.Elem == nil {
		return t.Elem == other.Elem
	}

	return t.Elem.Equal(*other.Elem)
}

// MarshalYAML renders the type in constructor notation.
func (t Type) MarshalYAML() (any, error) {
	return t.String(), nil
}
