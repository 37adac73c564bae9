package core

import (
	"math/big"
)

//go:generate go tool stringer -type=Tag -trimprefix=Tag -output=tag_string.go

// Tag identifies the concrete kind of an Expr node.
type Tag int

const (
	_ Tag = iota // zero value is reserved as invalid

	TagBuiltin
	TagUniverse
	TagVar
	TagPi
	TagListType
	TagOptionalType
	TagRecordType
	TagUnionType
	TagBoolLit
	TagNaturalLit
	TagIntegerLit
	TagDoubleLit
	TagTextLit
	TagListLit
	TagSome
	TagNone
	TagRecordLit
	TagUnionVal
	TagUnionCtor
)

// Expr is a node of a closed, normalized expression tree.
type Expr interface {
	Tag() Tag
	isExpr()
}

// Builtin is a builtin type or function referenced by name.
type Builtin string

// Builtin types.
const (
	Bool     Builtin = "Bool"
	Natural  Builtin = "Natural"
	Integer  Builtin = "Integer"
	Double   Builtin = "Double"
	Text     Builtin = "Text"
	List     Builtin = "List"
	Optional Builtin = "Optional"
)

// Universe is one of the sorts Type, Kind and Sort.
type Universe int

const (
	Type Universe = iota
	Kind
	Sort
)

// String returns the universe name.
func (u Universe) String() string {
	switch u {
	case Type:
		return "Type"
	case Kind:
		return "Kind"
	case Sort:
		return "Sort"
	default:
		return "Universe(?)"
	}
}

// Var references a binder of an enclosing Pi by name. Index counts the
// binders of the same name to skip, innermost first.
type Var struct {
	Name  string
	Index int
}

// Pi is a function type. Label is "_" for non-dependent functions.
type Pi struct {
	Label    string
	Domain   Expr
	Codomain Expr
}

// ListType is the type List Elem.
type ListType struct{ Elem Expr }

// OptionalType is the type Optional Elem.
type OptionalType struct{ Elem Expr }

// Field is a named entry of a record type or record literal.
type Field struct {
	Name  string
	Value Expr
}

// Fields is an ordered list of record entries.
type Fields []Field

// Lookup returns the value of the named field.
func (fs Fields) Lookup(name string) (Expr, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// Names returns the field names in order.
func (fs Fields) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}

	return names
}

// RecordType is a record type such as { x : Bool }.
type RecordType struct{ Fields Fields }

// Alternative is a union alternative. Type is nil for alternatives without
// a payload.
type Alternative struct {
	Name string
	Type Expr
}

// Alternatives is an ordered list of union alternatives.
type Alternatives []Alternative

// Lookup returns the named alternative.
func (as Alternatives) Lookup(name string) (Alternative, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}

	return Alternative{}, false
}

// Names returns the alternative names in order.
func (as Alternatives) Names() []string {
	names := make([]string, len(as))
	for i, a := range as {
		names[i] = a.Name
	}

	return names
}

// UnionType is a union type such as < A : Bool | B >.
type UnionType struct{ Alternatives Alternatives }

// BoolLit is True or False.
type BoolLit bool

// NaturalLit is a non-negative integer of arbitrary size.
type NaturalLit struct{ Value *big.Int }

// IntegerLit is a signed integer of arbitrary size.
type IntegerLit struct{ Value *big.Int }

// DoubleLit is a 64-bit floating point number.
type DoubleLit float64

// Chunk is a piece of text followed by an interpolated expression.
type Chunk struct {
	Prefix string
	Expr   Expr
}

// TextLit is a text value. A normalized closed text has no chunks; build
// one with PlainText rather than by filling the fields.
type TextLit struct {
	Chunks []Chunk
	Suffix string
}

// ListLit is a list of values of element type Type.
type ListLit struct {
	Type  Expr
	Items []Expr
}

// Some is a present optional value.
type Some struct{ Value Expr }

// None is an absent optional value of element type Type.
type None struct{ Type Expr }

// RecordLit is a record value such as { x = True }.
type RecordLit struct{ Fields Fields }

// UnionVal selects Alternative of Type, applied to Payload when the
// alternative carries one.
type UnionVal struct {
	Type        UnionType
	Alternative string
	Payload     Expr
}

// UnionCtor is an alternative with a payload that has not been applied yet.
type UnionCtor struct {
	Type        UnionType
	Alternative string
}

func (Builtin) Tag() Tag      { return TagBuiltin }
func (Universe) Tag() Tag     { return TagUniverse }
func (Var) Tag() Tag          { return TagVar }
func (Pi) Tag() Tag           { return TagPi }
func (ListType) Tag() Tag     { return TagListType }
func (OptionalType) Tag() Tag { return TagOptionalType }
func (RecordType) Tag() Tag   { return TagRecordType }
func (UnionType) Tag() Tag    { return TagUnionType }
func (BoolLit) Tag() Tag      { return TagBoolLit }
func (NaturalLit) Tag() Tag   { return TagNaturalLit }
func (IntegerLit) Tag() Tag   { return TagIntegerLit }
func (DoubleLit) Tag() Tag    { return TagDoubleLit }
func (TextLit) Tag() Tag      { return TagTextLit }
func (ListLit) Tag() Tag      { return TagListLit }
func (Some) Tag() Tag         { return TagSome }
func (None) Tag() Tag         { return TagNone }
func (RecordLit) Tag() Tag    { return TagRecordLit }
func (UnionVal) Tag() Tag     { return TagUnionVal }
func (UnionCtor) Tag() Tag    { return TagUnionCtor }

func (Builtin) isExpr()      {}
func (Universe) isExpr()     {}
func (Var) isExpr()          {}
func (Pi) isExpr()           {}
func (ListType) isExpr()     {}
func (OptionalType) isExpr() {}
func (RecordType) isExpr()   {}
func (UnionType) isExpr()    {}
func (BoolLit) isExpr()      {}
func (NaturalLit) isExpr()   {}
func (IntegerLit) isExpr()   {}
func (DoubleLit) isExpr()    {}
func (TextLit) isExpr()      {}
func (ListLit) isExpr()      {}
func (Some) isExpr()         {}
func (None) isExpr()         {}
func (RecordLit) isExpr()    {}
func (UnionVal) isExpr()     {}
func (UnionCtor) isExpr()    {}
