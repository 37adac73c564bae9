package dhall

import (
	"fmt"

	"dhallgen/core"
)

// Pos is a 1-based line and column in a source.
type Pos struct {
	Line int
	Col  int
}

// String returns "line:col".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Term is a node of the parsed, not yet resolved expression.
type Term interface {
	Position() Pos
}

type node struct{ pos Pos }

func (n node) Position() Pos { return n.pos }

// OpKind identifies a binary operator.
type OpKind int

const (
	OpAlt OpKind = iota
	OpOr
	OpPlus
	OpTextAppend
	OpListAppend
	OpAnd
	OpCombine
	OpPrefer
	OpCombineTypes
	OpTimes
	OpEq
	OpNeq
)

var opSymbols = map[OpKind]string{
	OpAlt:          "?",
	OpOr:           "||",
	OpPlus:         "+",
	OpTextAppend:   "++",
	OpListAppend:   "#",
	OpAnd:          "&&",
	OpCombine:      "/\\",
	OpPrefer:       "//",
	OpCombineTypes: "//\\\\",
	OpTimes:        "*",
	OpEq:           "==",
	OpNeq:          "!=",
}

// String returns the operator symbol.
func (k OpKind) String() string {
	if s, ok := opSymbols[k]; ok {
		return s
	}

	return fmt.Sprintf("OpKind(%d)", int(k))
}

// ImportKind is where an import is fetched from.
type ImportKind int

const (
	ImportLocal ImportKind = iota
	ImportEnv
	ImportRemote
	ImportMissing
)

// ImportMode is how an import's contents are interpreted.
type ImportMode int

const (
	ModeCode ImportMode = iota
	ModeText
	ModeLocation
)

type (
	// Var references a let or forall binder.
	Var struct {
		node
		Name  string
		Index int
	}

	// Builtin references a builtin type or function by name.
	Builtin struct {
		node
		Name string
	}

	// Const is a literal already in normal form: booleans, numbers and
	// universes.
	Const struct {
		node
		Value core.Expr
	}

	// TextChunk is text followed by an interpolation.
	TextChunk struct {
		Prefix string
		Expr   Term
	}

	// TextLit is a text literal with interpolations.
	TextLit struct {
		node
		Chunks []TextChunk
		Suffix string
	}

	// ListLit is a non-empty list literal.
	ListLit struct {
		node
		Items []Term
	}

	// EmptyList is "[] : T".
	EmptyList struct {
		node
		Type Term
	}

	// FieldTerm is one entry of a record literal or record type.
	FieldTerm struct {
		Pos   Pos
		Name  string
		Value Term
	}

	// RecordType is "{ a : T, ... }".
	RecordType struct {
		node
		Fields []FieldTerm
	}

	// RecordLit is "{ a = v, ... }".
	RecordLit struct {
		node
		Fields []FieldTerm
	}

	// AltTerm is one alternative of a union type. Type is nil when the
	// alternative has no payload.
	AltTerm struct {
		Pos  Pos
		Name string
		Type Term
	}

	// UnionType is "< A : T | B >".
	UnionType struct {
		node
		Alts []AltTerm
	}

	// Binding is one "let name : annot = value".
	Binding struct {
		Pos   Pos
		Name  string
		Annot Term
		Value Term
	}

	// Let is a chain of bindings followed by a body.
	Let struct {
		node
		Bindings []Binding
		Body     Term
	}

	// If is "if c then a else b".
	If struct {
		node
		Cond Term
		Then Term
		Else Term
	}

	// Annot is "e : T".
	Annot struct {
		node
		Expr Term
		Type Term
	}

	// Pi is "forall (x : A) -> B", or "A -> B" with label "_".
	Pi struct {
		node
		Label    string
		Domain   Term
		Codomain Term
	}

	// Op is a binary operator application.
	Op struct {
		node
		Kind OpKind
		L    Term
		R    Term
	}

	// App is function application.
	App struct {
		node
		Fn  Term
		Arg Term
	}

	// Some is "Some v".
	Some struct {
		node
		Value Term
	}

	// Field is "r.name".
	Field struct {
		node
		Record Term
		Name   string
	}

	// Project is "r.{ a, b }".
	Project struct {
		node
		Record Term
		Names  []string
	}

	// Import is an unresolved import.
	Import struct {
		node
		Kind   ImportKind
		Target string
		Mode   ImportMode
		Hash   string
	}

	// Resolved replaces an Import once it has been fetched and checked.
	Resolved struct {
		node
		Value core.Expr
		Type  core.Expr
	}
)
