package embed

import (
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"dhallgen/core"
	"dhallgen/internal/errors"
	"dhallgen/internal/pretty"
)

// Import paths used by generated fragments.
const (
	CoreImportPath = "dhallgen/core"
	mathImportPath = "math"
)

// ErrNotClosed is returned for values that still reference unbound
// variables or carry unresolved text interpolations.
var ErrNotClosed = errors.New("value is not closed")

// Fragment is a Go expression together with the imports it needs.
type Fragment struct {
	// Source is a single Go expression.
	Source string
	// Imports lists import paths in sorted order.
	Imports []string
}

// Embed encodes v as a Go expression. The result is deterministic: the
// same value always yields byte-identical source.
func Embed(v core.Expr) (Fragment, error) {
	enc := &encoder{imports: map[string]bool{CoreImportPath: true}}

	if err := enc.visit(v); err != nil {
		return Fragment{}, err
	}

	imports := make([]string, 0, len(enc.imports))
	for path := range enc.imports {
		imports = append(imports, path)
	}

	slices.Sort(imports)

	return Fragment{Source: enc.sb.String(), Imports: imports}, nil
}

type encoder struct {
	sb      strings.Builder
	imports map[string]bool
	// binders holds the labels of enclosing Pi nodes, innermost last.
	binders []string
}

func (e *encoder) write(parts ...string) {
	for _, p := range parts {
		e.sb.WriteString(p)
	}
}

// visit dispatches on the node tag.
func (e *encoder) visit(v core.Expr) error {
	if v == nil {
		return errors.New("cannot embed a missing expression")
	}

	switch v.Tag() {
	case core.TagBuiltin:
		return e.visitBuiltin(v.(core.Builtin))
	case core.TagUniverse:
		return e.visitUniverse(v.(core.Universe))
	case core.TagVar:
		return e.visitVar(v.(core.Var))
	case core.TagPi:
		return e.visitPi(v.(core.Pi))
	case core.TagListType:
		return e.visitWrapper("core.ListType{Elem: ", v.(core.ListType).Elem)
	case core.TagOptionalType:
		return e.visitWrapper("core.OptionalType{Elem: ", v.(core.OptionalType).Elem)
	case core.TagRecordType:
		return e.visitFields("core.RecordType", v.(core.RecordType).Fields)
	case core.TagUnionType:
		return e.visitUnionType(v.(core.UnionType))
	case core.TagBoolLit:
		e.write("core.BoolLit(", strconv.FormatBool(bool(v.(core.BoolLit))), ")")
		return nil
	case core.TagNaturalLit:
		return e.visitNumber("core.MustNatural(", v.(core.NaturalLit).Value, v.Tag())
	case core.TagIntegerLit:
		return e.visitNumber("core.MustInteger(", v.(core.IntegerLit).Value, v.Tag())
	case core.TagDoubleLit:
		return e.visitDouble(float64(v.(core.DoubleLit)))
	case core.TagTextLit:
		return e.visitText(v.(core.TextLit))
	case core.TagListLit:
		return e.visitList(v.(core.ListLit))
	case core.TagSome:
		return e.visitWrapper("core.Some{Value: ", v.(core.Some).Value)
	case core.TagNone:
		return e.visitWrapper("core.None{Type: ", v.(core.None).Type)
	case core.TagRecordLit:
		return e.visitFields("core.RecordLit", v.(core.RecordLit).Fields)
	case core.TagUnionVal:
		return e.visitUnionVal(v.(core.UnionVal))
	case core.TagUnionCtor:
		return e.visitUnionCtor(v.(core.UnionCtor))
	default:
		return errors.Newf("cannot embed expression of kind %s", v.Tag())
	}
}

func (e *encoder) visitNumber(open string, n *big.Int, tag core.Tag) error {
	if n == nil {
		return errors.Newf("cannot embed %s without a value", tag)
	}

	e.write(open, strconv.Quote(n.String()), ")")

	return nil
}

var builtinNames = map[core.Builtin]string{
	core.Bool:     "core.Bool",
	core.Natural:  "core.Natural",
	core.Integer:  "core.Integer",
	core.Double:   "core.Double",
	core.Text:     "core.Text",
	core.List:     "core.List",
	core.Optional: "core.Optional",
}

func (e *encoder) visitBuiltin(b core.Builtin) error {
	if name, ok := builtinNames[b]; ok {
		e.write(name)
		return nil
	}

	e.write("core.Builtin(", strconv.Quote(string(b)), ")")

	return nil
}

func (e *encoder) visitUniverse(u core.Universe) error {
	switch u {
	case core.Type, core.Kind, core.Sort:
		e.write("core.", u.String())
		return nil
	default:
		return errors.Newf("cannot embed universe %d", int(u))
	}
}

func (e *encoder) visitVar(v core.Var) error {
	skip := v.Index
	bound := false

	for i := len(e.binders) - 1; i >= 0 && !bound; i-- {
		if e.binders[i] != v.Name {
			continue
		}

		if skip == 0 {
			bound = true
		}

		skip--
	}

	if !bound {
		return errors.WithHint(
			errors.Wrapf(ErrNotClosed, "variable %s@%d is not bound", v.Name, v.Index),
			"only fully resolved values can be embedded",
		)
	}

	e.write("core.Var{Name: ", strconv.Quote(v.Name), ", Index: ", strconv.Itoa(v.Index), "}")

	return nil
}

func (e *encoder) visitPi(p core.Pi) error {
	e.write("core.Pi{Label: ", strconv.Quote(p.Label), ", Domain: ")

	if err := e.visit(p.Domain); err != nil {
		return err
	}

	e.write(", Codomain: ")

	e.binders = append(e.binders, p.Label)
	err := e.visit(p.Codomain)
	e.binders = e.binders[:len(e.binders)-1]

	if err != nil {
		return err
	}

	e.write("}")

	return nil
}

// visitWrapper encodes a single-field composite literal whose opening is
// given in prefix.
func (e *encoder) visitWrapper(prefix string, child core.Expr) error {
	e.write(prefix)

	if err := e.visit(child); err != nil {
		return err
	}

	e.write("}")

	return nil
}

func (e *encoder) visitFields(typeName string, fields core.Fields) error {
	if len(fields) == 0 {
		e.write(typeName, "{}")
		return nil
	}

	e.write(typeName, "{Fields: core.Fields{")

	for i, f := range fields {
		if i > 0 {
			e.write(", ")
		}

		e.write("{Name: ", strconv.Quote(f.Name), ", Value: ")

		if err := e.visit(f.Value); err != nil {
			return err
		}

		e.write("}")
	}

	e.write("}}")

	return nil
}

func (e *encoder) visitUnionType(u core.UnionType) error {
	if len(u.Alternatives) == 0 {
		e.write("core.UnionType{}")
		return nil
	}

	e.write("core.UnionType{Alternatives: core.Alternatives{")

	for i, a := range u.Alternatives {
		if i > 0 {
			e.write(", ")
		}

		e.write("{Name: ", strconv.Quote(a.Name))

		if a.Type != nil {
			e.write(", Type: ")

			if err := e.visit(a.Type); err != nil {
				return err
			}
		}

		e.write("}")
	}

	e.write("}}")

	return nil
}

func (e *encoder) visitUnionVal(u core.UnionVal) error {
	e.write("core.UnionVal{Type: ")

	if err := e.visitUnionType(u.Type); err != nil {
		return err
	}

	e.write(", Alternative: ", strconv.Quote(u.Alternative))

	if u.Payload != nil {
		e.write(", Payload: ")

		if err := e.visit(u.Payload); err != nil {
			return err
		}
	}

	e.write("}")

	return nil
}

func (e *encoder) visitUnionCtor(u core.UnionCtor) error {
	e.write("core.UnionCtor{Type: ")

	if err := e.visitUnionType(u.Type); err != nil {
		return err
	}

	e.write(", Alternative: ", strconv.Quote(u.Alternative), "}")

	return nil
}

func (e *encoder) visitDouble(f float64) error {
	switch {
	case math.IsNaN(f):
		e.imports[mathImportPath] = true
		e.write("core.DoubleLit(math.NaN())")
	case math.IsInf(f, 1):
		e.imports[mathImportPath] = true
		e.write("core.DoubleLit(math.Inf(1))")
	case math.IsInf(f, -1):
		e.imports[mathImportPath] = true
		e.write("core.DoubleLit(math.Inf(-1))")
	case f == 0 && math.Signbit(f):
		e.imports[mathImportPath] = true
		e.write("core.DoubleLit(math.Copysign(0, -1))")
	default:
		e.write("core.DoubleLit(", strconv.FormatFloat(f, 'g', -1, 64), ")")
	}

	return nil
}

// visitText is the named exception to structural encoding: text becomes a
// plain Go string literal passed through core.PlainText.
func (e *encoder) visitText(t core.TextLit) error {
	s, ok := t.Plain()
	if !ok {
		return errors.WithDetail(
			errors.Wrap(ErrNotClosed, "text still contains interpolations"),
			pretty.Render(t),
		)
	}

	e.write("core.PlainText(", strconv.Quote(s), ")")

	return nil
}

func (e *encoder) visitList(l core.ListLit) error {
	e.write("core.ListLit{Type: ")

	if err := e.visit(l.Type); err != nil {
		return err
	}

	if len(l.Items) > 0 {
		e.write(", Items: []core.Expr{")

		for i, item := range l.Items {
			if i > 0 {
				e.write(", ")
			}

			if err := e.visit(item); err != nil {
				return err
			}
		}

		e.write("}")
	}

	e.write("}")

	return nil
}
