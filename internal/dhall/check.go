package dhall

import (
	"fmt"
	"math/big"
	"strings"

	"dhallgen/core"
	"dhallgen/internal/diagnostic"
	"dhallgen/internal/errors"
	"dhallgen/internal/pretty"
)

// entry is a name in scope. Forall binders have no value of their own;
// looking one up yields a core.Var.
type entry struct {
	name  string
	value core.Expr
	typ   core.Expr
	bound bool
}

type scope []entry

// with returns a new scope extended by e, never sharing the tail with s.
func (s scope) with(e entry) scope {
	return append(s[:len(s):len(s)], e)
}

// lookup finds name@index and shifts the result past the forall binders
// entered since it was bound.
func (s scope) lookup(name string, index int) (core.Expr, core.Expr, bool) {
	skip := index

	for i := len(s) - 1; i >= 0; i-- {
		if s[i].name != name {
			continue
		}

		if skip > 0 {
			skip--
			continue
		}

		e := s[i]
		val, typ := e.value, e.typ

		if e.bound {
			typ = shift(typ, e.name, 1, 0)

			n := 0
			for _, later := range s[i+1:] {
				if later.bound && later.name == name {
					n++
				}
			}

			val = core.Var{Name: name, Index: n}
		}

		for _, later := range s[i+1:] {
			if !later.bound {
				continue
			}

			typ = shift(typ, later.name, 1, 0)
			if !e.bound {
				val = shift(val, later.name, 1, 0)
			}
		}

		return val, typ, true
	}

	return nil, nil, false
}

func (s scope) names() []string {
	names := make([]string, 0, len(s))
	for _, e := range s {
		names = append(names, e.name)
	}

	return names
}

func (s scope) binders() []sortBinder {
	var bs []sortBinder

	for _, e := range s {
		if e.bound {
			bs = append(bs, sortBinder{label: e.name, domain: e.typ})
		}
	}

	return bs
}

// checker type-checks and normalizes a parsed term in one pass.
type checker struct {
	source string
}

const notClosedMessage = "expression does not normalize to a closed value"

func (c *checker) location(pos Pos) string {
	return c.source + ":" + pos.String()
}

func (c *checker) errorf(t Term, offending core.Expr, format string, args ...any) error {
	rendered := ""
	if offending != nil {
		rendered = pretty.Render(offending)
	}

	return diagnostic.NewResolutionError(
		diagnostic.PhaseTypecheck,
		c.location(t.Position()),
		fmt.Sprintf(format, args...),
		rendered,
		nil,
	)
}

func (c *checker) mismatch(t Term, expected, actual core.Expr) error {
	return c.errorf(t, nil, "type mismatch: expected %s, found %s",
		pretty.Render(expected), pretty.Render(actual))
}

func withSuggestion(err error, name string, candidates []string) error {
	if hint := suggest(name, candidates); hint != "" {
		return errors.WithHint(err, hint)
	}

	return err
}

// check infers a closed term and returns its normal form and type.
func (c *checker) check(t Term) (core.Expr, core.Expr, error) {
	return c.infer(nil, t)
}

func (c *checker) infer(s scope, t Term) (core.Expr, core.Expr, error) {
	switch x := t.(type) {
	case *Const:
		return c.inferConst(x)
	case *Builtin:
		return core.Builtin(x.Name), builtinTypes[x.Name], nil
	case *Var:
		v, typ, ok := s.lookup(x.Name, x.Index)
		if !ok {
			err := c.errorf(x, nil, "unbound variable %s", pretty.Label(x.Name))
			return nil, nil, withSuggestion(err, x.Name, s.names())
		}

		return v, typ, nil
	case *TextLit:
		return c.inferText(s, x)
	case *ListLit:
		return c.inferList(s, x)
	case *EmptyList:
		return c.inferEmptyList(s, x)
	case *RecordType:
		return c.inferRecordType(s, x)
	case *RecordLit:
		return c.inferRecordLit(s, x)
	case *UnionType:
		return c.inferUnionType(s, x)
	case *Let:
		return c.inferLet(s, x)
	case *If:
		return c.inferIf(s, x)
	case *Annot:
		return c.inferAnnot(s, x)
	case *Pi:
		return c.inferPi(s, x)
	case *Op:
		return c.inferOp(s, x)
	case *App:
		return c.inferApp(s, x)
	case *Some:
		return c.inferSome(s, x)
	case *Field:
		return c.inferField(s, x)
	case *Project:
		return c.inferProject(s, x)
	case *Resolved:
		return x.Value, x.Type, nil
	case *Import:
		return nil, nil, c.errorf(x, nil, "unresolved import %s", x.Target)
	default:
		return nil, nil, c.errorf(t, nil, "unexpected term %T", t)
	}
}

func (c *checker) inferConst(x *Const) (core.Expr, core.Expr, error) {
	switch v := x.Value.(type) {
	case core.Universe:
		if v == core.Sort {
			return nil, nil, c.errorf(x, v, "Sort has no type")
		}

		return v, v + 1, nil
	case core.BoolLit:
		return v, core.Bool, nil
	case core.NaturalLit:
		return v, core.Natural, nil
	case core.IntegerLit:
		return v, core.Integer, nil
	case core.DoubleLit:
		return v, core.Double, nil
	default:
		return nil, nil, c.errorf(x, v, "unexpected constant")
	}
}

func (c *checker) inferText(s scope, x *TextLit) (core.Expr, core.Expr, error) {
	var sb strings.Builder

	for _, chunk := range x.Chunks {
		v, typ, err := c.infer(s, chunk.Expr)
		if err != nil {
			return nil, nil, err
		}

		if !core.Equal(typ, core.Text) {
			return nil, nil, c.errorf(chunk.Expr, typ, "only Text can be interpolated")
		}

		str, ok := plainText(v)
		if !ok {
			return nil, nil, c.errorf(chunk.Expr, v, notClosedMessage)
		}

		sb.WriteString(chunk.Prefix)
		sb.WriteString(str)
	}

	sb.WriteString(x.Suffix)

	return core.PlainText(sb.String()), core.Text, nil
}

func plainText(v core.Expr) (string, bool) {
	t, ok := v.(core.TextLit)
	if !ok {
		return "", false
	}

	return t.Plain()
}

func (c *checker) requireTermType(s scope, t Term, typ core.Expr) error {
	if u, ok := sortIn(typ, s.binders()); !ok || u != core.Type {
		return c.errorf(t, typ, "expected a term whose type is a Type")
	}

	return nil
}

func (c *checker) inferList(s scope, x *ListLit) (core.Expr, core.Expr, error) {
	items := make([]core.Expr, 0, len(x.Items))

	var elem core.Expr

	for _, item := range x.Items {
		v, typ, err := c.infer(s, item)
		if err != nil {
			return nil, nil, err
		}

		if elem == nil {
			if err := c.requireTermType(s, item, typ); err != nil {
				return nil, nil, err
			}

			elem = typ
		} else if !core.Equal(elem, typ) {
			return nil, nil, c.mismatch(item, elem, typ)
		}

		items = append(items, v)
	}

	return core.ListLit{Type: elem, Items: items}, core.ListType{Elem: elem}, nil
}

func (c *checker) inferEmptyList(s scope, x *EmptyList) (core.Expr, core.Expr, error) {
	tv, _, err := c.infer(s, x.Type)
	if err != nil {
		return nil, nil, err
	}

	lt, ok := tv.(core.ListType)
	if !ok {
		return nil, nil, c.errorf(x, tv, "an empty list must be annotated with a List type")
	}

	return core.ListLit{Type: lt.Elem}, lt, nil
}

func (c *checker) inferRecordType(s scope, x *RecordType) (core.Expr, core.Expr, error) {
	fields := make(core.Fields, 0, len(x.Fields))
	u := core.Type

	for _, f := range x.Fields {
		if _, dup := fields.Lookup(f.Name); dup {
			return nil, nil, c.errorf(f.Value, nil, "duplicate field %s in record type", pretty.Label(f.Name))
		}

		v, typ, err := c.infer(s, f.Value)
		if err != nil {
			return nil, nil, err
		}

		fu, ok := typ.(core.Universe)
		if !ok {
			return nil, nil, c.errorf(f.Value, v, "the type of field %s is not a type", pretty.Label(f.Name))
		}

		u = max(u, fu)
		fields = append(fields, core.Field{Name: f.Name, Value: v})
	}

	return core.RecordType{Fields: fields}, u, nil
}

func (c *checker) inferRecordLit(s scope, x *RecordLit) (core.Expr, core.Expr, error) {
	values := make(core.Fields, 0, len(x.Fields))
	types := make(core.Fields, 0, len(x.Fields))

	for _, f := range x.Fields {
		v, typ, err := c.infer(s, f.Value)
		if err != nil {
			return nil, nil, err
		}

		i := fieldIndex(values, f.Name)
		if i < 0 {
			values = append(values, core.Field{Name: f.Name, Value: v})
			types = append(types, core.Field{Name: f.Name, Value: typ})

			continue
		}

		// Repeated fields merge like /\.
		merged, err := combineLit(core.Fields{values[i]}, core.Fields{{Name: f.Name, Value: v}})
		if err != nil {
			return nil, nil, c.errorf(f.Value, nil, "duplicate field %s: %s", pretty.Label(f.Name), err)
		}

		mergedTypes, err := combineTypes(core.Fields{types[i]}, core.Fields{{Name: f.Name, Value: typ}})
		if err != nil {
			return nil, nil, c.errorf(f.Value, nil, "duplicate field %s: %s", pretty.Label(f.Name), err)
		}

		values[i] = merged[0]
		types[i] = mergedTypes[0]
	}

	return core.RecordLit{Fields: values}, core.RecordType{Fields: types}, nil
}

func fieldIndex(fields core.Fields, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}

	return -1
}

func (c *checker) inferUnionType(s scope, x *UnionType) (core.Expr, core.Expr, error) {
	alts := make(core.Alternatives, 0, len(x.Alts))
	u := core.Type

	for _, a := range x.Alts {
		if _, dup := alts.Lookup(a.Name); dup {
			return nil, nil, c.errorf(x, nil, "duplicate alternative %s in union type", pretty.Label(a.Name))
		}

		alt := core.Alternative{Name: a.Name}

		if a.Type != nil {
			v, typ, err := c.infer(s, a.Type)
			if err != nil {
				return nil, nil, err
			}

			au, ok := typ.(core.Universe)
			if !ok {
				return nil, nil, c.errorf(a.Type, v, "the payload of alternative %s is not a type", pretty.Label(a.Name))
			}

			u = max(u, au)
			alt.Type = v
		}

		alts = append(alts, alt)
	}

	return core.UnionType{Alternatives: alts}, u, nil
}

func (c *checker) inferLet(s scope, x *Let) (core.Expr, core.Expr, error) {
	for _, b := range x.Bindings {
		v, typ, err := c.infer(s, b.Value)
		if err != nil {
			return nil, nil, err
		}

		if b.Annot != nil {
			want, _, err := c.infer(s, b.Annot)
			if err != nil {
				return nil, nil, err
			}

			if !core.Equal(want, typ) {
				return nil, nil, c.mismatch(b.Value, want, typ)
			}
		}

		s = s.with(entry{name: b.Name, value: v, typ: typ})
	}

	return c.infer(s, x.Body)
}

func (c *checker) inferIf(s scope, x *If) (core.Expr, core.Expr, error) {
	cond, condType, err := c.infer(s, x.Cond)
	if err != nil {
		return nil, nil, err
	}

	if !core.Equal(condType, core.Bool) {
		return nil, nil, c.mismatch(x.Cond, core.Bool, condType)
	}

	then, thenType, err := c.infer(s, x.Then)
	if err != nil {
		return nil, nil, err
	}

	els, elseType, err := c.infer(s, x.Else)
	if err != nil {
		return nil, nil, err
	}

	if !core.Equal(thenType, elseType) {
		return nil, nil, c.mismatch(x.Else, thenType, elseType)
	}

	if err := c.requireTermType(s, x.Then, thenType); err != nil {
		return nil, nil, err
	}

	b, ok := cond.(core.BoolLit)
	if !ok {
		return nil, nil, c.errorf(x.Cond, cond, notClosedMessage)
	}

	if b {
		return then, thenType, nil
	}

	return els, elseType, nil
}

func (c *checker) inferAnnot(s scope, x *Annot) (core.Expr, core.Expr, error) {
	want, wantType, err := c.infer(s, x.Type)
	if err != nil {
		return nil, nil, err
	}

	if _, ok := wantType.(core.Universe); !ok {
		return nil, nil, c.errorf(x.Type, want, "annotation is not a type")
	}

	v, typ, err := c.infer(s, x.Expr)
	if err != nil {
		return nil, nil, err
	}

	if !core.Equal(want, typ) {
		return nil, nil, c.mismatch(x.Expr, want, typ)
	}

	return v, want, nil
}

func (c *checker) inferPi(s scope, x *Pi) (core.Expr, core.Expr, error) {
	dom, domType, err := c.infer(s, x.Domain)
	if err != nil {
		return nil, nil, err
	}

	du, ok := domType.(core.Universe)
	if !ok {
		return nil, nil, c.errorf(x.Domain, dom, "function input is not a type")
	}

	cod, codType, err := c.infer(s.with(entry{name: x.Label, typ: dom, bound: true}), x.Codomain)
	if err != nil {
		return nil, nil, err
	}

	cu, ok := codType.(core.Universe)
	if !ok {
		return nil, nil, c.errorf(x.Codomain, cod, "function output is not a type")
	}

	return core.Pi{Label: x.Label, Domain: dom, Codomain: cod}, piSort(du, cu), nil
}

func (c *checker) inferSome(s scope, x *Some) (core.Expr, core.Expr, error) {
	v, typ, err := c.infer(s, x.Value)
	if err != nil {
		return nil, nil, err
	}

	if err := c.requireTermType(s, x.Value, typ); err != nil {
		return nil, nil, err
	}

	return core.Some{Value: v}, core.OptionalType{Elem: typ}, nil
}

func (c *checker) inferApp(s scope, x *App) (core.Expr, core.Expr, error) {
	fv, ft, err := c.infer(s, x.Fn)
	if err != nil {
		return nil, nil, err
	}

	av, at, err := c.infer(s, x.Arg)
	if err != nil {
		return nil, nil, err
	}

	pi, ok := ft.(core.Pi)
	if !ok {
		return nil, nil, c.errorf(x.Fn, fv, "only functions can be applied")
	}

	if !core.Equal(pi.Domain, at) {
		return nil, nil, c.mismatch(x.Arg, pi.Domain, at)
	}

	resultType := instantiate(pi.Codomain, pi.Label, av)

	switch f := fv.(type) {
	case core.Builtin:
		if v, ok := applyBuiltin(f, av); ok {
			return v, resultType, nil
		}
	case core.UnionCtor:
		return core.UnionVal{Type: f.Type, Alternative: f.Alternative, Payload: av}, resultType, nil
	}

	return nil, nil, c.errorf(x, fv, notClosedMessage)
}

func (c *checker) inferField(s scope, x *Field) (core.Expr, core.Expr, error) {
	rv, rt, err := c.infer(s, x.Record)
	if err != nil {
		return nil, nil, err
	}

	switch r := rv.(type) {
	case core.RecordLit:
		v, ok := r.Fields.Lookup(x.Name)
		if !ok {
			err := c.errorf(x, rt, "record has no field %s", pretty.Label(x.Name))
			return nil, nil, withSuggestion(err, x.Name, r.Fields.Names())
		}

		typ, _ := rt.(core.RecordType).Fields.Lookup(x.Name)

		return v, typ, nil
	case core.UnionType:
		alt, ok := r.Alternatives.Lookup(x.Name)
		if !ok {
			err := c.errorf(x, r, "union has no alternative %s", pretty.Label(x.Name))
			return nil, nil, withSuggestion(err, x.Name, r.Alternatives.Names())
		}

		if alt.Type == nil {
			return core.UnionVal{Type: r, Alternative: x.Name}, r, nil
		}

		return core.UnionCtor{Type: r, Alternative: x.Name}, fn(alt.Type, r), nil
	}

	if _, ok := rt.(core.RecordType); ok {
		return nil, nil, c.errorf(x.Record, rv, notClosedMessage)
	}

	return nil, nil, c.errorf(x.Record, rv, "only records and unions have fields")
}

func (c *checker) inferProject(s scope, x *Project) (core.Expr, core.Expr, error) {
	rv, rt, err := c.infer(s, x.Record)
	if err != nil {
		return nil, nil, err
	}

	r, ok := rv.(core.RecordLit)
	if !ok {
		return nil, nil, c.errorf(x.Record, rv, "only record values can be projected")
	}

	recordType, _ := rt.(core.RecordType)

	values := make(core.Fields, 0, len(x.Names))
	types := make(core.Fields, 0, len(x.Names))

	for _, name := range x.Names {
		if _, dup := values.Lookup(name); dup {
			return nil, nil, c.errorf(x, nil, "field %s is projected twice", pretty.Label(name))
		}

		v, ok := r.Fields.Lookup(name)
		if !ok {
			err := c.errorf(x, rt, "record has no field %s", pretty.Label(name))
			return nil, nil, withSuggestion(err, name, r.Fields.Names())
		}

		typ, _ := recordType.Fields.Lookup(name)
		values = append(values, core.Field{Name: name, Value: v})
		types = append(types, core.Field{Name: name, Value: typ})
	}

	return core.RecordLit{Fields: values}, core.RecordType{Fields: types}, nil
}

// sortBinder is a forall binder seen while computing the sort of a type.
type sortBinder struct {
	label  string
	domain core.Expr
}

// sortIn returns the universe a normalized type lives in.
func sortIn(t core.Expr, bs []sortBinder) (core.Universe, bool) {
	switch x := t.(type) {
	case core.Builtin:
		switch x {
		case core.Bool, core.Natural, core.Integer, core.Double, core.Text:
			return core.Type, true
		}
	case core.Universe:
		if x < core.Sort {
			return x + 1, true
		}
	case core.ListType, core.OptionalType:
		return core.Type, true
	case core.RecordType:
		u := core.Type

		for _, f := range x.Fields {
			fu, ok := sortIn(f.Value, bs)
			if !ok {
				return 0, false
			}

			u = max(u, fu)
		}

		return u, true
	case core.UnionType:
		u := core.Type

		for _, a := range x.Alternatives {
			if a.Type == nil {
				continue
			}

			au, ok := sortIn(a.Type, bs)
			if !ok {
				return 0, false
			}

			u = max(u, au)
		}

		return u, true
	case core.Pi:
		du, ok := sortIn(x.Domain, bs)
		if !ok {
			return 0, false
		}

		cu, ok := sortIn(x.Codomain, append(bs[:len(bs):len(bs)], sortBinder{label: x.Label, domain: x.Domain}))
		if !ok {
			return 0, false
		}

		return piSort(du, cu), true
	case core.Var:
		skip := x.Index

		for i := len(bs) - 1; i >= 0; i-- {
			if bs[i].label != x.Name {
				continue
			}

			if skip > 0 {
				skip--
				continue
			}

			u, ok := bs[i].domain.(core.Universe)

			return u, ok
		}
	}

	return 0, false
}

// piSort is the universe of a function type: functions returning terms
// are terms regardless of their input.
func piSort(dom, cod core.Universe) core.Universe {
	if cod == core.Type {
		return core.Type
	}

	return max(dom, cod)
}

func (c *checker) inferOp(s scope, x *Op) (core.Expr, core.Expr, error) {
	if x.Kind == OpAlt {
		return nil, nil, c.errorf(x, nil, "? can only be applied to imports")
	}

	lv, lt, err := c.infer(s, x.L)
	if err != nil {
		return nil, nil, err
	}

	rv, rt, err := c.infer(s, x.R)
	if err != nil {
		return nil, nil, err
	}

	switch x.Kind {
	case OpOr, OpAnd, OpEq, OpNeq:
		return c.boolOp(x, lv, lt, rv, rt)
	case OpPlus, OpTimes:
		return c.naturalOp(x, lv, lt, rv, rt)
	case OpTextAppend:
		if err := c.operandTypes(x, core.Text, lt, rt); err != nil {
			return nil, nil, err
		}

		l, lok := plainText(lv)
		r, rok := plainText(rv)

		if !lok || !rok {
			return nil, nil, c.errorf(x, nil, notClosedMessage)
		}

		return core.PlainText(l + r), core.Text, nil
	case OpListAppend:
		return c.listAppend(x, lv, lt, rv, rt)
	case OpPrefer, OpCombine:
		return c.recordOp(x, lv, lt, rv, rt)
	case OpCombineTypes:
		return c.combineTypesOp(x, lv, lt, rv, rt)
	default:
		return nil, nil, c.errorf(x, nil, "unknown operator %s", x.Kind)
	}
}

func (c *checker) operandTypes(x *Op, want, lt, rt core.Expr) error {
	if !core.Equal(lt, want) {
		return c.mismatch(x.L, want, lt)
	}

	if !core.Equal(rt, want) {
		return c.mismatch(x.R, want, rt)
	}

	return nil
}

func (c *checker) boolOp(x *Op, lv, lt, rv, rt core.Expr) (core.Expr, core.Expr, error) {
	if err := c.operandTypes(x, core.Bool, lt, rt); err != nil {
		return nil, nil, err
	}

	l, lok := lv.(core.BoolLit)
	r, rok := rv.(core.BoolLit)

	if !lok || !rok {
		return nil, nil, c.errorf(x, nil, notClosedMessage)
	}

	var v bool

	switch x.Kind {
	case OpOr:
		v = bool(l || r)
	case OpAnd:
		v = bool(l && r)
	case OpEq:
		v = l == r
	default:
		v = l != r
	}

	return core.BoolLit(v), core.Bool, nil
}

func (c *checker) naturalOp(x *Op, lv, lt, rv, rt core.Expr) (core.Expr, core.Expr, error) {
	if err := c.operandTypes(x, core.Natural, lt, rt); err != nil {
		return nil, nil, err
	}

	l, lok := lv.(core.NaturalLit)
	r, rok := rv.(core.NaturalLit)

	if !lok || !rok {
		return nil, nil, c.errorf(x, nil, notClosedMessage)
	}

	n := new(big.Int)
	if x.Kind == OpPlus {
		n.Add(l.Value, r.Value)
	} else {
		n.Mul(l.Value, r.Value)
	}

	return core.NaturalLit{Value: n}, core.Natural, nil
}

func (c *checker) listAppend(x *Op, lv, lt, rv, rt core.Expr) (core.Expr, core.Expr, error) {
	llt, ok := lt.(core.ListType)
	if !ok {
		return nil, nil, c.errorf(x.L, lt, "# expects lists")
	}

	if !core.Equal(lt, rt) {
		return nil, nil, c.mismatch(x.R, lt, rt)
	}

	l, lok := lv.(core.ListLit)
	r, rok := rv.(core.ListLit)

	if !lok || !rok {
		return nil, nil, c.errorf(x, nil, notClosedMessage)
	}

	items := make([]core.Expr, 0, len(l.Items)+len(r.Items))
	items = append(items, l.Items...)
	items = append(items, r.Items...)

	return core.ListLit{Type: llt.Elem, Items: items}, lt, nil
}

func (c *checker) recordOp(x *Op, lv, lt, rv, rt core.Expr) (core.Expr, core.Expr, error) {
	l, lok := lv.(core.RecordLit)
	r, rok := rv.(core.RecordLit)

	if !lok {
		return nil, nil, c.errorf(x.L, lv, "%s expects records", x.Kind)
	}

	if !rok {
		return nil, nil, c.errorf(x.R, rv, "%s expects records", x.Kind)
	}

	ltFields := lt.(core.RecordType).Fields
	rtFields := rt.(core.RecordType).Fields

	if x.Kind == OpPrefer {
		return core.RecordLit{Fields: prefer(l.Fields, r.Fields)},
			core.RecordType{Fields: prefer(ltFields, rtFields)}, nil
	}

	values, err := combineLit(l.Fields, r.Fields)
	if err != nil {
		return nil, nil, c.errorf(x, nil, "cannot combine records: %s", err)
	}

	types, err := combineTypes(ltFields, rtFields)
	if err != nil {
		return nil, nil, c.errorf(x, nil, "cannot combine records: %s", err)
	}

	return core.RecordLit{Fields: values}, core.RecordType{Fields: types}, nil
}

func (c *checker) combineTypesOp(x *Op, lv, lt, rv, rt core.Expr) (core.Expr, core.Expr, error) {
	l, lok := lv.(core.RecordType)
	r, rok := rv.(core.RecordType)

	if !lok {
		return nil, nil, c.errorf(x.L, lv, "%s expects record types", x.Kind)
	}

	if !rok {
		return nil, nil, c.errorf(x.R, rv, "%s expects record types", x.Kind)
	}

	fields, err := combineTypes(l.Fields, r.Fields)
	if err != nil {
		return nil, nil, c.errorf(x, nil, "cannot combine record types: %s", err)
	}

	return core.RecordType{Fields: fields}, max(lt.(core.Universe), rt.(core.Universe)), nil
}
