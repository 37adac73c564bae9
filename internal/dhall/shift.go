package dhall

import (
	"dhallgen/core"
)

// mapChildren rebuilds e with f applied to each direct child. Pi is handled
// by the callers because its codomain sits under a binder.
func mapChildren(e core.Expr, f func(core.Expr) core.Expr) core.Expr {
	switch x := e.(type) {
	case core.ListType:
		return core.ListType{Elem: f(x.Elem)}
	case core.OptionalType:
		return core.OptionalType{Elem: f(x.Elem)}
	case core.RecordType:
		return core.RecordType{Fields: mapFields(x.Fields, f)}
	case core.RecordLit:
		return core.RecordLit{Fields: mapFields(x.Fields, f)}
	case core.UnionType:
		return mapUnion(x, f)
	case core.UnionVal:
		v := core.UnionVal{Type: mapUnion(x.Type, f), Alternative: x.Alternative}
		if x.Payload != nil {
			v.Payload = f(x.Payload)
		}

		return v
	case core.UnionCtor:
		return core.UnionCtor{Type: mapUnion(x.Type, f), Alternative: x.Alternative}
	case core.ListLit:
		items := make([]core.Expr, len(x.Items))
		for i, item := range x.Items {
			items[i] = f(item)
		}

		return core.ListLit{Type: f(x.Type), Items: items}
	case core.Some:
		return core.Some{Value: f(x.Value)}
	case core.None:
		return core.None{Type: f(x.Type)}
	case core.TextLit:
		if len(x.Chunks) == 0 {
			return x
		}

		chunks := make([]core.Chunk, len(x.Chunks))
		for i, c := range x.Chunks {
			chunks[i] = core.Chunk{Prefix: c.Prefix, Expr: f(c.Expr)}
		}

		return core.TextLit{Chunks: chunks, Suffix: x.Suffix}
	default:
		return e
	}
}

func mapFields(fields core.Fields, f func(core.Expr) core.Expr) core.Fields {
	if fields == nil {
		return nil
	}

	out := make(core.Fields, len(fields))
	for i, fld := range fields {
		out[i] = core.Field{Name: fld.Name, Value: f(fld.Value)}
	}

	return out
}

func mapUnion(u core.UnionType, f func(core.Expr) core.Expr) core.UnionType {
	if u.Alternatives == nil {
		return u
	}

	alts := make(core.Alternatives, len(u.Alternatives))
	for i, a := range u.Alternatives {
		alts[i] = core.Alternative{Name: a.Name}
		if a.Type != nil {
			alts[i].Type = f(a.Type)
		}
	}

	return core.UnionType{Alternatives: alts}
}

// shift adds d to the index of every free occurrence of name whose index
// is at least cutoff.
func shift(e core.Expr, name string, d, cutoff int) core.Expr {
	switch x := e.(type) {
	case core.Var:
		if x.Name == name && x.Index >= cutoff {
			x.Index += d
		}

		return x
	case core.Pi:
		inner := cutoff
		if x.Label == name {
			inner++
		}

		return core.Pi{
			Label:    x.Label,
			Domain:   shift(x.Domain, name, d, cutoff),
			Codomain: shift(x.Codomain, name, d, inner),
		}
	default:
		return mapChildren(e, func(c core.Expr) core.Expr { return shift(c, name, d, cutoff) })
	}
}

// subst replaces name@idx with v.
func subst(e core.Expr, name string, idx int, v core.Expr) core.Expr {
	switch x := e.(type) {
	case core.Var:
		if x.Name == name && x.Index == idx {
			return v
		}

		return x
	case core.Pi:
		inner := idx
		if x.Label == name {
			inner++
		}

		return core.Pi{
			Label:    x.Label,
			Domain:   subst(x.Domain, name, idx, v),
			Codomain: subst(x.Codomain, name, inner, shift(v, x.Label, 1, 0)),
		}
	default:
		return mapChildren(e, func(c core.Expr) core.Expr { return subst(c, name, idx, v) })
	}
}

// instantiate applies the codomain of a Pi with the given label to arg.
func instantiate(codomain core.Expr, label string, arg core.Expr) core.Expr {
	return shift(subst(codomain, label, 0, shift(arg, label, 1, 0)), label, -1, 0)
}

// hasFreeVars reports whether e references a variable not bound inside it.
func hasFreeVars(e core.Expr) bool {
	return freeIn(e, nil)
}

func freeIn(e core.Expr, bound map[string]int) bool {
	switch x := e.(type) {
	case nil:
		return false
	case core.Var:
		return x.Index >= bound[x.Name]
	case core.Pi:
		if freeIn(x.Domain, bound) {
			return true
		}

		inner := make(map[string]int, len(bound)+1)
		for k, v := range bound {
			inner[k] = v
		}

		inner[x.Label]++

		return freeIn(x.Codomain, inner)
	}

	found := false

	mapChildren(e, func(c core.Expr) core.Expr {
		if !found && freeIn(c, bound) {
			found = true
		}

		return c
	})

	return found
}
