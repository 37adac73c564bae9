package core

import (
	"math"
	"math/big"
)

// Equal reports whether two expressions denote the same value.
//
// Record fields and union alternatives are compared by name, so two records
// that differ only in field order are equal. Doubles compare by bit pattern,
// which makes NaN equal to itself and keeps 0.0 and -0.0 apart. Bound
// variables compare by binder position, not by label.
func Equal(a, b Expr) bool {
	return equal(a, b, nil, nil)
}

func equal(a, b Expr, ctxA, ctxB []string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Tag() != b.Tag() {
		return false
	}

	switch x := a.(type) {
	case Builtin:
		return x == b.(Builtin)
	case Universe:
		return x == b.(Universe)
	case Var:
		y := b.(Var)
		la, boundA := level(x, ctxA)
		lb, boundB := level(y, ctxB)

		if boundA || boundB {
			return boundA && boundB && la == lb
		}

		return x == y
	case Pi:
		y := b.(Pi)

		return equal(x.Domain, y.Domain, ctxA, ctxB) &&
			equal(x.Codomain, y.Codomain, append(ctxA, x.Label), append(ctxB, y.Label))
	case ListType:
		return equal(x.Elem, b.(ListType).Elem, ctxA, ctxB)
	case OptionalType:
		return equal(x.Elem, b.(OptionalType).Elem, ctxA, ctxB)
	case RecordType:
		return equalFields(x.Fields, b.(RecordType).Fields, ctxA, ctxB)
	case UnionType:
		return equalAlternatives(x.Alternatives, b.(UnionType).Alternatives, ctxA, ctxB)
	case BoolLit:
		return x == b.(BoolLit)
	case NaturalLit:
		return equalInt(x.Value, b.(NaturalLit).Value)
	case IntegerLit:
		return equalInt(x.Value, b.(IntegerLit).Value)
	case DoubleLit:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(DoubleLit)))
	case TextLit:
		sa, okA := x.flatten()
		sb, okB := b.(TextLit).flatten()

		return okA && okB && sa == sb
	case ListLit:
		y := b.(ListLit)
		if len(x.Items) != len(y.Items) || !equal(x.Type, y.Type, ctxA, ctxB) {
			return false
		}

		for i := range x.Items {
			if !equal(x.Items[i], y.Items[i], ctxA, ctxB) {
				return false
			}
		}

		return true
	case Some:
		return equal(x.Value, b.(Some).Value, ctxA, ctxB)
	case None:
		return equal(x.Type, b.(None).Type, ctxA, ctxB)
	case RecordLit:
		return equalFields(x.Fields, b.(RecordLit).Fields, ctxA, ctxB)
	case UnionVal:
		y := b.(UnionVal)

		return x.Alternative == y.Alternative &&
			equalAlternatives(x.Type.Alternatives, y.Type.Alternatives, ctxA, ctxB) &&
			equal(x.Payload, y.Payload, ctxA, ctxB)
	case UnionCtor:
		y := b.(UnionCtor)

		return x.Alternative == y.Alternative &&
			equalAlternatives(x.Type.Alternatives, y.Type.Alternatives, ctxA, ctxB)
	default:
		return false
	}
}

// level returns the binder depth a variable refers to, counted from the
// outermost binder, or false when the variable is free.
func level(v Var, ctx []string) (int, bool) {
	skip := v.Index

	for i := len(ctx) - 1; i >= 0; i-- {
		if ctx[i] != v.Name {
			continue
		}

		if skip == 0 {
			return i, true
		}

		skip--
	}

	return 0, false
}

func equalInt(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.Cmp(b) == 0
}

func equalFields(a, b Fields, ctxA, ctxB []string) bool {
	if len(a) != len(b) {
		return false
	}

	for _, f := range a {
		other, ok := b.Lookup(f.Name)
		if !ok || !equal(f.Value, other, ctxA, ctxB) {
			return false
		}
	}

	return true
}

func equalAlternatives(a, b Alternatives, ctxA, ctxB []string) bool {
	if len(a) != len(b) {
		return false
	}

	for _, alt := range a {
		other, ok := b.Lookup(alt.Name)
		if !ok || !equal(alt.Type, other.Type, ctxA, ctxB) {
			return false
		}
	}

	return true
}
