package dhall

import (
	"math/big"

	"dhallgen/core"
	"dhallgen/internal/pretty"
)

func fn(from, to core.Expr) core.Expr {
	return core.Pi{Label: "_", Domain: from, Codomain: to}
}

// builtinTypes gives the type of every builtin the parser recognizes.
var builtinTypes = map[string]core.Expr{
	"Bool":     core.Type,
	"Natural":  core.Type,
	"Integer":  core.Type,
	"Double":   core.Type,
	"Text":     core.Type,
	"List":     fn(core.Type, core.Type),
	"Optional": fn(core.Type, core.Type),
	"None": core.Pi{
		Label:    "A",
		Domain:   core.Type,
		Codomain: core.OptionalType{Elem: core.Var{Name: "A"}},
	},

	"Natural/show":      fn(core.Natural, core.Text),
	"Natural/isZero":    fn(core.Natural, core.Bool),
	"Natural/even":      fn(core.Natural, core.Bool),
	"Natural/odd":       fn(core.Natural, core.Bool),
	"Natural/toInteger": fn(core.Natural, core.Integer),
	"Integer/show":      fn(core.Integer, core.Text),
	"Integer/negate":    fn(core.Integer, core.Integer),
	"Integer/clamp":     fn(core.Integer, core.Natural),
	"Integer/toDouble":  fn(core.Integer, core.Double),
	"Double/show":       fn(core.Double, core.Text),
	"Text/show":         fn(core.Text, core.Text),
}

// applyBuiltin evaluates a builtin applied to a normalized argument. It
// reports false when the argument is not a literal the builtin can
// consume.
func applyBuiltin(name core.Builtin, arg core.Expr) (core.Expr, bool) {
	switch name {
	case core.List:
		return core.ListType{Elem: arg}, true
	case core.Optional:
		return core.OptionalType{Elem: arg}, true
	case "None":
		return core.None{Type: arg}, true
	}

	switch a := arg.(type) {
	case core.NaturalLit:
		return naturalBuiltin(name, a.Value)
	case core.IntegerLit:
		return integerBuiltin(name, a.Value)
	case core.DoubleLit:
		if name == "Double/show" {
			return core.PlainText(pretty.FormatDouble(float64(a))), true
		}
	case core.TextLit:
		if s, ok := a.Plain(); ok && name == "Text/show" {
			return core.PlainText(pretty.QuoteText(s)), true
		}
	}

	return nil, false
}

func naturalBuiltin(name core.Builtin, n *big.Int) (core.Expr, bool) {
	switch name {
	case "Natural/show":
		return core.PlainText(n.String()), true
	case "Natural/isZero":
		return core.BoolLit(n.Sign() == 0), true
	case "Natural/even":
		return core.BoolLit(n.Bit(0) == 0), true
	case "Natural/odd":
		return core.BoolLit(n.Bit(0) == 1), true
	case "Natural/toInteger":
		return core.IntegerLit{Value: new(big.Int).Set(n)}, true
	}

	return nil, false
}

func integerBuiltin(name core.Builtin, n *big.Int) (core.Expr, bool) {
	switch name {
	case "Integer/show":
		return core.PlainText(pretty.FormatInteger(core.IntegerLit{Value: n})), true
	case "Integer/negate":
		return core.IntegerLit{Value: new(big.Int).Neg(n)}, true
	case "Integer/clamp":
		if n.Sign() < 0 {
			return core.NewNatural(0), true
		}

		return core.NaturalLit{Value: new(big.Int).Set(n)}, true
	case "Integer/toDouble":
		f, _ := new(big.Float).SetInt(n).Float64()
		return core.DoubleLit(f), true
	}

	return nil, false
}
