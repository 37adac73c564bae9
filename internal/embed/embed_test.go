package embed

import (
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dhallgen/core"
	"dhallgen/internal/errors"
)

func TestEmbed_RoundTrip(t *testing.T) {
	point := core.UnionType{Alternatives: core.Alternatives{
		{Name: "Origin"},
		{Name: "At", Type: core.RecordType{Fields: core.Fields{{Name: "x", Value: core.Double}}}},
	}}

	tests := []struct {
		name  string
		value core.Expr
	}{
		{"true", core.BoolLit(true)},
		{"false", core.BoolLit(false)},
		{"natural", core.NewNatural(42)},
		{"huge natural", core.MustNatural("123456789012345678901234567890")},
		{"negative integer", core.NewInteger(-7)},
		{"positive integer", core.NewInteger(7)},
		{"double", core.DoubleLit(1.5)},
		{"negative double", core.DoubleLit(-2e3)},
		{"tiny double", core.DoubleLit(5e-324)},
		{"nan", core.DoubleLit(math.NaN())},
		{"infinity", core.DoubleLit(math.Inf(1))},
		{"negative infinity", core.DoubleLit(math.Inf(-1))},
		{"negative zero", core.DoubleLit(math.Copysign(0, -1))},
		{"ascii text", core.PlainText("hello")},
		{"non-ascii text", core.PlainText("héllo wörld ✓ 😀\n\t\"q\"")},
		{"empty list", core.ListLit{Type: core.Natural}},
		{"list", core.ListLit{Type: core.Text, Items: []core.Expr{core.PlainText("a"), core.PlainText("b")}}},
		{"some", core.Some{Value: core.NewNatural(1)}},
		{"none", core.None{Type: core.ListType{Elem: core.Bool}}},
		{"empty record", core.RecordLit{}},
		{"record", core.RecordLit{Fields: core.Fields{
			{Name: "port", Value: core.NewNatural(8080)},
			{Name: "host", Value: core.PlainText("localhost")},
			{Name: "tls", Value: core.RecordLit{Fields: core.Fields{{Name: "enabled", Value: core.BoolLit(false)}}}},
		}}},
		{"union value", core.UnionVal{Type: point, Alternative: "Origin"}},
		{"union payload", core.UnionVal{Type: point, Alternative: "At", Payload: core.RecordLit{Fields: core.Fields{
			{Name: "x", Value: core.DoubleLit(0.25)},
		}}}},
		{"union constructor", core.UnionCtor{Type: point, Alternative: "At"}},
		{"record type", core.RecordType{Fields: core.Fields{{Name: "a", Value: core.OptionalType{Elem: core.Integer}}}}},
		{"union type", point},
		{"universe", core.Kind},
		{"builtin", core.Optional},
		{"dependent function", core.Pi{
			Label:    "a",
			Domain:   core.Type,
			Codomain: core.Pi{Label: "_", Domain: core.Var{Name: "a"}, Codomain: core.ListType{Elem: core.Var{Name: "a"}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := Embed(tt.value)
			require.NoError(t, err)
			assert.Contains(t, frag.Imports, CoreImportPath)

			expr, err := parser.ParseExpr(frag.Source)
			require.NoError(t, err, frag.Source)

			got := evalFragment(t, expr)
			assert.True(t, core.Equal(tt.value, got), "source %s", frag.Source)
		})
	}
}

func TestEmbed_Deterministic(t *testing.T) {
	v := core.RecordLit{Fields: core.Fields{
		{Name: "b", Value: core.DoubleLit(math.NaN())},
		{Name: "a", Value: core.ListLit{Type: core.Text, Items: []core.Expr{core.PlainText("x")}}},
	}}

	first, err := Embed(v)
	require.NoError(t, err)

	for range 10 {
		again, err := Embed(v)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	assert.Equal(t, []string{CoreImportPath, "math"}, first.Imports)
}

func TestEmbed_TextUsesPlainText(t *testing.T) {
	frag, err := Embed(core.PlainText("a\"b"))
	require.NoError(t, err)
	assert.Equal(t, `core.PlainText("a\"b")`, frag.Source)
}

func TestEmbed_RejectsOpenValues(t *testing.T) {
	tests := []struct {
		name  string
		value core.Expr
	}{
		{"free variable", core.Var{Name: "x"}},
		{"escaping index", core.Pi{Label: "x", Domain: core.Type, Codomain: core.Var{Name: "x", Index: 1}}},
		{"interpolated text", core.TextLit{Chunks: []core.Chunk{{Prefix: "a", Expr: core.Var{Name: "x"}}}}},
		{"nested", core.ListLit{Type: core.Bool, Items: []core.Expr{core.Var{Name: "y"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Embed(tt.value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotClosed))
		})
	}
}

func TestEmbed_RejectsNil(t *testing.T) {
	_, err := Embed(nil)
	require.Error(t, err)
}

func TestEmbed_RejectsNumbersWithoutValue(t *testing.T) {
	tests := []struct {
		name  string
		value core.Expr
	}{
		{"natural", core.NaturalLit{}},
		{"integer", core.IntegerLit{}},
		{"nested", core.RecordLit{Fields: core.Fields{{Name: "n", Value: core.NaturalLit{}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Embed(tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "without a value")
		})
	}
}

// evalFragment interprets the subset of Go that Embed produces.
func evalFragment(t *testing.T, e ast.Expr) core.Expr {
	t.Helper()

	switch x := e.(type) {
	case *ast.SelectorExpr:
		return evalName(t, x)
	case *ast.CallExpr:
		return evalCall(t, x)
	case *ast.CompositeLit:
		return evalComposite(t, qualified(t, x.Type), x)
	default:
		t.Fatalf("unexpected node %T", e)
		return nil
	}
}

func qualified(t *testing.T, e ast.Expr) string {
	t.Helper()

	sel, ok := e.(*ast.SelectorExpr)
	require.True(t, ok, "expected qualified name, got %T", e)

	pkg, ok := sel.X.(*ast.Ident)
	require.True(t, ok)

	return pkg.Name + "." + sel.Sel.Name
}

func evalName(t *testing.T, sel *ast.SelectorExpr) core.Expr {
	t.Helper()

	switch name := qualified(t, sel); name {
	case "core.Type":
		return core.Type
	case "core.Kind":
		return core.Kind
	case "core.Sort":
		return core.Sort
	default:
		for b, n := range builtinNames {
			if n == name {
				return b
			}
		}
	}

	t.Fatalf("unknown name %s", qualified(t, sel))

	return nil
}

func stringArg(t *testing.T, call *ast.CallExpr) string {
	t.Helper()
	require.Len(t, call.Args, 1)

	lit, ok := call.Args[0].(*ast.BasicLit)
	require.True(t, ok)
	require.Equal(t, token.STRING, lit.Kind)

	s, err := strconv.Unquote(lit.Value)
	require.NoError(t, err)

	return s
}

func evalCall(t *testing.T, call *ast.CallExpr) core.Expr {
	t.Helper()

	switch name := qualified(t, call.Fun); name {
	case "core.BoolLit":
		ident, ok := call.Args[0].(*ast.Ident)
		require.True(t, ok)

		return core.BoolLit(ident.Name == "true")
	case "core.MustNatural":
		return core.MustNatural(stringArg(t, call))
	case "core.MustInteger":
		return core.MustInteger(stringArg(t, call))
	case "core.PlainText":
		return core.PlainText(stringArg(t, call))
	case "core.Builtin":
		return core.Builtin(stringArg(t, call))
	case "core.DoubleLit":
		return core.DoubleLit(evalFloat(t, call.Args[0]))
	default:
		t.Fatalf("unknown call %s", name)
		return nil
	}
}

func evalFloat(t *testing.T, e ast.Expr) float64 {
	t.Helper()

	switch x := e.(type) {
	case *ast.BasicLit:
		f, err := strconv.ParseFloat(x.Value, 64)
		require.NoError(t, err)

		return f
	case *ast.UnaryExpr:
		require.Equal(t, token.SUB, x.Op)
		return -evalFloat(t, x.X)
	case *ast.CallExpr:
		switch name := qualified(t, x.Fun); name {
		case "math.NaN":
			return math.NaN()
		case "math.Inf":
			return math.Inf(int(evalFloat(t, x.Args[0])))
		case "math.Copysign":
			return math.Copysign(evalFloat(t, x.Args[0]), evalFloat(t, x.Args[1]))
		default:
			t.Fatalf("unknown float call %s", name)
		}
	}

	t.Fatalf("unexpected float node %T", e)

	return 0
}

// keyed returns the elements of a keyed composite literal.
func keyed(t *testing.T, lit *ast.CompositeLit) map[string]ast.Expr {
	t.Helper()

	out := map[string]ast.Expr{}

	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		require.True(t, ok)

		key, ok := kv.Key.(*ast.Ident)
		require.True(t, ok)

		out[key.Name] = kv.Value
	}

	return out
}

func stringLit(t *testing.T, e ast.Expr) string {
	t.Helper()

	lit, ok := e.(*ast.BasicLit)
	require.True(t, ok)

	s, err := strconv.Unquote(lit.Value)
	require.NoError(t, err)

	return s
}

func optional(t *testing.T, kv map[string]ast.Expr, key string) core.Expr {
	t.Helper()

	if e, ok := kv[key]; ok {
		return evalFragment(t, e)
	}

	return nil
}

func evalFields(t *testing.T, e ast.Expr) core.Fields {
	t.Helper()

	if e == nil {
		return nil
	}

	lit, ok := e.(*ast.CompositeLit)
	require.True(t, ok)

	var fields core.Fields

	for _, elt := range lit.Elts {
		kv := keyed(t, elt.(*ast.CompositeLit))
		fields = append(fields, core.Field{Name: stringLit(t, kv["Name"]), Value: evalFragment(t, kv["Value"])})
	}

	return fields
}

func evalUnionType(t *testing.T, e ast.Expr) core.UnionType {
	t.Helper()

	lit, ok := e.(*ast.CompositeLit)
	require.True(t, ok)

	alts, ok := keyed(t, lit)["Alternatives"]
	if !ok {
		return core.UnionType{}
	}

	var u core.UnionType

	for _, elt := range alts.(*ast.CompositeLit).Elts {
		kv := keyed(t, elt.(*ast.CompositeLit))
		u.Alternatives = append(u.Alternatives, core.Alternative{
			Name: stringLit(t, kv["Name"]),
			Type: optional(t, kv, "Type"),
		})
	}

	return u
}

func evalComposite(t *testing.T, typeName string, lit *ast.CompositeLit) core.Expr {
	t.Helper()

	kv := keyed(t, lit)

	switch typeName {
	case "core.ListType":
		return core.ListType{Elem: evalFragment(t, kv["Elem"])}
	case "core.OptionalType":
		return core.OptionalType{Elem: evalFragment(t, kv["Elem"])}
	case "core.Some":
		return core.Some{Value: evalFragment(t, kv["Value"])}
	case "core.None":
		return core.None{Type: evalFragment(t, kv["Type"])}
	case "core.RecordType":
		return core.RecordType{Fields: evalFields(t, kv["Fields"])}
	case "core.RecordLit":
		return core.RecordLit{Fields: evalFields(t, kv["Fields"])}
	case "core.UnionType":
		return evalUnionType(t, lit)
	case "core.UnionVal":
		return core.UnionVal{
			Type:        evalUnionType(t, kv["Type"]),
			Alternative: stringLit(t, kv["Alternative"]),
			Payload:     optional(t, kv, "Payload"),
		}
	case "core.UnionCtor":
		return core.UnionCtor{Type: evalUnionType(t, kv["Type"]), Alternative: stringLit(t, kv["Alternative"])}
	case "core.Var":
		idx, err := strconv.Atoi(kv["Index"].(*ast.BasicLit).Value)
		require.NoError(t, err)

		return core.Var{Name: stringLit(t, kv["Name"]), Index: idx}
	case "core.Pi":
		return core.Pi{
			Label:    stringLit(t, kv["Label"]),
			Domain:   evalFragment(t, kv["Domain"]),
			Codomain: evalFragment(t, kv["Codomain"]),
		}
	case "core.ListLit":
		l := core.ListLit{Type: evalFragment(t, kv["Type"])}

		if items, ok := kv["Items"]; ok {
			for _, item := range items.(*ast.CompositeLit).Elts {
				l.Items = append(l.Items, evalFragment(t, item))
			}
		}

		return l
	default:
		t.Fatalf("unknown composite %s", typeName)
		return nil
	}
}
