package pretty

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"dhallgen/core"
)

func TestRender(t *testing.T) {
	u := core.UnionType{Alternatives: core.Alternatives{
		{Name: "A", Type: core.RecordType{Fields: core.Fields{{Name: "x", Value: core.Bool}}}},
		{Name: "B"},
	}}

	tests := []struct {
		name string
		expr core.Expr
		want string
	}{
		{"builtin", core.Natural, "Natural"},
		{"universe", core.Type, "Type"},
		{"list type", core.ListType{Elem: core.OptionalType{Elem: core.Text}}, "List (Optional Text)"},
		{"record type", core.RecordType{Fields: core.Fields{{Name: "a", Value: core.Bool}}}, "{ a : Bool }"},
		{"empty record type", core.RecordType{}, "{}"},
		{"empty record", core.RecordLit{}, "{=}"},
		{"union", u, "< A : { x : Bool } | B >"},
		{"empty union", core.UnionType{}, "<>"},
		{"function", core.Pi{Label: "_", Domain: core.Bool, Codomain: core.Natural}, "Bool -> Natural"},
		{"function domain", core.Pi{
			Label:    "_",
			Domain:   core.Pi{Label: "_", Domain: core.Bool, Codomain: core.Bool},
			Codomain: core.Bool,
		}, "(Bool -> Bool) -> Bool"},
		{"dependent", core.Pi{Label: "a", Domain: core.Type, Codomain: core.Var{Name: "a"}}, "forall (a : Type) -> a"},
		{"indexed var", core.Var{Name: "x", Index: 2}, "x@2"},
		{"natural", core.NewNatural(7), "7"},
		{"integer", core.NewInteger(7), "+7"},
		{"negative integer", core.NewInteger(-7), "-7"},
		{"double", core.DoubleLit(2), "2.0"},
		{"nan", core.DoubleLit(math.NaN()), "NaN"},
		{"text", core.PlainText("a\"$\n"), `"a\"\u0024\n"`},
		{"list", core.ListLit{Type: core.Bool, Items: []core.Expr{core.BoolLit(true), core.BoolLit(false)}}, "[ True, False ]"},
		{"empty list", core.ListLit{Type: core.Natural}, "[] : List Natural"},
		{"some", core.Some{Value: core.Some{Value: core.NewNatural(1)}}, "Some (Some 1)"},
		{"none", core.None{Type: core.ListType{Elem: core.Bool}}, "None (List Bool)"},
		{"union value", core.UnionVal{Type: u, Alternative: "B"}, "< A : { x : Bool } | B >.B"},
		{"union ctor", core.UnionCtor{Type: u, Alternative: "A"}, "< A : { x : Bool } | B >.A"},
		{"quoted label", core.RecordLit{Fields: core.Fields{{Name: "if", Value: core.BoolLit(true)}}}, "{ `if` = True }"},
		{"nil", nil, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.expr))
		})
	}
}

func TestFormatDouble(t *testing.T) {
	assert.Equal(t, "1.5", FormatDouble(1.5))
	assert.Equal(t, "-2000.0", FormatDouble(-2e3))
	assert.Equal(t, "1e+100", FormatDouble(1e100))
	assert.Equal(t, "Infinity", FormatDouble(math.Inf(1)))
	assert.Equal(t, "-Infinity", FormatDouble(math.Inf(-1)))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "port", Label("port"))
	assert.Equal(t, "Natural/show", Label("Natural/show"))
	assert.Equal(t, "`with space`", Label("with space"))
	assert.Equal(t, "`let`", Label("let"))
	assert.Equal(t, "`1st`", Label("1st"))
}
