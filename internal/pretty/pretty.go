package pretty

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"dhallgen/core"
)

// precedence levels, loosest first.
const (
	levelExpr = iota
	levelApp
	levelPrim
)

var simpleLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_/-]*$`)

var keywords = map[string]bool{
	"if": true, "then": true, "else": true, "let": true, "in": true,
	"as": true, "using": true, "merge": true, "missing": true,
	"Infinity": true, "NaN": true, "Some": true, "toMap": true,
	"assert": true, "forall": true, "with": true, "showConstructor": true,
}

// Render returns the expression in description-language syntax.
func Render(e core.Expr) string {
	var sb strings.Builder
	render(&sb, e, levelExpr)

	return sb.String()
}

// Label quotes a label with backticks when it is not a plain identifier.
func Label(name string) string {
	if simpleLabel.MatchString(name) && !keywords[name] {
		return name
	}

	return "`" + name + "`"
}

// FormatDouble renders a double the way the description language prints it.
func FormatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

// FormatInteger renders an integer with its mandatory sign.
func FormatInteger(n core.IntegerLit) string {
	if n.Value == nil || n.Value.Sign() < 0 {
		return n.Value.String()
	}

	return "+" + n.Value.String()
}

// QuoteText renders s as a double-quoted text literal.
func QuoteText(s string) string {
	var sb strings.Builder

	sb.WriteByte('"')
	writeEscaped(&sb, s)
	sb.WriteByte('"')

	return sb.String()
}

func writeEscaped(sb *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '$':
			sb.WriteString(`\u0024`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 || r == utf8.RuneError {
				fmt.Fprintf(sb, `\u%04X`, r)
				continue
			}

			sb.WriteRune(r)
		}
	}
}

func level(e core.Expr) int {
	switch x := e.(type) {
	case core.Pi:
		return levelExpr
	case core.ListLit:
		if len(x.Items) == 0 {
			return levelExpr
		}

		return levelPrim
	case core.ListType, core.OptionalType, core.Some, core.None:
		return levelApp
	case core.UnionVal:
		if x.Payload != nil {
			return levelApp
		}

		return levelPrim
	default:
		return levelPrim
	}
}

func render(sb *strings.Builder, e core.Expr, min int) {
	if e == nil {
		sb.WriteString("<nil>")
		return
	}

	if level(e) < min {
		sb.WriteByte('(')
		render(sb, e, levelExpr)
		sb.WriteByte(')')

		return
	}

	switch x := e.(type) {
	case core.Builtin:
		sb.WriteString(string(x))
	case core.Universe:
		sb.WriteString(x.String())
	case core.Var:
		sb.WriteString(Label(x.Name))

		if x.Index != 0 {
			fmt.Fprintf(sb, "@%d", x.Index)
		}
	case core.Pi:
		if x.Label == "_" {
			render(sb, x.Domain, levelApp)
		} else {
			fmt.Fprintf(sb, "forall (%s : ", Label(x.Label))
			render(sb, x.Domain, levelExpr)
			sb.WriteByte(')')
		}

		sb.WriteString(" -> ")
		render(sb, x.Codomain, levelExpr)
	case core.ListType:
		sb.WriteString("List ")
		render(sb, x.Elem, levelPrim)
	case core.OptionalType:
		sb.WriteString("Optional ")
		render(sb, x.Elem, levelPrim)
	case core.RecordType:
		renderFields(sb, x.Fields, ":", "{}")
	case core.UnionType:
		renderUnion(sb, x)
	case core.BoolLit:
		if x {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case core.NaturalLit:
		sb.WriteString(x.Value.String())
	case core.IntegerLit:
		sb.WriteString(FormatInteger(x))
	case core.DoubleLit:
		sb.WriteString(FormatDouble(float64(x)))
	case core.TextLit:
		renderText(sb, x)
	case core.ListLit:
		if len(x.Items) == 0 {
			sb.WriteString("[] : List ")
			render(sb, x.Type, levelPrim)

			return
		}

		sb.WriteString("[ ")

		for i, item := range x.Items {
			if i > 0 {
				sb.WriteString(", ")
			}

			render(sb, item, levelExpr)
		}

		sb.WriteString(" ]")
	case core.Some:
		sb.WriteString("Some ")
		render(sb, x.Value, levelPrim)
	case core.None:
		sb.WriteString("None ")
		render(sb, x.Type, levelPrim)
	case core.RecordLit:
		renderFields(sb, x.Fields, "=", "{=}")
	case core.UnionVal:
		renderUnion(sb, x.Type)
		sb.WriteString(".")
		sb.WriteString(Label(x.Alternative))

		if x.Payload != nil {
			sb.WriteByte(' ')
			render(sb, x.Payload, levelPrim)
		}
	case core.UnionCtor:
		renderUnion(sb, x.Type)
		sb.WriteString(".")
		sb.WriteString(Label(x.Alternative))
	default:
		fmt.Fprintf(sb, "<%s>", e.Tag())
	}
}

func renderFields(sb *strings.Builder, fields core.Fields, sep, empty string) {
	if len(fields) == 0 {
		sb.WriteString(empty)
		return
	}

	sb.WriteString("{ ")

	for i, f := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(Label(f.Name))
		sb.WriteString(" " + sep + " ")
		render(sb, f.Value, levelExpr)
	}

	sb.WriteString(" }")
}

func renderUnion(sb *strings.Builder, u core.UnionType) {
	if len(u.Alternatives) == 0 {
		sb.WriteString("<>")
		return
	}

	sb.WriteString("< ")

	for i, a := range u.Alternatives {
		if i > 0 {
			sb.WriteString(" | ")
		}

		sb.WriteString(Label(a.Name))

		if a.Type != nil {
			sb.WriteString(" : ")
			render(sb, a.Type, levelExpr)
		}
	}

	sb.WriteString(" >")
}

func renderText(sb *strings.Builder, t core.TextLit) {
	sb.WriteByte('"')

	for _, c := range t.Chunks {
		writeEscaped(sb, c.Prefix)
		sb.WriteString("${")
		render(sb, c.Expr, levelExpr)
		sb.WriteByte('}')
	}

	writeEscaped(sb, t.Suffix)
	sb.WriteByte('"')
}
