package dhall

import (
	"math/big"
	"strconv"
	"strings"

	"dhallgen/core"
)

// builtinNames lists the reserved names that refer to builtins.
var builtinNames = map[string]bool{
	"Bool": true, "Natural": true, "Integer": true, "Double": true, "Text": true,
	"List": true, "Optional": true, "None": true,
	"Natural/show": true, "Natural/isZero": true, "Natural/even": true, "Natural/odd": true,
	"Natural/toInteger": true, "Integer/show": true, "Integer/negate": true,
	"Integer/clamp": true, "Integer/toDouble": true, "Double/show": true, "Text/show": true,
}

var constNames = map[string]core.Expr{
	"True":  core.BoolLit(true),
	"False": core.BoolLit(false),
	"Type":  core.Type,
	"Kind":  core.Kind,
	"Sort":  core.Sort,
}

func isReserved(name string) bool {
	_, isConst := constNames[name]

	return isConst || builtinNames[name]
}

type binaryOp struct {
	kind OpKind
	prec int
}

var binaryOps = map[tokenKind]binaryOp{
	tokAlt:          {OpAlt, 1},
	tokOr:           {OpOr, 2},
	tokPlus:         {OpPlus, 3},
	tokTextAppend:   {OpTextAppend, 4},
	tokListAppend:   {OpListAppend, 5},
	tokAnd:          {OpAnd, 6},
	tokCombine:      {OpCombine, 7},
	tokPrefer:       {OpPrefer, 8},
	tokCombineTypes: {OpCombineTypes, 9},
	tokTimes:        {OpTimes, 10},
	tokEq:           {OpEq, 11},
	tokNeq:          {OpNeq, 12},
}

type parser struct {
	lx  *lexer
	tok token
}

// parse reads a complete expression from src.
func parse(src string) (Term, error) {
	p := &parser{lx: newLexer(src)}
	if err := p.next(); err != nil {
		return nil, err
	}

	t, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokEOF {
		return nil, p.unexpected("end of input")
	}

	return t, nil
}

func (p *parser) next() error {
	tok, err := p.lx.next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

func (p *parser) fail(pos Pos, format string, args ...any) error {
	return p.lx.errorf(pos, format, args...)
}

func (p *parser) unexpected(want string) error {
	if p.tok.kind == tokUnsupported || p.tok.kind == tokLambda {
		return p.fail(p.tok.pos, "%s is not supported", p.tok.describe())
	}

	return p.fail(p.tok.pos, "expected %s, found %s", want, p.tok.describe())
}

func (p *parser) expect(kind tokenKind, want string) (token, error) {
	tok := p.tok
	if tok.kind != kind {
		return tok, p.unexpected(want)
	}

	return tok, p.next()
}

func (p *parser) expectLabel(what string) (token, error) {
	return p.expect(tokLabel, what)
}

func (p *parser) binderLabel(what string) (token, error) {
	tok, err := p.expectLabel(what)
	if err != nil {
		return tok, err
	}

	if isReserved(tok.text) {
		return tok, p.fail(tok.pos, "%q is reserved and cannot be bound", tok.text)
	}

	return tok, nil
}

func (p *parser) parseExpr() (Term, error) {
	switch p.tok.kind {
	case tokIf:
		return p.parseIf()
	case tokLet:
		return p.parseLet()
	case tokForall:
		return p.parseForall()
	}

	pos := p.tok.pos

	e, err := p.parseOperator(0)
	if err != nil {
		return nil, err
	}

	switch p.tok.kind {
	case tokArrow:
		if err := p.next(); err != nil {
			return nil, err
		}

		cod, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &Pi{node: node{pos}, Label: "_", Domain: e, Codomain: cod}, nil
	case tokColon:
		if err := p.next(); err != nil {
			return nil, err
		}

		typ, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &Annot{node: node{pos}, Expr: e, Type: typ}, nil
	}

	return e, nil
}

func (p *parser) parseIf() (Term, error) {
	pos := p.tok.pos
	if err := p.next(); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokThen, `"then"`); err != nil {
		return nil, err
	}

	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokElse, `"else"`); err != nil {
		return nil, err
	}

	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &If{node: node{pos}, Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) parseLet() (Term, error) {
	let := &Let{node: node{p.tok.pos}}

	for p.tok.kind == tokLet {
		if err := p.next(); err != nil {
			return nil, err
		}

		name, err := p.binderLabel("a binding name")
		if err != nil {
			return nil, err
		}

		b := Binding{Pos: name.pos, Name: name.text}

		if p.tok.kind == tokColon {
			if err := p.next(); err != nil {
				return nil, err
			}

			if b.Annot, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}

		if _, err := p.expect(tokEquals, `"="`); err != nil {
			return nil, err
		}

		if b.Value, err = p.parseExpr(); err != nil {
			return nil, err
		}

		let.Bindings = append(let.Bindings, b)
	}

	if _, err := p.expect(tokIn, `"in"`); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	let.Body = body

	return let, nil
}

func (p *parser) parseForall() (Term, error) {
	pos := p.tok.pos
	if err := p.next(); err != nil {
		return nil, err
	}

	if _, err := p.expect(tokLParen, `"("`); err != nil {
		return nil, err
	}

	label, err := p.binderLabel("a binder name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokColon, `":"`); err != nil {
		return nil, err
	}

	dom, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokRParen, `")"`); err != nil {
		return nil, err
	}

	if _, err := p.expect(tokArrow, `"->"`); err != nil {
		return nil, err
	}

	cod, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Pi{node: node{pos}, Label: label.text, Domain: dom, Codomain: cod}, nil
}

// parseOperator is a precedence climber over left-associative operators.
func (p *parser) parseOperator(minPrec int) (Term, error) {
	left, err := p.parseApplication()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binaryOps[p.tok.kind]
		if !ok || op.prec < minPrec {
			return left, nil
		}

		pos := p.tok.pos
		if err := p.next(); err != nil {
			return nil, err
		}

		right, err := p.parseOperator(op.prec + 1)
		if err != nil {
			return nil, err
		}

		left = &Op{node: node{pos}, Kind: op.kind, L: left, R: right}
	}
}

func startsArgument(kind tokenKind) bool {
	switch kind {
	case tokNatural, tokInteger, tokDouble, tokTextStart, tokMultiStart, tokLabel,
		tokLParen, tokLBrace, tokLAngle, tokLBracket, tokPath, tokEnv, tokURL, tokMissing:
		return true
	}

	return false
}

func (p *parser) parseApplication() (Term, error) {
	pos := p.tok.pos

	var (
		left Term
		err  error
	)

	if p.tok.kind == tokSome {
		if err := p.next(); err != nil {
			return nil, err
		}

		v, err := p.parseImportExpr()
		if err != nil {
			return nil, err
		}

		left = &Some{node: node{pos}, Value: v}
	} else if left, err = p.parseImportExpr(); err != nil {
		return nil, err
	}

	for startsArgument(p.tok.kind) {
		argPos := p.tok.pos

		arg, err := p.parseImportExpr()
		if err != nil {
			return nil, err
		}

		left = &App{node: node{argPos}, Fn: left, Arg: arg}
	}

	return left, nil
}

func (p *parser) parseImportExpr() (Term, error) {
	imp := &Import{node: node{p.tok.pos}, Target: p.tok.text}

	switch p.tok.kind {
	case tokPath:
		imp.Kind = ImportLocal
	case tokEnv:
		imp.Kind = ImportEnv
	case tokURL:
		imp.Kind = ImportRemote
	case tokMissing:
		imp.Kind = ImportMissing
	default:
		return p.parseSelector()
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	if p.tok.kind == tokHash {
		imp.Hash = p.tok.text
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if p.tok.kind == tokAs {
		if err := p.next(); err != nil {
			return nil, err
		}

		mode, err := p.expectLabel(`"Text" or "Location"`)
		if err != nil {
			return nil, err
		}

		switch mode.text {
		case "Text":
			imp.Mode = ModeText
		case "Location":
			imp.Mode = ModeLocation
		default:
			return nil, p.fail(mode.pos, "unknown import mode %q", mode.text)
		}
	}

	return imp, nil
}

func (p *parser) parseSelector() (Term, error) {
	e, err := p.parsePrimitive()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokDot {
		pos := p.tok.pos
		if err := p.next(); err != nil {
			return nil, err
		}

		switch p.tok.kind {
		case tokLabel:
			e = &Field{node: node{pos}, Record: e, Name: p.tok.text}
			if err := p.next(); err != nil {
				return nil, err
			}
		case tokLBrace:
			names, err := p.parseProjection()
			if err != nil {
				return nil, err
			}

			e = &Project{node: node{pos}, Record: e, Names: names}
		case tokLParen:
			return nil, p.fail(p.tok.pos, "projection by type is not supported")
		default:
			return nil, p.unexpected("a field name or \"{\"")
		}
	}

	return e, nil
}

func (p *parser) parseProjection() ([]string, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	names := []string{}

	if p.tok.kind == tokComma {
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	for p.tok.kind != tokRBrace {
		label, err := p.expectLabel("a field name")
		if err != nil {
			return nil, err
		}

		names = append(names, label.text)

		if p.tok.kind != tokComma {
			break
		}

		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tokRBrace, `"}"`); err != nil {
		return nil, err
	}

	return names, nil
}

func (p *parser) parsePrimitive() (Term, error) {
	tok := p.tok

	switch tok.kind {
	case tokNatural, tokInteger, tokDouble:
		v, err := numberValue(tok)
		if err != nil {
			return nil, p.fail(tok.pos, "%s", err.Error())
		}

		return &Const{node: node{tok.pos}, Value: v}, p.next()
	case tokTextStart:
		return p.parseText()
	case tokMultiStart:
		return p.parseMultiline()
	case tokLabel:
		return p.parseName()
	case tokLParen:
		if err := p.next(); err != nil {
			return nil, err
		}

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}

		return e, nil
	case tokLBrace:
		return p.parseRecord()
	case tokLAngle:
		return p.parseUnion()
	case tokLBracket:
		return p.parseList()
	}

	return nil, p.unexpected("an expression")
}

func (p *parser) parseName() (Term, error) {
	tok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	if v, ok := constNames[tok.text]; ok {
		return &Const{node: node{tok.pos}, Value: v}, nil
	}

	if builtinNames[tok.text] {
		return &Builtin{node: node{tok.pos}, Name: tok.text}, nil
	}

	v := &Var{node: node{tok.pos}, Name: tok.text}

	if p.tok.kind == tokAt {
		if err := p.next(); err != nil {
			return nil, err
		}

		idx, err := p.expect(tokNatural, "a variable index")
		if err != nil {
			return nil, err
		}

		n, err := strconv.Atoi(idx.text)
		if err != nil {
			return nil, p.fail(idx.pos, "invalid variable index %s", idx.text)
		}

		v.Index = n
	}

	return v, nil
}

func numberValue(tok token) (core.Expr, error) {
	switch tok.kind {
	case tokDouble:
		return parseDouble(tok.text)
	case tokInteger:
		v, err := parseBig(tok.text)
		if err != nil {
			return nil, err
		}

		return core.IntegerLit{Value: v}, nil
	default:
		v, err := parseBig(tok.text)
		if err != nil {
			return nil, err
		}

		return core.NaturalLit{Value: v}, nil
	}
}

func parseBig(text string) (*big.Int, error) {
	sign := ""
	digits := text

	if text[0] == '+' || text[0] == '-' {
		sign, digits = text[:1], text[1:]
	}

	base := 10
	if strings.HasPrefix(digits, "0x") {
		base, digits = 16, digits[2:]
	} else if len(digits) > 1 && digits[0] == '0' {
		return nil, strconv.ErrSyntax
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, strconv.ErrSyntax
	}

	if sign == "-" {
		v.Neg(v)
	}

	return v, nil
}

// parseDouble also accepts NaN, Infinity and -Infinity.
func parseDouble(text string) (core.Expr, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}

	return core.DoubleLit(f), nil
}

func (p *parser) parseText() (Term, error) {
	lit := &TextLit{node: node{p.tok.pos}}

	for {
		seg, interp, err := p.lx.scanText()
		if err != nil {
			return nil, err
		}

		if !interp {
			lit.Suffix = seg
			return lit, p.next()
		}

		e, err := p.parseInterpolation()
		if err != nil {
			return nil, err
		}

		lit.Chunks = append(lit.Chunks, TextChunk{Prefix: seg, Expr: e})
	}
}

// parseInterpolation parses the expression after "${" and leaves the lexer
// right behind the closing brace.
func (p *parser) parseInterpolation() (Term, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokRBrace {
		return nil, p.unexpected(`"}"`)
	}

	return e, nil
}

func (p *parser) parseMultiline() (Term, error) {
	pos := p.tok.pos
	if err := p.lx.scanMultilineStart(); err != nil {
		return nil, err
	}

	var parts []textPart

	for {
		seg, interp, err := p.lx.scanMultiline()
		if err != nil {
			return nil, err
		}

		parts = append(parts, textPart{text: seg})

		if !interp {
			break
		}

		e, err := p.parseInterpolation()
		if err != nil {
			return nil, err
		}

		parts = append(parts, textPart{expr: e})
	}

	lit := &TextLit{node: node{pos}}

	var sb strings.Builder

	for _, part := range dedent(parts) {
		if part.expr == nil {
			sb.WriteString(part.text)
			continue
		}

		lit.Chunks = append(lit.Chunks, TextChunk{Prefix: sb.String(), Expr: part.expr})
		sb.Reset()
	}

	lit.Suffix = sb.String()

	return lit, p.next()
}

func (p *parser) parseRecord() (Term, error) {
	pos := p.tok.pos
	if err := p.next(); err != nil {
		return nil, err
	}

	if p.tok.kind == tokComma {
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	switch p.tok.kind {
	case tokRBrace:
		return &RecordType{node: node{pos}}, p.next()
	case tokEquals:
		if err := p.next(); err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRBrace, `"}"`); err != nil {
			return nil, err
		}

		return &RecordLit{node: node{pos}}, nil
	}

	first, err := p.expectLabel("a field name")
	if err != nil {
		return nil, err
	}

	if p.tok.kind == tokColon {
		return p.parseRecordType(pos, first)
	}

	return p.parseRecordLit(pos, first)
}

func (p *parser) parseRecordType(pos Pos, first token) (Term, error) {
	rt := &RecordType{node: node{pos}}
	label := first

	for {
		if _, err := p.expect(tokColon, `":"`); err != nil {
			return nil, err
		}

		typ, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		rt.Fields = append(rt.Fields, FieldTerm{Pos: label.pos, Name: label.text, Value: typ})

		if p.tok.kind != tokComma {
			break
		}

		if err := p.next(); err != nil {
			return nil, err
		}

		if p.tok.kind == tokRBrace {
			break
		}

		if label, err = p.expectLabel("a field name"); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tokRBrace, `"}"`); err != nil {
		return nil, err
	}

	return rt, nil
}

func (p *parser) parseRecordLit(pos Pos, first token) (Term, error) {
	rl := &RecordLit{node: node{pos}}
	label := first

	for {
		field, err := p.parseRecordEntry(label)
		if err != nil {
			return nil, err
		}

		rl.Fields = append(rl.Fields, field)

		if p.tok.kind != tokComma {
			break
		}

		if err := p.next(); err != nil {
			return nil, err
		}

		if p.tok.kind == tokRBrace {
			break
		}

		if label, err = p.expectLabel("a field name"); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tokRBrace, `"}"`); err != nil {
		return nil, err
	}

	return rl, nil
}

// parseRecordEntry parses "a.b.c = v" or a punned "a" after its first label.
func (p *parser) parseRecordEntry(first token) (FieldTerm, error) {
	path := []token{first}

	for p.tok.kind == tokDot {
		if err := p.next(); err != nil {
			return FieldTerm{}, err
		}

		label, err := p.expectLabel("a field name")
		if err != nil {
			return FieldTerm{}, err
		}

		path = append(path, label)
	}

	var value Term

	switch p.tok.kind {
	case tokEquals:
		if err := p.next(); err != nil {
			return FieldTerm{}, err
		}

		v, err := p.parseExpr()
		if err != nil {
			return FieldTerm{}, err
		}

		value = v
	case tokComma, tokRBrace:
		if len(path) != 1 {
			return FieldTerm{}, p.unexpected(`"="`)
		}

		if isReserved(first.text) {
			return FieldTerm{}, p.fail(first.pos, "%q is reserved and cannot be punned", first.text)
		}

		value = &Var{node: node{first.pos}, Name: first.text}
	default:
		return FieldTerm{}, p.unexpected(`"=" or ":"`)
	}

	for i := len(path) - 1; i > 0; i-- {
		value = &RecordLit{
			node:   node{path[i].pos},
			Fields: []FieldTerm{{Pos: path[i].pos, Name: path[i].text, Value: value}},
		}
	}

	return FieldTerm{Pos: first.pos, Name: first.text, Value: value}, nil
}

func (p *parser) parseUnion() (Term, error) {
	ut := &UnionType{node: node{p.tok.pos}}
	if err := p.next(); err != nil {
		return nil, err
	}

	if p.tok.kind == tokBar {
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	for p.tok.kind != tokRAngle {
		label, err := p.expectLabel("an alternative name")
		if err != nil {
			return nil, err
		}

		alt := AltTerm{Pos: label.pos, Name: label.text}

		if p.tok.kind == tokColon {
			if err := p.next(); err != nil {
				return nil, err
			}

			if alt.Type, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}

		ut.Alts = append(ut.Alts, alt)

		if p.tok.kind != tokBar {
			break
		}

		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tokRAngle, `">"`); err != nil {
		return nil, err
	}

	return ut, nil
}

func (p *parser) parseList() (Term, error) {
	pos := p.tok.pos
	if err := p.next(); err != nil {
		return nil, err
	}

	if p.tok.kind == tokComma {
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if p.tok.kind == tokRBracket {
		if err := p.next(); err != nil {
			return nil, err
		}

		if _, err := p.expect(tokColon, `":" and a type after an empty list`); err != nil {
			return nil, err
		}

		typ, err := p.parseApplication()
		if err != nil {
			return nil, err
		}

		return &EmptyList{node: node{pos}, Type: typ}, nil
	}

	list := &ListLit{node: node{pos}}

	for {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		list.Items = append(list.Items, item)

		if p.tok.kind != tokComma {
			break
		}

		if err := p.next(); err != nil {
			return nil, err
		}

		if p.tok.kind == tokRBracket {
			break
		}
	}

	if _, err := p.expect(tokRBracket, `"]"`); err != nil {
		return nil, err
	}

	return list, nil
}
