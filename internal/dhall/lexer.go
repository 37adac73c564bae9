package dhall

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLabel
	tokNatural
	tokInteger
	tokDouble
	tokTextStart
	tokMultiStart
	tokPath
	tokEnv
	tokURL
	tokHash

	tokIf
	tokThen
	tokElse
	tokLet
	tokIn
	tokAs
	tokForall
	tokSome
	tokMissing
	tokLambda
	tokUnsupported

	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokLAngle
	tokRAngle
	tokComma
	tokBar
	tokDot
	tokColon
	tokEquals
	tokAt
	tokArrow

	tokAlt
	tokOr
	tokAnd
	tokEq
	tokNeq
	tokPlus
	tokTimes
	tokTextAppend
	tokListAppend
	tokPrefer
	tokCombine
	tokCombineTypes
)

var keywords = map[string]tokenKind{
	"if":      tokIf,
	"then":    tokThen,
	"else":    tokElse,
	"let":     tokLet,
	"in":      tokIn,
	"as":      tokAs,
	"forall":  tokForall,
	"Some":    tokSome,
	"missing": tokMissing,
	"merge":   tokUnsupported,
	"toMap":   tokUnsupported,
	"using":   tokUnsupported,
	"with":    tokUnsupported,
	"assert":  tokUnsupported,
}

type token struct {
	kind tokenKind
	text string
	pos  Pos
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokTextStart:
		return `"`
	case tokMultiStart:
		return "''"
	default:
		return strconv.Quote(t.text)
	}
}

// lexer produces tokens on demand. Text literals are scanned by the parser
// through scanText and scanMultiline so interpolations can be parsed as
// ordinary expressions.
type lexer struct {
	src  string
	off  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) pos() Pos {
	return Pos{Line: l.line, Col: l.col}
}

func (l *lexer) peekRune(ahead int) rune {
	off := l.off
	for i := 0; ; i++ {
		if off >= len(l.src) {
			return -1
		}

		r, size := utf8.DecodeRuneInString(l.src[off:])
		if i == ahead {
			return r
		}

		off += size
	}
}

func (l *lexer) advance() rune {
	if l.off >= len(l.src) {
		return -1
	}

	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func (l *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.src[l.off:], s)
}

func (l *lexer) skip(n int) {
	for range n {
		l.advance()
	}
}

// lexError is a malformed token.
type lexError struct {
	pos Pos
	msg string
}

func (e *lexError) Error() string {
	return fmt.Sprintf("%s: %s", e.pos, e.msg)
}

func (l *lexer) errorf(pos Pos, format string, args ...any) error {
	return &lexError{pos: pos, msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) skipSpace() error {
	for {
		switch {
		case l.off >= len(l.src):
			return nil
		case l.hasPrefix("--"):
			for l.off < len(l.src) && l.peekRune(0) != '\n' {
				l.advance()
			}
		case l.hasPrefix("{-"):
			start := l.pos()
			l.skip(2)

			depth := 1
			for depth > 0 {
				switch {
				case l.off >= len(l.src):
					return l.errorf(start, "unterminated block comment")
				case l.hasPrefix("{-"):
					l.skip(2)
					depth++
				case l.hasPrefix("-}"):
					l.skip(2)
					depth--
				default:
					l.advance()
				}
			}
		default:
			switch l.peekRune(0) {
			case ' ', '\t', '\n', '\r':
				l.advance()
			default:
				return nil
			}
		}
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLabelStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isLabelChar(r rune) bool {
	return isLabelStart(r) || isDigit(r) || r == '/' || r == '-'
}

func isPathChar(r rune) bool {
	if r < 0 || r <= ' ' {
		return false
	}

	switch r {
	case '"', '#', '(', ')', '[', ']', '{', '}', '<', '>', '\\', ',':
		return false
	}

	return true
}

func isURLChar(r rune) bool {
	if r < 0 || r <= ' ' {
		return false
	}

	switch r {
	case '"', '(', ')', '[', ']', '{', '}', '<', '>', '\\', ',', '`':
		return false
	}

	return true
}

// next returns the next token, skipping whitespace and comments.
func (l *lexer) next() (token, error) {
	if err := l.skipSpace(); err != nil {
		return token{}, err
	}

	pos := l.pos()
	tok := func(kind tokenKind, n int) (token, error) {
		start := l.off
		l.skip(n)

		return token{kind: kind, text: l.src[start:l.off], pos: pos}, nil
	}

	r := l.peekRune(0)
	switch {
	case r < 0:
		return token{kind: tokEOF, pos: pos}, nil
	case r == '(':
		return tok(tokLParen, 1)
	case r == ')':
		return tok(tokRParen, 1)
	case r == '{':
		return tok(tokLBrace, 1)
	case r == '}':
		return tok(tokRBrace, 1)
	case r == '[':
		return tok(tokLBracket, 1)
	case r == ']':
		return tok(tokRBracket, 1)
	case r == '<':
		return tok(tokLAngle, 1)
	case r == '>':
		return tok(tokRAngle, 1)
	case r == ',':
		return tok(tokComma, 1)
	case r == '@':
		return tok(tokAt, 1)
	case r == ':':
		return tok(tokColon, 1)
	case r == '?':
		return tok(tokAlt, 1)
	case r == '*':
		return tok(tokTimes, 1)
	case r == '#':
		return tok(tokListAppend, 1)
	case r == '"':
		return tok(tokTextStart, 1)
	case r == '\'' && l.peekRune(1) == '\'':
		return tok(tokMultiStart, 2)
	case r == '=':
		if l.peekRune(1) == '=' {
			if l.peekRune(2) == '=' {
				return tok(tokUnsupported, 3)
			}

			return tok(tokEq, 2)
		}

		return tok(tokEquals, 1)
	case r == '|':
		if l.peekRune(1) == '|' {
			return tok(tokOr, 2)
		}

		return tok(tokBar, 1)
	case r == '&' && l.peekRune(1) == '&':
		return tok(tokAnd, 2)
	case r == '!' && l.peekRune(1) == '=':
		return tok(tokNeq, 2)
	case r == '+':
		switch next := l.peekRune(1); {
		case next == '+':
			return tok(tokTextAppend, 2)
		case isDigit(next):
			return l.number(pos)
		default:
			return tok(tokPlus, 1)
		}
	case r == '-':
		switch {
		case l.peekRune(1) == '>':
			return tok(tokArrow, 2)
		case isDigit(l.peekRune(1)):
			return l.number(pos)
		case l.hasPrefix("-Infinity"):
			return tok(tokDouble, len("-Infinity"))
		}
	case r == '.':
		switch {
		case l.hasPrefix("./"), l.hasPrefix("../"):
			return l.path(pos)
		default:
			return tok(tokDot, 1)
		}
	case r == '~' && l.peekRune(1) == '/':
		return l.path(pos)
	case r == '/':
		switch {
		case l.hasPrefix(`//\\`):
			return tok(tokCombineTypes, 4)
		case l.hasPrefix("//"):
			return tok(tokPrefer, 2)
		case l.hasPrefix(`/\`):
			return tok(tokCombine, 2)
		case isPathChar(l.peekRune(1)):
			return l.path(pos)
		}
	case r == '\\' || r == 'λ':
		return tok(tokLambda, 1)
	case r == '→':
		return tok(tokArrow, 1)
	case r == '∀':
		return tok(tokForall, 1)
	case r == '∧':
		return tok(tokCombine, 1)
	case r == '⫽':
		return tok(tokPrefer, 1)
	case r == '⩓':
		return tok(tokCombineTypes, 1)
	case r == '≡':
		return tok(tokUnsupported, 1)
	case isDigit(r):
		return l.number(pos)
	case r == '`':
		return l.quotedLabel(pos)
	case isLabelStart(r):
		return l.label(pos)
	}

	return token{}, l.errorf(pos, "unexpected character %q", r)
}

func (l *lexer) number(pos Pos) (token, error) {
	start := l.off
	signed := false

	if r := l.peekRune(0); r == '+' || r == '-' {
		signed = true
		l.advance()
	}

	if l.hasPrefix("0x") {
		l.skip(2)

		digits := l.off
		for strings.ContainsRune("0123456789abcdefABCDEF", l.peekRune(0)) {
			l.advance()
		}

		if l.off == digits {
			return token{}, l.errorf(pos, "hexadecimal literal without digits")
		}

		kind := tokNatural
		if signed {
			kind = tokInteger
		}

		return token{kind: kind, text: l.src[start:l.off], pos: pos}, nil
	}

	for isDigit(l.peekRune(0)) {
		l.advance()
	}

	double := false
	if l.peekRune(0) == '.' && isDigit(l.peekRune(1)) {
		double = true
		l.advance()

		for isDigit(l.peekRune(0)) {
			l.advance()
		}
	}

	if r := l.peekRune(0); r == 'e' || r == 'E' {
		sign := 0
		if s := l.peekRune(1); s == '+' || s == '-' {
			sign = 1
		}

		if isDigit(l.peekRune(1 + sign)) {
			double = true
			l.skip(1 + sign)

			for isDigit(l.peekRune(0)) {
				l.advance()
			}
		}
	}

	kind := tokNatural
	switch {
	case double:
		kind = tokDouble
	case signed:
		kind = tokInteger
	}

	return token{kind: kind, text: l.src[start:l.off], pos: pos}, nil
}

func (l *lexer) path(pos Pos) (token, error) {
	start := l.off
	for isPathChar(l.peekRune(0)) {
		l.advance()
	}

	return token{kind: tokPath, text: l.src[start:l.off], pos: pos}, nil
}

func (l *lexer) quotedLabel(pos Pos) (token, error) {
	l.advance()

	start := l.off
	for {
		r := l.peekRune(0)
		if r == '`' {
			break
		}

		if r < 0 || r == '\n' {
			return token{}, l.errorf(pos, "unterminated quoted label")
		}

		l.advance()
	}

	text := l.src[start:l.off]
	l.advance()

	return token{kind: tokLabel, text: text, pos: pos}, nil
}

func (l *lexer) label(pos Pos) (token, error) {
	start := l.off
	for {
		r := l.peekRune(0)
		if !isLabelChar(r) {
			break
		}

		if r == '-' && (l.peekRune(1) == '>' || l.peekRune(1) == '-') {
			break
		}

		l.advance()
	}

	text := l.src[start:l.off]

	switch {
	case (text == "http" || text == "https") && l.hasPrefix("://"):
		for isURLChar(l.peekRune(0)) {
			l.advance()
		}

		return token{kind: tokURL, text: l.src[start:l.off], pos: pos}, nil
	case text == "env" && l.peekRune(0) == ':':
		l.advance()

		if l.peekRune(0) == '"' {
			return token{}, l.errorf(pos, "quoted environment variable names are not supported")
		}

		nameStart := l.off
		for r := l.peekRune(0); isLabelStart(r) || isDigit(r); r = l.peekRune(0) {
			l.advance()
		}

		if l.off == nameStart {
			return token{}, l.errorf(pos, "environment import without a variable name")
		}

		return token{kind: tokEnv, text: l.src[nameStart:l.off], pos: pos}, nil
	case text == "sha256" && l.peekRune(0) == ':':
		l.advance()

		hashStart := l.off
		for strings.ContainsRune("0123456789abcdefABCDEF", l.peekRune(0)) {
			l.advance()
		}

		return token{kind: tokHash, text: l.src[hashStart:l.off], pos: pos}, nil
	}

	if kind, ok := keywords[text]; ok {
		return token{kind: kind, text: text, pos: pos}, nil
	}

	if text == "NaN" || text == "Infinity" {
		return token{kind: tokDouble, text: text, pos: pos}, nil
	}

	return token{kind: tokLabel, text: text, pos: pos}, nil
}

// scanText reads the body of a double-quoted text literal up to the closing
// quote or the next interpolation. interp reports which one ended it.
func (l *lexer) scanText() (string, bool, error) {
	var sb strings.Builder

	for {
		pos := l.pos()
		r := l.peekRune(0)

		switch {
		case r < 0:
			return "", false, l.errorf(pos, "unterminated text literal")
		case r == '"':
			l.advance()
			return sb.String(), false, nil
		case r == '$' && l.peekRune(1) == '{':
			l.skip(2)
			return sb.String(), true, nil
		case r == '\\':
			l.advance()

			if err := l.escape(&sb, pos); err != nil {
				return "", false, err
			}
		case r == '\r' && l.peekRune(1) == '\n':
			l.skip(2)
			sb.WriteByte('\n')
		default:
			l.advance()
			sb.WriteRune(r)
		}
	}
}

func (l *lexer) escape(sb *strings.Builder, pos Pos) error {
	r := l.advance()
	switch r {
	case '"', '\\', '/', '$':
		sb.WriteRune(r)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		cp, err := l.unicodeEscape(pos)
		if err != nil {
			return err
		}

		sb.WriteRune(cp)
	default:
		return l.errorf(pos, "invalid escape sequence \\%c", r)
	}

	return nil
}

func (l *lexer) unicodeEscape(pos Pos) (rune, error) {
	if l.peekRune(0) == '{' {
		l.advance()

		start := l.off
		for l.peekRune(0) >= 0 && l.peekRune(0) != '}' {
			l.advance()
		}

		digits := l.src[start:l.off]
		l.advance()

		cp, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || !utf8.ValidRune(rune(cp)) {
			return 0, l.errorf(pos, "invalid unicode escape \\u{%s}", digits)
		}

		return rune(cp), nil
	}

	hi, err := l.hex4(pos)
	if err != nil {
		return 0, err
	}

	if hi >= 0xD800 && hi <= 0xDBFF {
		if !l.hasPrefix(`\u`) {
			return 0, l.errorf(pos, "unpaired surrogate in unicode escape")
		}

		l.skip(2)

		lo, err := l.hex4(pos)
		if err != nil {
			return 0, err
		}

		if lo < 0xDC00 || lo > 0xDFFF {
			return 0, l.errorf(pos, "unpaired surrogate in unicode escape")
		}

		return (hi-0xD800)<<10 + (lo - 0xDC00) + 0x10000, nil
	}

	if hi >= 0xDC00 && hi <= 0xDFFF {
		return 0, l.errorf(pos, "unpaired surrogate in unicode escape")
	}

	return hi, nil
}

func (l *lexer) hex4(pos Pos) (rune, error) {
	if l.off+4 > len(l.src) {
		return 0, l.errorf(pos, "truncated unicode escape")
	}

	digits := l.src[l.off : l.off+4]

	cp, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, l.errorf(pos, "invalid unicode escape \\u%s", digits)
	}

	l.skip(4)

	return rune(cp), nil
}

// scanMultilineStart consumes the mandatory line break after the opening
// quotes of a multi-line literal.
func (l *lexer) scanMultilineStart() error {
	switch {
	case l.hasPrefix("\n"):
		l.skip(1)
	case l.hasPrefix("\r\n"):
		l.skip(2)
	default:
		return l.errorf(l.pos(), "multi-line text must start with a line break")
	}

	return nil
}

// scanMultiline reads the raw body of a multi-line literal up to the closing
// quotes or the next interpolation. Indentation is stripped by the parser.
func (l *lexer) scanMultiline() (string, bool, error) {
	var sb strings.Builder

	for {
		switch {
		case l.off >= len(l.src):
			return "", false, l.errorf(l.pos(), "unterminated multi-line text literal")
		case l.hasPrefix("'''"):
			l.skip(3)
			sb.WriteString("''")
		case l.hasPrefix("''${"):
			l.skip(4)
			sb.WriteString("${")
		case l.hasPrefix("''"):
			l.skip(2)
			return sb.String(), false, nil
		case l.hasPrefix("${"):
			l.skip(2)
			return sb.String(), true, nil
		case l.hasPrefix("\r\n"):
			l.skip(2)
			sb.WriteByte('\n')
		default:
			sb.WriteRune(l.advance())
		}
	}
}
