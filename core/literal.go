package core

import (
	"fmt"
	"math/big"
	"strings"
)

// PlainText converts a Go string into a text value. It is the only way
// generated code builds text, so the chunk representation stays private
// to the resolver.
func PlainText(s string) TextLit {
	return TextLit{Suffix: s}
}

// Plain returns the contents of a text value without interpolations.
func (t TextLit) Plain() (string, bool) {
	if len(t.Chunks) != 0 {
		return "", false
	}

	return t.Suffix, true
}

// flatten concatenates text chunks whose interpolated expressions are
// themselves plain texts.
func (t TextLit) flatten() (string, bool) {
	var sb strings.Builder

	for _, c := range t.Chunks {
		inner, ok := c.Expr.(TextLit)
		if !ok {
			return "", false
		}

		s, ok := inner.flatten()
		if !ok {
			return "", false
		}

		sb.WriteString(c.Prefix)
		sb.WriteString(s)
	}

	sb.WriteString(t.Suffix)

	return sb.String(), true
}

// NewNatural returns the natural number n.
func NewNatural(n uint64) NaturalLit {
	return NaturalLit{Value: new(big.Int).SetUint64(n)}
}

// NewInteger returns the integer n.
func NewInteger(n int64) IntegerLit {
	return IntegerLit{Value: big.NewInt(n)}
}

// ParseNatural parses a decimal natural number.
func ParseNatural(s string) (NaturalLit, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 || strings.HasPrefix(s, "+") {
		return NaturalLit{}, fmt.Errorf("invalid natural number %q", s)
	}

	return NaturalLit{Value: v}, nil
}

// ParseInteger parses a decimal integer with an optional sign.
func ParseInteger(s string) (IntegerLit, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return IntegerLit{}, fmt.Errorf("invalid integer %q", s)
	}

	return IntegerLit{Value: v}, nil
}

// MustNatural is like ParseNatural but panics on malformed input. Generated
// code uses it with constants it knows to be valid.
func MustNatural(s string) NaturalLit {
	n, err := ParseNatural(s)
	if err != nil {
		panic(err)
	}

	return n
}

// MustInteger is like ParseInteger but panics on malformed input.
func MustInteger(s string) IntegerLit {
	n, err := ParseInteger(s)
	if err != nil {
		panic(err)
	}

	return n
}
