package dhall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"common indent", "  a\n  b\n  ", "a\nb\n"},
		{"nested indent", "  a\n    b\n  ", "a\n  b\n"},
		{"blank lines ignored", "    a\n\n    b\n    ", "a\n\nb\n"},
		{"closing line counts", "    a\n  ", "  a\n"},
		{"tabs", "\ta\n\t", "a\n"},
		{"no indent", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := dedent([]textPart{{text: tt.in}})
			require.Len(t, out, 1)
			assert.Equal(t, tt.want, out[0].text)
		})
	}
}

func TestDedent_InterpolationCountsAsContent(t *testing.T) {
	expr := &Var{Name: "x"}
	out := dedent([]textPart{{text: "  "}, {expr: expr}, {text: "\n    b\n  "}})

	require.Len(t, out, 3)
	assert.Equal(t, "", out[0].text)
	assert.Same(t, expr, out[1].expr)
	assert.Equal(t, "\n  b\n", out[2].text)
}

func TestDecodeSource(t *testing.T) {
	src, err := decodeSource([]byte("\xef\xbb\xbf{ a = 1 }"))
	require.NoError(t, err)
	assert.Equal(t, "{ a = 1 }", src)

	src, err = decodeSource([]byte("héllo"))
	require.NoError(t, err)
	assert.Equal(t, "héllo", src)

	_, err = decodeSource([]byte{0xc3, 0x28})
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestLexer_Tokens(t *testing.T) {
	lx := newLexer("foo-bar -> x//y ./a.dhall env:HOME https://e.com/x `a b` +1 -2 3.0 1e5 ≡")

	var kinds []tokenKind
	var texts []string

	for {
		tok, err := lx.next()
		require.NoError(t, err)

		if tok.kind == tokEOF {
			break
		}

		kinds = append(kinds, tok.kind)
		texts = append(texts, tok.text)
	}

	assert.Equal(t, []tokenKind{
		tokLabel, tokArrow, tokLabel, tokPath, tokEnv, tokURL, tokLabel,
		tokInteger, tokInteger, tokDouble, tokDouble, tokUnsupported,
	}, kinds)
	assert.Equal(t, "foo-bar", texts[0])
	assert.Equal(t, "x//y", texts[2])
	assert.Equal(t, "HOME", texts[4])
	assert.Equal(t, "a b", texts[6])
}

func TestLexer_UnterminatedComment(t *testing.T) {
	_, err := newLexer("{- never closed").next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated block comment")
}
