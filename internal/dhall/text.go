package dhall

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"dhallgen/internal/errors"
)

// ErrInvalidEncoding is returned for sources that are not valid UTF-8.
var ErrInvalidEncoding = errors.New("source is not valid UTF-8")

// decodeSource turns raw bytes into source text. A leading byte order mark
// is dropped; any other encoding is rejected.
func decodeSource(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", errors.WithStack(ErrInvalidEncoding)
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())

	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", errors.Wrap(err, "decoding source")
	}

	return string(out), nil
}

// textPart is a piece of a multi-line literal: raw text or an
// interpolated expression.
type textPart struct {
	text string
	expr Term
}

// dedent strips the longest whitespace prefix shared by all non-blank lines
// of a multi-line literal. The line holding the closing quotes always
// counts, blank or not. Interpolations count as content.
func dedent(parts []textPart) []textPart {
	var (
		prefixes   []string
		lead       strings.Builder
		atStart    = true
		hasContent bool
	)

	endLine := func() {
		if hasContent {
			prefixes = append(prefixes, lead.String())
		}

		lead.Reset()

		atStart = true
		hasContent = false
	}

	for _, part := range parts {
		if part.expr != nil {
			atStart = false
			hasContent = true

			continue
		}

		for _, r := range part.text {
			switch {
			case r == '\n':
				endLine()
			case atStart && (r == ' ' || r == '\t'):
				lead.WriteRune(r)
			default:
				atStart = false
				hasContent = true
			}
		}
	}

	prefixes = append(prefixes, lead.String())
	indent := commonPrefix(prefixes)

	if indent == "" {
		return parts
	}

	out := make([]textPart, 0, len(parts))
	lineStart := true

	for _, part := range parts {
		if part.expr != nil {
			out = append(out, part)
			lineStart = false

			continue
		}

		var sb strings.Builder

		text := part.text
		for text != "" {
			if lineStart {
				text = trimIndent(text, indent)
				lineStart = false

				continue
			}

			i := strings.IndexByte(text, '\n')
			if i < 0 {
				sb.WriteString(text)
				break
			}

			sb.WriteString(text[:i+1])
			text = text[i+1:]
			lineStart = true
		}

		out = append(out, textPart{text: sb.String()})
	}

	return out
}

// trimIndent removes as much of indent from the start of s as matches.
func trimIndent(s, indent string) string {
	n := 0
	for n < len(s) && n < len(indent) && s[n] == indent[n] {
		n++
	}

	return s[n:]
}

func commonPrefix(ss []string) string {
	if len(ss) == 0 {
		return ""
	}

	prefix := ss[0]
	for _, s := range ss[1:] {
		n := 0
		for n < len(prefix) && n < len(s) && prefix[n] == s[n] {
			n++
		}

		prefix = prefix[:n]
	}

	return prefix
}
