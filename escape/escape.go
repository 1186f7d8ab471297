// Package escape implements the text escaping used by message catalogs: a
// bidirectional codec between in-memory strings and the catalog wire format,
// and one-way unescaping of the source dialects extraction tools encounter.
package escape

import (
	"fmt"
	"strings"
	"unicode"
)

// EncodeError reports a character that cannot be represented in the wire
// format.
type EncodeError struct {
	Char rune
	Text string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cannot encode control character %q in %q", e.Char, e.Text)
}

// DecodeError reports an unrecognized escape sequence in wire-format text.
type DecodeError struct {
	Escape string
	Text   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unrecognized escape %q in %q", e.Escape, e.Text)
}

// Encode converts s to its wire-format representation. The quote, backslash,
// newline, carriage return and tab characters are escaped; any other control
// character is an encoding error.
func Encode(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsControl(r) && r != '_' {
				return "", &EncodeError{Char: r, Text: s}
			}
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// Decode is the inverse of Encode. Exactly the five escapes the encoder
// emits are accepted; anything else after a backslash is a decoding error.
func Decode(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", &DecodeError{Escape: `\`, Text: s}
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			return "", &DecodeError{Escape: s[i-1 : i+1], Text: s}
		}
	}
	return b.String(), nil
}
