package escape

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the source dialect Unescape decodes.
type Mode int

const (
	// ModeNone leaves the input untouched.
	ModeNone Mode = iota
	// ModeEscaped decodes backslash escapes as found in conventional
	// string literals.
	ModeEscaped
	// ModeVerbatim decodes literals where a doubled quote stands for a
	// quote and backslashes carry no meaning.
	ModeVerbatim
	// ModeMarkup decodes the five predefined markup entities.
	ModeMarkup
)

var (
	// ErrBadMode is returned for a Mode value Unescape does not know.
	ErrBadMode = errors.New("unknown escaping mode")

	// ErrUnterminatedEntity is returned for an entity reference with no
	// closing semicolon.
	ErrUnterminatedEntity = errors.New("unterminated entity reference")

	// ErrUnknownEntity is returned for an entity name outside the five
	// predefined ones.
	ErrUnknownEntity = errors.New("unknown entity")
)

// SyntaxError reports malformed input for a given dialect.
type SyntaxError struct {
	Mode   Mode
	Detail string
	Text   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s in %q", e.Detail, e.Text)
}

// Unescape decodes s according to the dialect selected by m.
func Unescape(s string, m Mode) (string, error) {
	switch m {
	case ModeNone:
		return s, nil
	case ModeEscaped:
		return unescapeBackslash(s)
	case ModeVerbatim:
		return unescapeVerbatim(s)
	case ModeMarkup:
		return unescapeMarkup(s)
	}
	return "", fmt.Errorf("%w %d", ErrBadMode, int(m))
}

var escapedChars = map[byte]byte{
	'\'': '\'',
	'"':  '"',
	'\\': '\\',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

func unescapeBackslash(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", &SyntaxError{Mode: ModeEscaped, Detail: "trailing backslash", Text: s}
		}
		i++
		// Numeric and unicode escapes are deliberately unsupported:
		// extraction cannot know the final encoding of the catalog.
		if v, ok := escapedChars[s[i]]; ok {
			b.WriteByte(v)
			continue
		}
		return "", &SyntaxError{
			Mode:   ModeEscaped,
			Detail: fmt.Sprintf("unsupported escape %q", s[i-1:i+1]),
			Text:   s,
		}
	}
	return b.String(), nil
}

func unescapeVerbatim(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '"' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) || s[i+1] != '"' {
			return "", &SyntaxError{Mode: ModeVerbatim, Detail: "lone quote", Text: s}
		}
		b.WriteByte('"')
		i++
	}
	return b.String(), nil
}

var markupEntities = map[string]byte{
	"lt":   '<',
	"gt":   '>',
	"amp":  '&',
	"apos": '\'',
	"quot": '"',
}

func unescapeMarkup(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			return "", fmt.Errorf("%w %q in %q", ErrUnterminatedEntity, s[i:], s)
		}
		name := s[i+1 : i+end]
		v, ok := markupEntities[name]
		if !ok {
			return "", fmt.Errorf("%w %q in %q", ErrUnknownEntity, name, s)
		}
		b.WriteByte(v)
		i += end
	}
	return b.String(), nil
}
