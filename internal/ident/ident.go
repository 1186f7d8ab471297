// Package ident mangles arbitrary resource names into plain ASCII
// identifiers, so they can serve as registry keys for compiled bundles.
package ident

import (
	"fmt"
	"strings"
)

// mangledPrefix marks names that required escaping, keeping them disjoint
// from names that were already valid identifiers.
const mangledPrefix = "X"

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Valid reports whether name is a plain ASCII identifier: letters, digits
// and underscores, not starting with a digit.
func Valid(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if isLetter(name[i]) {
			continue
		}
		if isDigit(name[i]) && i > 0 {
			continue
		}
		return false
	}
	return true
}

// Sanitize returns name unchanged when it is already a valid identifier.
// Otherwise every non-conforming rune is escaped as _u<4 hex digits>, or
// _U<8 hex digits> for runes beyond the basic multilingual plane, and the
// result carries a marker prefix.
func Sanitize(name string) string {
	if Valid(name) {
		return name
	}
	var b strings.Builder
	b.WriteString(mangledPrefix)
	for _, r := range name {
		switch {
		case r < 0x80 && (isLetter(byte(r)) || isDigit(byte(r))):
			b.WriteRune(r)
		case r > 0xFFFF:
			fmt.Fprintf(&b, "_U%08x", r)
		default:
			fmt.Fprintf(&b, "_u%04x", r)
		}
	}
	return b.String()
}
