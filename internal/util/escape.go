// Package util holds small helpers that depend on no other relision package.
package util

import (
	"fmt"
	"strings"
)

// Escape escapes the special characters in s and reports whether anything
// was changed. The border rune is the delimiter of the literal being written
// (a double quote for strings, a backtick for symbols) and is escaped too.
//
// Special characters, in order of precedence:
//
//   - border becomes \ followed by border
//   - U+0080 through U+00FF become \xHH
//   - U+0100 and above become \u{H...} (up to six digits)
//   - NUL becomes \0, tab \t, newline \n, carriage return \r
//   - backslash becomes \\
//
// Hex digits are uppercase.
func Escape(s string, border rune) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	fixed := false

	for _, r := range s {
		if r == border {
			b.WriteByte('\\')
			b.WriteRune(border)
			fixed = true
			continue
		}
		if r > 127 {
			if r < 256 {
				fmt.Fprintf(&b, `\x%02X`, r)
			} else {
				fmt.Fprintf(&b, `\u{%X}`, r)
			}
			fixed = true
			continue
		}
		switch r {
		case 0:
			b.WriteString(`\0`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
			continue
		}
		fixed = true
	}

	if !fixed {
		return s, false
	}
	return b.String(), true
}
