// Package urix holds URL helpers that net/url does not provide.
package urix

import "strings"

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s for use as a single URI component, such as
// a query value. Only ASCII letters, digits and - _ . ! ~ * ' ( ) are kept;
// every other byte of the UTF-8 encoding becomes %XX. Spaces become %20, never
// '+', so the result decodes the same under both query and path rules.
func EscapeComponent(s string) string {
	n := 0

	for i := range len(s) {
		if !unreserved(s[i]) {
			n++
		}
	}

	if n == 0 {
		return s
	}

	var b strings.Builder

	b.Grow(len(s) + 2*n)

	for i := range len(s) {
		c := s[i]

		if unreserved(c) {
			b.WriteByte(c)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}

	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}
