package utils

import "strings"

// AsciiLower lowers the ASCII letters of s, leaving the other runes untouched,
// as required for CSS keywords.
func AsciiLower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
