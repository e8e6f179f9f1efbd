// Package textutil holds the string primitives shared by the lexer, the
// value parsers and the writer.
package textutil

import "strings"

const horizontalSpace = " \t"

// Trim removes leading and trailing spaces and tabs. Other whitespace,
// including line breaks, is preserved.
func Trim(s string) string {
	return strings.Trim(s, horizontalSpace)
}

// IsSpace reports whether c is horizontal whitespace.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// IsNameValid reports whether name is a non-empty run of ASCII letters,
// digits and underscores.
func IsNameValid(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}

// FirstIndexOf returns the index of the first c in s, or -1.
func FirstIndexOf(s string, c byte) int {
	return strings.IndexByte(s, c)
}

// LastIndexOf returns the index of the last c in s, or -1.
func LastIndexOf(s string, c byte) int {
	return strings.LastIndexByte(s, c)
}

// SplitInTwo splits s around the byte at index i, dropping that byte.
func SplitInTwo(s string, i int) (string, string) {
	return s[:i], s[i+1:]
}

// SplitByDelimiter splits s at every occurrence of delim. Empty segments,
// including a trailing one, are kept so callers can reject them.
func SplitByDelimiter(s string, delim byte) []string {
	return strings.Split(s, string(delim))
}

// RemoveAll returns s with every occurrence of c removed.
func RemoveAll(s string, c byte) string {
	return strings.ReplaceAll(s, string(c), "")
}

// IsDecimal reports whether s is a non-empty run of ASCII digits.
func IsDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
