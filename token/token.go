// Package token defines the line tokens produced by the MINI lexer.
package token

// Type is the classification of a source line.
type Type string

// Line is a single classified source line.
type Line struct {
	Type Type
	// Literal is the line with surrounding spaces and tabs removed.
	Literal string
	// Number is the 1-based line number in the source.
	Number int
}

const (
	EOF Type = "EOF" // End of input

	BLANK   Type = "BLANK"   // empty or whitespace-only line
	COMMENT Type = "COMMENT" // # a comment
	SECTION Type = "SECTION" // [a.b.c]
	PAIR    Type = "PAIR"    // key = value
)

// Classify returns the token type of an already trimmed line.
func Classify(trimmed string) Type {
	if trimmed == "" {
		return BLANK
	}
	switch trimmed[0] {
	case '#':
		return COMMENT
	case '[':
		return SECTION
	default:
		return PAIR
	}
}
