// Package lexer splits MINI source text into classified lines.
package lexer

import (
	"github.com/KimNorgaard/go-mini/internal/textutil"
	"github.com/KimNorgaard/go-mini/token"
)

// Lexer transforms MINI source into a stream of line tokens.
type Lexer struct {
	input    []byte
	position int // start of the next unread line
	line     int // number of the last line returned
}

// New creates a new Lexer over input.
func New(input []byte) *Lexer {
	return &Lexer{input: input}
}

// NextLine returns the next line of the input. Once the input is exhausted
// it returns a token of type token.EOF on every call.
func (l *Lexer) NextLine() token.Line {
	if l.position >= len(l.input) {
		return token.Line{Type: token.EOF, Number: l.line + 1}
	}

	start := l.position
	end := start
	for end < len(l.input) && l.input[end] != '\n' {
		end++
	}
	l.position = end + 1
	l.line++

	raw := l.input[start:end]
	if n := len(raw); n > 0 && raw[n-1] == '\r' {
		raw = raw[:n-1]
	}

	literal := textutil.Trim(string(raw))
	return token.Line{
		Type:    token.Classify(literal),
		Literal: literal,
		Number:  l.line,
	}
}

// Lines drains the lexer and returns every line up to, but excluding, EOF.
func (l *Lexer) Lines() []token.Line {
	var lines []token.Line
	for {
		ln := l.NextLine()
		if ln.Type == token.EOF {
			return lines
		}
		lines = append(lines, ln)
	}
}
