package lexer_test

import (
	"testing"

	"github.com/KimNorgaard/go-mini/lexer"
	"github.com/KimNorgaard/go-mini/token"
	"github.com/stretchr/testify/require"
)

func TestNextLine(t *testing.T) {
	input := "# Top-level comment\n" +
		"[game]\n" +
		"\tname = \"Portal\"   \n" +
		"\n" +
		"  [game.window]\r\n" +
		"dimensions = [1920, 1080]\n" +
		"   \t \n" +
		"no_newline = true"

	expected := []struct {
		expectedType    token.Type
		expectedLiteral string
		expectedLine    int
	}{
		{token.COMMENT, "# Top-level comment", 1},
		{token.SECTION, "[game]", 2},
		{token.PAIR, `name = "Portal"`, 3},
		{token.BLANK, "", 4},
		{token.SECTION, "[game.window]", 5},
		{token.PAIR, "dimensions = [1920, 1080]", 6},
		{token.BLANK, "", 7},
		{token.PAIR, "no_newline = true", 8},
		{token.EOF, "", 9},
	}

	l := lexer.New([]byte(input))
	for i, tt := range expected {
		ln := l.NextLine()
		require.Equal(t, tt.expectedType, ln.Type, "tests[%d] - type wrong", i)
		require.Equal(t, tt.expectedLiteral, ln.Literal, "tests[%d] - literal wrong", i)
		require.Equal(t, tt.expectedLine, ln.Number, "tests[%d] - line wrong", i)
	}

	// EOF is sticky.
	require.Equal(t, token.EOF, l.NextLine().Type)
}

func TestEmptyInput(t *testing.T) {
	l := lexer.New(nil)
	ln := l.NextLine()
	require.Equal(t, token.EOF, ln.Type)
	require.Equal(t, 1, ln.Number)
}

func TestTrailingNewline(t *testing.T) {
	lines := lexer.New([]byte("[a]\nx = 1\n")).Lines()
	require.Len(t, lines, 2)
	require.Equal(t, "x = 1", lines[1].Literal)
}

func TestLinesKeepsBlankLines(t *testing.T) {
	lines := lexer.New([]byte("\n\n[a]\n")).Lines()
	require.Len(t, lines, 3)
	require.Equal(t, token.BLANK, lines[0].Type)
	require.Equal(t, token.BLANK, lines[1].Type)
	require.Equal(t, token.SECTION, lines[2].Type)
	require.Equal(t, 3, lines[2].Number)
}
