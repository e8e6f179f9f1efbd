package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrim(t *testing.T) {
	require.Equal(t, "a b", Trim(" \t a b\t "))
	require.Equal(t, "", Trim(" \t "))
	require.Equal(t, "x\r", Trim("x\r"), "only spaces and tabs are trimmed")
}

func TestIsNameValid(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"game", true},
		{"is_completed", true},
		{"Window2", true},
		{"_", true},
		{"", false},
		{"my-key", false},
		{"a.b", false},
		{"na me", false},
		{"ünï", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, IsNameValid(tt.input))
		})
	}
}

func TestIndexOf(t *testing.T) {
	require.Equal(t, 1, FirstIndexOf("a=b=c", '='))
	require.Equal(t, 3, LastIndexOf("a=b=c", '='))
	require.Equal(t, -1, FirstIndexOf("abc", '='))
	require.Equal(t, -1, LastIndexOf("", '='))
}

func TestSplit(t *testing.T) {
	k, v := SplitInTwo("key = a=b", 4)
	require.Equal(t, "key ", k)
	require.Equal(t, " a=b", v)

	require.Equal(t, []string{"a", "b", "c"}, SplitByDelimiter("a.b.c", '.'))
	require.Equal(t, []string{"a", "", "b"}, SplitByDelimiter("a..b", '.'))
	require.Equal(t, []string{"a", ""}, SplitByDelimiter("a.", '.'))
	require.Equal(t, []string{"a"}, SplitByDelimiter("a", '.'))
}

func TestRemoveAllAndIsDecimal(t *testing.T) {
	require.Equal(t, "1000000", RemoveAll("1_000_000", '_'))
	require.True(t, IsDecimal("0123"))
	require.False(t, IsDecimal(""))
	require.False(t, IsDecimal("12a"))
	require.False(t, IsDecimal("-1"))
}
