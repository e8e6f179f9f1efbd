package mini_test

import (
	"testing"

	"github.com/KimNorgaard/go-mini"
	"github.com/stretchr/testify/require"
)

// TestMarshal_OmitEmpty tests the functionality of the ",omitempty" struct tag.
func TestMarshal_OmitEmpty(t *testing.T) {
	type Inner struct {
		On bool `mini:"on"`
	}
	// Struct where all exportable fields are tagged with omitempty.
	type OmitStruct struct {
		String     string         `mini:"string,omitempty"`
		Int        int            `mini:"int,omitempty"`
		Float      float64        `mini:"float,omitempty"`
		Bool       bool           `mini:"bool,omitempty"`
		Slice      []string       `mini:"slice,omitempty"`
		Map        map[string]int `mini:"map,omitempty"`
		Pointer    *int           `mini:"pointer,omitempty"`
		Struct     Inner          `mini:"struct,omitempty"`
		unexported string         // Unexported fields are always ignored.
	}
	type wrapper struct {
		Section OmitStruct `mini:"section"`
	}

	t.Run("All fields are zero-valued and should be omitted", func(t *testing.T) {
		v := wrapper{Section: OmitStruct{unexported: "should be ignored"}}
		b, err := mini.Marshal(v)
		require.NoError(t, err)
		// Only the header remains because every field is zero and tagged with omitempty.
		require.Equal(t, "[section]\n", string(b))
	})

	t.Run("All fields have non-zero values and should be included", func(t *testing.T) {
		pointerVal := 123
		v := wrapper{Section: OmitStruct{
			String:  "hello",
			Int:     1,
			Float:   3.25,
			Bool:    true,
			Slice:   []string{"a"},
			Map:     map[string]int{"key": 1},
			Pointer: &pointerVal,
			Struct:  Inner{On: true},
		}}
		b, err := mini.Marshal(v)
		require.NoError(t, err)

		expected := `[section]
string = "hello"
int = 1
float = 3.25f
bool = true
slice = ["a"]
pointer = 123

[section.map]
key = 1

[section.struct]
on = true

`
		require.Equal(t, expected, string(b))
	})

	t.Run("Empty but non-nil slice is omitted", func(t *testing.T) {
		v := wrapper{Section: OmitStruct{Slice: []string{}, Int: 2}}
		b, err := mini.Marshal(v)
		require.NoError(t, err)
		require.Equal(t, "[section]\nint = 2\n\n", string(b))
	})
}
