package mapper_test

import (
	"reflect"
	"testing"

	"github.com/KimNorgaard/go-mini/internal/mapper"
	"github.com/stretchr/testify/require"
)

type Base struct {
	ID   int
	Name string `mini:"base_name"`
}

type sample struct {
	Base
	Name    string `mini:"name,omitempty"`
	Port    int
	Skipped bool `mini:"-"`
	hidden  int
}

func TestOf(t *testing.T) {
	fs := mapper.Of(reflect.TypeFor[sample]())

	var names []string
	for _, f := range fs.List {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"ID", "base_name", "name", "Port"}, names)

	f, ok := fs.Lookup("name")
	require.True(t, ok)
	require.True(t, f.Tagged)
	require.True(t, f.OmitEmpty)
	require.Equal(t, []int{1}, f.Index)

	f, ok = fs.Lookup("id")
	require.True(t, ok, "case-insensitive fallback")
	require.Equal(t, []int{0, 0}, f.Index)

	_, ok = fs.Lookup("Skipped")
	require.False(t, ok)
	_, ok = fs.Lookup("hidden")
	require.False(t, ok)

	require.Same(t, fs, mapper.Of(reflect.TypeFor[sample]()), "layout is cached")
}

type shadow struct {
	Base
	ID string
}

func TestOfShadowing(t *testing.T) {
	fs := mapper.Of(reflect.TypeFor[shadow]())
	f, ok := fs.Lookup("ID")
	require.True(t, ok)
	require.Equal(t, []int{1}, f.Index)
	require.Len(t, fs.List, 2)
}
