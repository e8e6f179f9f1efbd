package mini_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/KimNorgaard/go-mini"
	minierrors "github.com/KimNorgaard/go-mini/errors"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	t.Run("Struct", func(t *testing.T) {
		cfg := appConfig{Ignore: "never written"}
		cfg.App.Name = "demo"
		cfg.App.Version = 3
		cfg.Server = serverConfig{
			Host:    "localhost",
			Port:    8080,
			Timeout: 2.5,
			TLS:     &tlsConfig{Enabled: true, Cert: "c.pem"},
			Tags:    []string{"a", "b"},
			Extra:   map[string]any{"z": int64(1), "a": map[string]any{"deep": "yes"}},
		}

		b, err := mini.Marshal(cfg)
		require.NoError(t, err)
		expected := `[app]
name = "demo"
Version = 3
Debug = false

[server]
host = "localhost"
port = 8080
timeout = 2.5f
tags = ["a", "b"]

[server.tls]
enabled = true
cert = "c.pem"

[server.extra]
z = 1

[server.extra.a]
deep = "yes"

`
		require.Equal(t, expected, string(b))

		var back appConfig
		require.NoError(t, mini.Unmarshal(b, &back))
		cfg.Ignore = ""
		cfg.Server.Extra = map[string]any{"z": int64(1), "a": map[string]any{"deep": "yes"}}
		require.Equal(t, cfg, back)
	})

	t.Run("Map", func(t *testing.T) {
		m := map[string]map[string]int{
			"b": {"y": 2, "x": 1},
			"a": {"k": 0},
		}
		b, err := mini.Marshal(m)
		require.NoError(t, err)
		require.Equal(t, "[a]\nk = 0\n\n[b]\nx = 1\ny = 2\n\n", string(b))
	})

	t.Run("Pointer to struct", func(t *testing.T) {
		type inner struct{ N []float64 }
		v := &struct{ Section *inner }{Section: &inner{N: []float64{1, 0.5}}}
		b, err := mini.Marshal(v)
		require.NoError(t, err)
		require.Equal(t, "[Section]\nN = [1.0f, 0.5f]\n\n", string(b))
	})

	t.Run("Nil fields are omitted", func(t *testing.T) {
		type inner struct {
			P *int
			S []int
			M map[string]int
			I any
		}
		b, err := mini.Marshal(struct{ X inner }{})
		require.NoError(t, err)
		require.Equal(t, "[X]\n", string(b))
	})

	t.Run("Empty slice is an empty array", func(t *testing.T) {
		b, err := mini.Marshal(map[string]any{"s": map[string]any{"list": []string{}}})
		require.NoError(t, err)
		require.Equal(t, "[s]\nlist = []\n\n", string(b))
	})

	t.Run("Custom marshalers", func(t *testing.T) {
		type theme struct {
			Color   hexColor  `mini:"color"`
			Accent  *hexColor `mini:"accent"`
			Created time.Time `mini:"created"`
		}
		accent := hexColor(0x10)
		v := struct {
			Theme theme `mini:"theme"`
		}{Theme: theme{
			Color:   0xff00aa,
			Accent:  &accent,
			Created: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		}}

		b, err := mini.Marshal(v)
		require.NoError(t, err)
		require.Equal(t, "[theme]\ncolor = ff00aah\naccent = 10h\ncreated = \"2024-05-01T10:00:00Z\"\n\n", string(b))
	})
}

type badMarshaler struct{ out string }

func (m badMarshaler) MarshalMINI() ([]byte, error) {
	if m.out == "" {
		return nil, errors.New("nothing to say")
	}
	return []byte(m.out), nil
}

func TestMarshal_Errors(t *testing.T) {
	t.Run("Top-level scalar", func(t *testing.T) {
		_, err := mini.Marshal(42)
		require.EqualError(t, err, "mini: cannot marshal int as a document, want struct or map")

		_, err = mini.Marshal(nil)
		require.EqualError(t, err, "mini: cannot marshal nil as a document, want struct or map")
	})

	t.Run("Value outside section", func(t *testing.T) {
		_, err := mini.Marshal(struct{ Name string }{Name: "x"})
		require.ErrorIs(t, err, minierrors.KeyValuePairNotInSection)
	})

	t.Run("Mixed array", func(t *testing.T) {
		_, err := mini.Marshal(map[string]any{"s": map[string]any{"l": []any{1, "a"}}})
		require.ErrorIs(t, err, minierrors.ArrayDataTypeInconsistency)
	})

	t.Run("Unsupported type", func(t *testing.T) {
		_, err := mini.Marshal(map[string]any{"s": map[string]any{"c": make(chan int)}})
		require.ErrorIs(t, err, minierrors.InvalidDataType)
	})

	t.Run("Uint overflow", func(t *testing.T) {
		_, err := mini.Marshal(map[string]any{"s": map[string]uint64{"u": 1 << 63}})
		require.ErrorIs(t, err, minierrors.IntegerValueOutOfRange)
	})

	t.Run("Non-string map key", func(t *testing.T) {
		_, err := mini.Marshal(map[int]int{1: 1})
		require.EqualError(t, err, "mini: map key type must be a string, got int")
	})

	t.Run("Invalid key name", func(t *testing.T) {
		_, err := mini.Marshal(map[string]any{"s": map[string]int{"bad key": 1}})
		require.ErrorIs(t, err, minierrors.InvalidName)
	})

	t.Run("Marshaler failure", func(t *testing.T) {
		_, err := mini.Marshal(map[string]any{"s": map[string]any{"m": badMarshaler{}}})
		var merr *mini.MarshalerError
		require.ErrorAs(t, err, &merr)
		require.ErrorContains(t, err, "nothing to say")

		_, err = mini.Marshal(map[string]any{"s": map[string]any{"m": badMarshaler{out: "not valid"}}})
		require.ErrorAs(t, err, &merr)
		require.ErrorIs(t, err, minierrors.IntegerValueInvalid)
	})

	t.Run("Max depth", func(t *testing.T) {
		v := map[string]any{"a": map[string]any{"b": map[string]any{"c": map[string]any{}}}}
		_, err := mini.Marshal(v, mini.MaxDepth(3))
		require.EqualError(t, err, "mini: reached max recursion depth")
	})
}

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := mini.NewEncoder(&buf, mini.SortKeys())
	require.NoError(t, enc.Encode(map[string]any{
		"srv": struct {
			Zeta  int
			Alpha int
		}{1, 2},
	}))
	require.Equal(t, "[srv]\nAlpha = 2\nZeta = 1\n\n", buf.String())

	var back map[string]map[string]int
	require.NoError(t, mini.NewDecoder(&buf).Decode(&back))
	require.Equal(t, map[string]map[string]int{"srv": {"Alpha": 2, "Zeta": 1}}, back)
}
