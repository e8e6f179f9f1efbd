package mini_test

import (
	"encoding/json"
	"flag"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-mini"
	"github.com/KimNorgaard/go-mini/internal/testutil"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

// TestGolden parses every sample document. Documents under valid/ and
// loose/ are converted to JSON through ToMap, invalid ones produce their
// error message; either result is compared with testdata/<name>.golden.
// Samples under loose/ use accepted spellings that format differently.
func TestGolden(t *testing.T) {
	files, err := testutil.Glob("*/*.mini")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := testutil.ReadTestData(file)
			require.NoError(t, err)

			var actual []byte
			doc, err := mini.Parse(src)
			if err != nil {
				require.True(t, strings.HasPrefix(file, "invalid/"), "unexpected error: %v", err)
				actual = []byte(err.Error())
			} else {
				require.False(t, strings.HasPrefix(file, "invalid/"), "expected a parse error")
				actual, err = json.MarshalIndent(mini.ToMap(doc), "", "  ")
				require.NoError(t, err)
			}
			actual = append(actual, '\n')

			goldenFile := filepath.Join("testdata", strings.TrimSuffix(path.Base(file), ".mini")+".golden")

			// To regenerate, run: go test -run TestGolden -update
			if *update {
				require.NoError(t, os.WriteFile(goldenFile, actual, 0o644))
			}

			expected, err := os.ReadFile(goldenFile)
			require.NoError(t, err, "Golden file not found. Run with -update to create it.")
			require.Equal(t, string(expected), string(actual))
		})
	}
}

// TestGoldenFormat checks that every valid sample is already in canonical
// form, so formatting its parsed tree reproduces it byte for byte.
func TestGoldenFormat(t *testing.T) {
	files, err := testutil.Glob("valid/*.mini")
	require.NoError(t, err)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := testutil.ReadTestData(file)
			require.NoError(t, err)

			doc, err := mini.Parse(src)
			require.NoError(t, err)

			out, err := mini.Marshal(doc)
			require.NoError(t, err)
			require.Equal(t, string(src), string(out))
		})
	}
}
