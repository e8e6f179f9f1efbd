// Package testutil exposes the MINI sample documents shared by tests.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// TestdataFS holds the embedded test data files. Documents under valid/
// parse and format back to themselves; documents under invalid/ fail to
// parse.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	p := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Glob returns the names of the embedded files matching pattern, relative
// to testdata/ so they can be passed to ReadTestData.
func Glob(pattern string) ([]string, error) {
	matches, err := fs.Glob(TestdataFS, path.Join("testdata", pattern))
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = strings.TrimPrefix(m, "testdata/")
	}
	return matches, nil
}
