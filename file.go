package mini

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/KimNorgaard/go-mini/ast"
	minierrors "github.com/KimNorgaard/go-mini/errors"
)

// ReadFile reads and parses the file at path. A file that cannot be read
// yields a FileIOError wrapping the underlying *fs.PathError.
func ReadFile(path string, opts ...Option) (*ast.Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, minierrors.Wrap(minierrors.FileIOError, path, err)
	}
	o.log.Debug("read", "path", path, "bytes", len(data))
	return parse(data, o)
}

// WriteFile formats doc and replaces the file at path with the result.
// The text is written to a temporary file in the same directory which is
// then renamed over path, so a failed write leaves the old file intact.
// An existing file keeps its permissions; a new one gets 0644.
func WriteFile(path string, doc *ast.Document, opts ...Option) error {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(doc); err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return minierrors.Wrap(minierrors.FileIOError, path, err)
	}
	tmpName := tmp.Name()
	// Once renamed, the temporary name no longer exists and this is a no-op.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return minierrors.Wrap(minierrors.FileIOError, path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return minierrors.Wrap(minierrors.FileIOError, path, err)
	}
	if err := tmp.Close(); err != nil {
		return minierrors.Wrap(minierrors.FileIOError, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return minierrors.Wrap(minierrors.FileIOError, path, err)
	}
	return nil
}
