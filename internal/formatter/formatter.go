// Package formatter writes a MINI document tree as text.
package formatter

import (
	"io"
	"log/slog"
	"slices"

	"github.com/KimNorgaard/go-mini/ast"
	minierrors "github.com/KimNorgaard/go-mini/errors"
	"github.com/KimNorgaard/go-mini/internal/textutil"
)

// Option configures a Formatter.
type Option func(*Formatter)

// SortKeys writes keys and child sections in name order instead of
// insertion order.
func SortKeys() Option {
	return func(f *Formatter) { f.sorted = true }
}

// WithLogger sets the logger receiving debug diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(f *Formatter) {
		if log != nil {
			f.log = log
		}
	}
}

// Formatter writes a MINI document to an output stream.
type Formatter struct {
	w      io.Writer
	log    *slog.Logger
	sorted bool
}

// New returns a new formatter that writes to w.
func New(w io.Writer, opts ...Option) *Formatter {
	f := &Formatter{
		w:   w,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format writes doc. Each section's values come first, followed by a blank
// line, then every child section under a header carrying its full dotted
// path. Comments precede the value or header they are attached to and the
// document's trailing comments are written last.
func (f *Formatter) Format(doc *ast.Document) error {
	if doc == nil || doc.Root == nil {
		return minierrors.New(minierrors.InvalidDataType, "nil document")
	}
	if err := f.writeSection(doc.Root, ""); err != nil {
		return err
	}
	return f.writeComments(doc.TrailingComments)
}

func (f *Formatter) writeSection(s *ast.Section, path string) error {
	keys := s.Keys()
	if f.sorted {
		slices.Sort(keys)
	}
	for _, key := range keys {
		if !textutil.IsNameValid(key) {
			return minierrors.New(minierrors.InvalidName, joinPath(path, key))
		}
		v, err := s.Value(key)
		if err != nil {
			return err
		}
		text, err := v.Format()
		if err != nil {
			return err
		}
		if err := f.writeComments(v.Comments()); err != nil {
			return err
		}
		if err := f.write(key, " = ", text, "\n"); err != nil {
			return err
		}
	}
	if len(keys) > 0 {
		if err := f.write("\n"); err != nil {
			return err
		}
	}

	names := s.Names()
	if f.sorted {
		slices.Sort(names)
	}
	for _, name := range names {
		if !textutil.IsNameValid(name) {
			return minierrors.New(minierrors.InvalidName, joinPath(path, name))
		}
		child, err := s.SubSection(name)
		if err != nil {
			return err
		}
		full := joinPath(path, name)
		if err := f.writeComments(child.Comments()); err != nil {
			return err
		}
		if err := f.write("[", full, "]\n"); err != nil {
			return err
		}
		f.log.Debug("section", "path", full, "keys", len(child.Keys()))
		if err := f.writeSection(child, full); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeComments(lines []string) error {
	for _, line := range lines {
		if err := f.write(line, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) write(parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(f.w, p); err != nil {
			return minierrors.Wrap(minierrors.FileIOError, "", err)
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
