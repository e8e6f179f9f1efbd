package mini

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/KimNorgaard/go-mini/ast"
)

const defaultMaxDepth = 1000

// Option configures parsing, decoding and encoding.
type Option func(*options) error

type options struct {
	log      *slog.Logger
	into     *ast.Document
	maxDepth int
	sortKeys bool
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithLogger sets the logger that receives debug diagnostics from the
// parser and the formatter.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) error {
		if log == nil {
			return fmt.Errorf("mini: logger must not be nil")
		}
		o.log = log
		return nil
	}
}

// Into makes Parse, ReadFile and the decoders add the parsed input to doc
// instead of a fresh document. Existing sections of doc may be reopened by
// the input, but keys must not collide.
func Into(doc *ast.Document) Option {
	return func(o *options) error {
		if doc == nil {
			return fmt.Errorf("mini: target document must not be nil")
		}
		o.into = doc
		return nil
	}
}

// MaxDepth sets the maximum nesting of sections and arrays that Unmarshal
// and Marshal follow before giving up.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("mini: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// SortKeys writes keys and sections in name order rather than insertion
// order.
func SortKeys() Option {
	return func(o *options) error {
		o.sortKeys = true
		return nil
	}
}
