package mini

import (
	"bytes"

	"github.com/KimNorgaard/go-mini/ast"
	"github.com/KimNorgaard/go-mini/lexer"
	"github.com/KimNorgaard/go-mini/parser"
)

// Marshaler is the interface implemented by types that can marshal
// themselves into a single MINI value, such as `"text"` or `ffh`.
type Marshaler interface {
	MarshalMINI() ([]byte, error)
}

// Unmarshaler is the interface implemented by types that can unmarshal a
// MINI value. The input is the canonical text of the value.
type Unmarshaler interface {
	UnmarshalMINI([]byte) error
}

// Parse parses data into a document tree that keeps comments, key order
// and integer styles. On a syntax error the returned error is an
// *errors.Error carrying the line number.
func Parse(data []byte, opts ...Option) (*ast.Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parse(data, o)
}

func parse(data []byte, o *options) (*ast.Document, error) {
	popts := []parser.Option{parser.WithLogger(o.log)}
	if o.into != nil {
		popts = append(popts, parser.Into(o.into))
	}
	doc, err := parser.New(lexer.New(data), popts...).Parse()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Marshal returns the MINI encoding of v. v is either an *ast.Document or
// a struct or string-keyed map whose fields become sections and values.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses data and stores the result in the value pointed to by
// v. A **ast.Document or *ast.Document receives the full tree; any other
// pointer is filled by mapping sections and values onto it.
func Unmarshal(data []byte, v any, opts ...Option) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}
