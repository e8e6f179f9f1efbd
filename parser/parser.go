// Package parser builds a MINI document tree from lexed lines.
package parser

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/KimNorgaard/go-mini/ast"
	minierrors "github.com/KimNorgaard/go-mini/errors"
	"github.com/KimNorgaard/go-mini/internal/textutil"
	"github.com/KimNorgaard/go-mini/lexer"
	"github.com/KimNorgaard/go-mini/token"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger receiving debug diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// Into makes the parser add to doc instead of starting from an empty
// document. Sections that already exist in doc may be opened again by a
// header; within the parsed source each header may still appear only once.
func Into(doc *ast.Document) Option {
	return func(p *Parser) {
		if doc != nil {
			p.doc = doc
			p.merge = true
		}
	}
}

// Parser holds the state of a single parse.
type Parser struct {
	l   *lexer.Lexer
	log *slog.Logger

	doc   *ast.Document
	merge bool

	current  *ast.Section
	comments []string
	// declared records the sections opened by a header in this source.
	declared map[*ast.Section]bool
}

// New creates a new parser reading from l.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:        l,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		declared: make(map[*ast.Section]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.doc == nil {
		p.doc = ast.NewDocument()
	}
	if p.doc.Root == nil {
		p.doc.Root = ast.NewSection()
	}
	return p
}

// Parse consumes every line of the input. On failure it returns the
// partially built document together with an *errors.Error carrying the
// line number; the document must then only be used for diagnostics.
func (p *Parser) Parse() (*ast.Document, error) {
	for {
		ln := p.l.NextLine()
		if ln.Type == token.EOF {
			break
		}
		if err := p.parseLine(ln); err != nil {
			perr := positioned(err, ln)
			p.log.Debug("syntax error", "line", ln.Number, "text", ln.Literal, "err", perr.Kind)
			return p.doc, perr
		}
	}

	if len(p.comments) > 0 {
		p.doc.TrailingComments = append(p.doc.TrailingComments, p.takeComments()...)
	}
	return p.doc, nil
}

func (p *Parser) parseLine(ln token.Line) error {
	switch ln.Type {
	case token.BLANK:
		return nil
	case token.COMMENT:
		p.comments = append(p.comments, ln.Literal)
		return nil
	case token.SECTION:
		return p.parseSection(ln.Literal)
	default:
		return p.parsePair(ln.Literal)
	}
}

func (p *Parser) parseSection(lit string) error {
	if !strings.HasSuffix(lit, "]") {
		return minierrors.New(minierrors.SectionExpectedClosingBracket, lit)
	}
	path := textutil.Trim(lit[1 : len(lit)-1])
	if path == "" {
		return minierrors.New(minierrors.EmptySectionName, lit)
	}

	names := textutil.SplitByDelimiter(path, '.')
	for _, name := range names {
		if !textutil.IsNameValid(name) {
			return minierrors.New(minierrors.InvalidName, lit)
		}
	}

	sec := p.doc.Root
	for i, name := range names {
		last := i == len(names)-1
		if existing, err := sec.SubSection(name); err == nil {
			if last && (!p.merge || p.declared[existing]) {
				return minierrors.New(minierrors.SectionAlreadyPresent, lit)
			}
			sec = existing
			continue
		}
		next := ast.NewSection()
		if err := sec.SetSubSection(name, next, false); err != nil {
			return err
		}
		sec = next
	}

	p.declared[sec] = true
	if c := p.takeComments(); c != nil {
		sec.SetComments(c)
	}
	p.current = sec
	p.log.Debug("section", "path", path)
	return nil
}

func (p *Parser) parsePair(lit string) error {
	if p.current == nil {
		return minierrors.New(minierrors.KeyValuePairNotInSection, lit)
	}

	eq := textutil.FirstIndexOf(lit, '=')
	if eq < 0 {
		return minierrors.New(minierrors.ExpectedKeyValuePair, lit)
	}
	rawKey, rawValue := textutil.SplitInTwo(lit, eq)
	key := textutil.Trim(rawKey)
	text := textutil.Trim(rawValue)

	switch {
	case key == "":
		return minierrors.New(minierrors.KeyEmpty, lit)
	case !textutil.IsNameValid(key):
		return minierrors.New(minierrors.InvalidName, key)
	case text == "":
		return minierrors.New(minierrors.ValueEmpty, lit)
	}

	v, err := ast.ParseValue(text)
	if err != nil {
		return err
	}
	v.SetComments(p.takeComments())

	if err := p.current.SetValue(key, v, false); err != nil {
		return err
	}
	p.log.Debug("value", "key", key, "kind", v.Kind())
	return nil
}

func (p *Parser) takeComments() []string {
	c := p.comments
	p.comments = nil
	return c
}

// positioned attaches the line to err. Errors without offending text get
// the trimmed line.
func positioned(err error, ln token.Line) *minierrors.Error {
	var e *minierrors.Error
	if !errors.As(err, &e) {
		e = minierrors.Wrap(minierrors.FormatError, ln.Literal, err)
	}
	e = e.At(ln.Number)
	if e.Text == "" {
		e.Text = ln.Literal
	}
	return e
}
