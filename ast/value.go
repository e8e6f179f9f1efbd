// Package ast defines the MINI document tree: typed values, sections and
// the document that owns them.
package ast

import (
	minierrors "github.com/KimNorgaard/go-mini/errors"
)

// Kind is the variant tag of a Value.
type Kind int

const (
	StringKind Kind = iota
	IntKind
	BoolKind
	FloatKind
	ArrayKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "string"
	case IntKind:
		return "int"
	case BoolKind:
		return "bool"
	case FloatKind:
		return "float"
	case ArrayKind:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a typed leaf of the configuration tree. The set of
// implementations is closed: *StringValue, *IntValue, *BoolValue,
// *FloatValue and *ArrayValue.
type Value interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Format returns the canonical MINI text of the value.
	Format() (string, error)
	// Comments returns the comment lines attached above the value.
	Comments() []string
	// SetComments replaces the attached comment lines.
	SetComments(lines []string)

	valueNode()
}

// Typed is a Value exposing its Go payload of type P.
type Typed[P any] interface {
	Value
	Payload() P
}

// comments holds the comment lines attached to a value or section.
type comments struct {
	lines []string
}

func (c *comments) Comments() []string         { return c.lines }
func (c *comments) SetComments(lines []string) { c.lines = lines }

// ParseValue picks the variant from the lexical shape of raw and parses it:
// a leading quote is a string, the exact literals true and false are
// booleans, a trailing f is a float, a trailing ] is an array and anything
// else is an integer.
func ParseValue(raw string) (Value, error) {
	if raw == "" {
		return nil, minierrors.New(minierrors.ValueEmpty, "")
	}

	if raw[0] == '"' {
		if len(raw) < 2 || raw[len(raw)-1] != '"' {
			return nil, minierrors.New(minierrors.MissingQuote, raw)
		}
		v, err := ParseString(raw[1 : len(raw)-1])
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	if raw == "true" || raw == "false" {
		v, err := ParseBool(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	switch raw[len(raw)-1] {
	case 'f':
		v, err := ParseFloat(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	case ']':
		v, err := ParseArray(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		v, err := ParseInt(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
