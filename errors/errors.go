// Package errors defines the closed set of failure kinds reported by the
// MINI engine and the positioned error type that carries them.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies a class of failure. Kind implements error so callers can
// match on it with errors.Is regardless of how the error was wrapped.
type Kind int

const (
	KeyNotPresent Kind = iota + 1
	KeyAlreadyPresent
	SectionNotPresent
	SectionAlreadyPresent
	FileIOError
	InvalidDataType
	FormatError
	ArrayDataTypeInconsistency
	BadEscapeSequence
	UnknownEscapeSequence
	UnescapedStringValue
	ValueEmpty
	IntegerValueInvalid
	IntegerValueOutOfRange
	IntegerStyleInvalid
	FloatValueInvalid
	BooleanValueInvalid
	ArrayNotEnclosed
	ArrayBracketsInbalanced
	InvalidName
	SectionExpectedClosingBracket
	EmptySectionName
	KeyValuePairNotInSection
	ExpectedKeyValuePair
	KeyEmpty
	MissingQuote
)

var kindMessages = map[Kind]string{
	KeyNotPresent:                 "key not present",
	KeyAlreadyPresent:             "key already present",
	SectionNotPresent:             "section not present",
	SectionAlreadyPresent:         "section already present",
	FileIOError:                   "file i/o error",
	InvalidDataType:               "invalid data type",
	FormatError:                   "format error",
	ArrayDataTypeInconsistency:    "array elements have inconsistent types",
	BadEscapeSequence:             "bad escape sequence",
	UnknownEscapeSequence:         "unknown escape sequence",
	UnescapedStringValue:          "unescaped quote in string value",
	ValueEmpty:                    "value is empty",
	IntegerValueInvalid:           "invalid integer value",
	IntegerValueOutOfRange:        "integer value out of range",
	IntegerStyleInvalid:           "invalid integer style",
	FloatValueInvalid:             "invalid float value",
	BooleanValueInvalid:           "invalid boolean value",
	ArrayNotEnclosed:              "array value must be enclosed in []",
	ArrayBracketsInbalanced:       "array brackets are not balanced",
	InvalidName:                   "invalid name",
	SectionExpectedClosingBracket: "expected ']' at the end of the section header",
	EmptySectionName:              "empty section name",
	KeyValuePairNotInSection:      "key-value pair outside of any section",
	ExpectedKeyValuePair:          "expected '=' in key-value pair",
	KeyEmpty:                      "key is empty",
	MissingQuote:                  "missing closing quote",
}

// Error returns the message associated with the kind.
func (k Kind) Error() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// String returns the same text as Error.
func (k Kind) String() string { return k.Error() }

// Error is a failure of a given kind, optionally positioned at a source line.
type Error struct {
	Kind Kind
	// Line is the 1-based source line, or 0 when the failure is not tied to
	// a line (value parsing in isolation, writing, lookups).
	Line int
	// Text is the offending input: the trimmed line, the value text, or the
	// name being looked up.
	Text string
	// Err is an optional underlying cause, such as an *os.PathError.
	Err error
}

// New returns an error of kind k about text.
func New(k Kind, text string) *Error {
	return &Error{Kind: k, Text: text}
}

// Wrap returns an error of kind k caused by err.
func Wrap(k Kind, text string, err error) *Error {
	return &Error{Kind: k, Text: text, Err: err}
}

// At returns a copy of e positioned at line.
func (e *Error) At(line int) *Error {
	c := *e
	c.Line = line
	return &c
}

func (e *Error) Error() string {
	msg := "mini: "
	if e.Line > 0 {
		msg += fmt.Sprintf("line %d: ", e.Line)
	}
	msg += e.Kind.Error()
	if e.Text != "" {
		msg += ": " + e.Text
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf reports the Kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var k Kind
	if stderrors.As(err, &k) {
		return k, true
	}
	return 0, false
}

// LineOf reports the source line carried by err, or 0.
func LineOf(err error) int {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Line
	}
	return 0
}
