package ast

import (
	"strings"

	minierrors "github.com/KimNorgaard/go-mini/errors"
	"github.com/KimNorgaard/go-mini/internal/textutil"
)

// ArrayValue is an ordered list of values that all share one Kind.
type ArrayValue struct {
	comments
	Elements []Value
}

// NewArray returns an ArrayValue holding elems. Homogeneity is checked when
// the array is formatted.
func NewArray(elems ...Value) *ArrayValue { return &ArrayValue{Elements: elems} }

func (v *ArrayValue) Kind() Kind       { return ArrayKind }
func (v *ArrayValue) Payload() []Value { return v.Elements }
func (v *ArrayValue) valueNode()       {}

// Len returns the number of elements.
func (v *ArrayValue) Len() int { return len(v.Elements) }

// Index returns the element at i, or nil when i is out of range.
func (v *ArrayValue) Index(i int) Value {
	if i < 0 || i >= len(v.Elements) {
		return nil
	}
	return v.Elements[i]
}

// Append adds elements to the end of the array.
func (v *ArrayValue) Append(elems ...Value) {
	v.Elements = append(v.Elements, elems...)
}

// Format writes the elements separated by ", " inside brackets.
func (v *ArrayValue) Format() (string, error) {
	parts := make([]string, 0, len(v.Elements))
	for i, elem := range v.Elements {
		if elem == nil {
			return "", minierrors.New(minierrors.InvalidDataType, "nil array element")
		}
		if i > 0 && elem.Kind() != v.Elements[0].Kind() {
			return "", minierrors.New(minierrors.ArrayDataTypeInconsistency,
				v.Elements[0].Kind().String()+" and "+elem.Kind().String())
		}
		s, err := elem.Format()
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// ParseArray parses a bracketed, comma separated list of values. Commas
// inside strings and nested arrays do not split elements, and whitespace
// outside strings is dropped.
func ParseArray(raw string) (*ArrayValue, error) {
	if len(raw) < 2 || raw[0] != '[' || raw[len(raw)-1] != ']' {
		return nil, minierrors.New(minierrors.ArrayNotEnclosed, raw)
	}

	elements, err := splitArray(raw)
	if err != nil {
		return nil, err
	}

	arr := &ArrayValue{Elements: make([]Value, 0, len(elements))}
	for _, elem := range elements {
		v, err := ParseValue(elem)
		if err != nil {
			return nil, err
		}
		if len(arr.Elements) > 0 && v.Kind() != arr.Elements[0].Kind() {
			return nil, minierrors.New(minierrors.ArrayDataTypeInconsistency, raw)
		}
		arr.Elements = append(arr.Elements, v)
	}
	return arr, nil
}

// splitArray returns the raw text of each top-level element of raw.
func splitArray(raw string) ([]string, error) {
	var (
		elements []string
		current  strings.Builder
		depth    int
		inString bool
	)

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch c {
			case '\\':
				if i+1 >= len(raw) {
					return nil, minierrors.New(minierrors.BadEscapeSequence, raw)
				}
				current.WriteByte(c)
				current.WriteByte(raw[i+1])
				i++
			case '"':
				inString = false
				current.WriteByte(c)
			default:
				current.WriteByte(c)
			}
			continue
		}

		switch {
		case c == '\\':
			// Outside of strings an escape swallows the next character.
			i++
		case c == '"':
			inString = true
			current.WriteByte(c)
		case c == '[':
			depth++
			if depth > 1 {
				current.WriteByte(c)
			}
		case c == ']':
			depth--
			if depth < 0 || (depth == 0 && i != len(raw)-1) {
				return nil, minierrors.New(minierrors.ArrayBracketsInbalanced, raw)
			}
			if depth >= 1 {
				current.WriteByte(c)
			}
		case c == ',' && depth == 1:
			elements = append(elements, current.String())
			current.Reset()
		case textutil.IsSpace(c):
		default:
			current.WriteByte(c)
		}
	}

	if depth != 0 {
		return nil, minierrors.New(minierrors.ArrayBracketsInbalanced, raw)
	}
	if current.Len() > 0 {
		elements = append(elements, current.String())
	}
	return elements, nil
}
