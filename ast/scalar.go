package ast

import (
	"errors"
	"math"
	"strconv"
	"strings"

	minierrors "github.com/KimNorgaard/go-mini/errors"
	"github.com/KimNorgaard/go-mini/internal/textutil"
)

// StringValue is a quoted string. Value holds the unescaped content.
type StringValue struct {
	comments
	Value string
}

// NewString returns a StringValue holding s.
func NewString(s string) *StringValue { return &StringValue{Value: s} }

func (v *StringValue) Kind() Kind      { return StringKind }
func (v *StringValue) Payload() string { return v.Value }
func (v *StringValue) valueNode()      {}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// Format escapes the content and wraps it in double quotes.
func (v *StringValue) Format() (string, error) {
	return `"` + stringEscaper.Replace(v.Value) + `"`, nil
}

// ParseString unescapes the content found between the quotes of a string
// literal. The quotes themselves must already be stripped.
func ParseString(raw string) (*StringValue, error) {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '\\':
			if i+1 >= len(raw) {
				return nil, minierrors.New(minierrors.BadEscapeSequence, raw)
			}
			switch raw[i+1] {
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\':
				b.WriteByte('\\')
			default:
				return nil, minierrors.New(minierrors.UnknownEscapeSequence, `\`+string(raw[i+1]))
			}
			i++
		case '"':
			return nil, minierrors.New(minierrors.UnescapedStringValue, raw)
		default:
			b.WriteByte(c)
		}
	}

	return &StringValue{Value: b.String()}, nil
}

// IntStyle records the radix an integer was written in.
type IntStyle int

const (
	Decimal IntStyle = iota
	Hexadecimal
	Binary
)

func (s IntStyle) String() string {
	switch s {
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hexadecimal"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// IntValue is a 64-bit signed integer. Style decides how Format writes it.
type IntValue struct {
	comments
	Value int64
	Style IntStyle
}

// NewInt returns a decimal IntValue holding i.
func NewInt(i int64) *IntValue { return &IntValue{Value: i} }

func (v *IntValue) Kind() Kind     { return IntKind }
func (v *IntValue) Payload() int64 { return v.Value }
func (v *IntValue) valueNode()     {}

// Format writes decimal values as plain digits, hexadecimal values as
// lowercase digits followed by h and binary values as the shortest bit
// pattern followed by b. Negative values keep a leading minus sign.
func (v *IntValue) Format() (string, error) {
	switch v.Style {
	case Decimal:
		return strconv.FormatInt(v.Value, 10), nil
	case Hexadecimal:
		return strconv.FormatInt(v.Value, 16) + "h", nil
	case Binary:
		return strconv.FormatInt(v.Value, 2) + "b", nil
	default:
		return "", minierrors.New(minierrors.IntegerStyleInvalid, v.Style.String())
	}
}

// ParseInt parses an integer literal. Underscores are ignored anywhere. A
// trailing h selects base 16, where an optional 0x or 0X prefix is allowed
// after the sign, and a trailing b selects base 2; anything else must be
// decimal digits with an optional leading minus.
func ParseInt(raw string) (*IntValue, error) {
	s := textutil.RemoveAll(raw, '_')
	if s == "" {
		return nil, minierrors.New(minierrors.IntegerValueInvalid, raw)
	}

	style := Decimal
	base := 10
	digits := s
	switch s[len(s)-1] {
	case 'h':
		style, base, digits = Hexadecimal, 16, trimHexPrefix(s[:len(s)-1])
	case 'b':
		style, base, digits = Binary, 2, s[:len(s)-1]
	default:
		if !textutil.IsDecimal(strings.TrimPrefix(s, "-")) {
			return nil, minierrors.New(minierrors.IntegerValueInvalid, raw)
		}
	}

	i, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, minierrors.New(minierrors.IntegerValueOutOfRange, raw)
		}
		return nil, minierrors.New(minierrors.IntegerValueInvalid, raw)
	}

	return &IntValue{Value: i, Style: style}, nil
}

// trimHexPrefix drops one 0x or 0X following an optional sign.
func trimHexPrefix(s string) string {
	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return sign + s
}

// BoolValue is a boolean literal.
type BoolValue struct {
	comments
	Value bool
}

// NewBool returns a BoolValue holding b.
func NewBool(b bool) *BoolValue { return &BoolValue{Value: b} }

func (v *BoolValue) Kind() Kind    { return BoolKind }
func (v *BoolValue) Payload() bool { return v.Value }
func (v *BoolValue) valueNode()    {}

func (v *BoolValue) Format() (string, error) {
	return strconv.FormatBool(v.Value), nil
}

// ParseBool accepts exactly true or false.
func ParseBool(raw string) (*BoolValue, error) {
	switch raw {
	case "true":
		return &BoolValue{Value: true}, nil
	case "false":
		return &BoolValue{Value: false}, nil
	default:
		return nil, minierrors.New(minierrors.BooleanValueInvalid, raw)
	}
}

// FloatValue is a 64-bit float literal, written with a trailing f.
type FloatValue struct {
	comments
	Value float64
}

// NewFloat returns a FloatValue holding f.
func NewFloat(f float64) *FloatValue { return &FloatValue{Value: f} }

func (v *FloatValue) Kind() Kind       { return FloatKind }
func (v *FloatValue) Payload() float64 { return v.Value }
func (v *FloatValue) valueNode()       {}

// Format writes the shortest decimal text that parses back to the same
// float64. Magnitudes below 1e-6 or from 1e21 up use exponent notation.
// Integral values get a .0 so the text reads as a float.
func (v *FloatValue) Format() (string, error) {
	f := v.Value
	fmtByte := byte('f')
	if abs := math.Abs(f); abs != 0 && !math.IsInf(f, 0) && (abs < 1e-6 || abs >= 1e21) {
		fmtByte = 'e'
	}
	s := strconv.FormatFloat(f, fmtByte, -1, 64)
	if !strings.ContainsAny(s, ".eInN") {
		s += ".0"
	}
	return s + "f", nil
}

// ParseFloat parses a float literal. A single trailing f is removed before
// conversion.
func ParseFloat(raw string) (*FloatValue, error) {
	s := strings.TrimSuffix(raw, "f")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, minierrors.New(minierrors.FloatValueInvalid, raw)
	}
	return &FloatValue{Value: f}, nil
}
