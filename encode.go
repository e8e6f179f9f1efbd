package mini

import (
	"encoding"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"

	"github.com/KimNorgaard/go-mini/ast"
	minierrors "github.com/KimNorgaard/go-mini/errors"
	"github.com/KimNorgaard/go-mini/internal/formatter"
	"github.com/KimNorgaard/go-mini/internal/mapper"
)

// Encoder writes MINI documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the MINI encoding of v to the stream.
//
// An *ast.Document is written as is. A struct or string-keyed map becomes
// the root section: fields holding structs or maps become child sections,
// every other field becomes a value of the section it belongs to. Because
// values may only appear inside a section, the root itself must not
// produce values. Struct fields keep their declaration order and map keys
// are sorted. Nil pointers, interfaces, maps and slices are omitted, as
// are empty fields tagged omitempty.
func (e *Encoder) Encode(v any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}

	doc, ok := v.(*ast.Document)
	if !ok {
		es := &encodeState{depth: o.maxDepth}
		doc, err = es.encodeDocument(reflect.ValueOf(v))
		if err != nil {
			return err
		}
	}

	fopts := []formatter.Option{formatter.WithLogger(o.log)}
	if o.sortKeys {
		fopts = append(fopts, formatter.SortKeys())
	}
	return formatter.New(e.w, fopts...).Format(doc)
}

var (
	marshalerType     = reflect.TypeFor[Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

type encodeState struct {
	depth int
}

func (es *encodeState) enter() error {
	es.depth--
	if es.depth <= 0 {
		return fmt.Errorf("mini: reached max recursion depth")
	}
	return nil
}

func (es *encodeState) leave() { es.depth++ }

func (es *encodeState) encodeDocument(rv reflect.Value) (*ast.Document, error) {
	rv, ok := deref(rv)
	if !ok || !isSection(rv) {
		return nil, fmt.Errorf("mini: cannot marshal %s as a document, want struct or map", typeName(rv))
	}

	doc := ast.NewDocument()
	if err := es.encodeSection(rv, doc.Root); err != nil {
		return nil, err
	}
	if doc.Root.HasValues() {
		return nil, minierrors.New(minierrors.KeyValuePairNotInSection, doc.Root.Keys()[0])
	}
	return doc, nil
}

// encodeSection fills s from the struct or map rv.
func (es *encodeState) encodeSection(rv reflect.Value, s *ast.Section) error {
	if err := es.enter(); err != nil {
		return err
	}
	defer es.leave()

	if rv.Kind() == reflect.Map {
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("mini: map key type must be a string, got %s", rv.Type().Key())
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch as, bs := a.String(), b.String(); {
			case as < bs:
				return -1
			case as > bs:
				return 1
			}
			return 0
		})
		for _, k := range keys {
			if err := es.encodeEntry(k.String(), rv.MapIndex(k), s); err != nil {
				return err
			}
		}
		return nil
	}

	for _, f := range mapper.Of(rv.Type()).List {
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			// Field of a nil embedded pointer.
			continue
		}
		if f.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		if err := es.encodeEntry(f.Name, fv, s); err != nil {
			return err
		}
	}
	return nil
}

// encodeEntry adds rv to s under name, either as a child section or as a
// value.
func (es *encodeState) encodeEntry(name string, rv reflect.Value, s *ast.Section) error {
	if !hasCustomMarshaler(rv) {
		inner, ok := deref(rv)
		if !ok {
			return nil
		}
		if isSection(inner) {
			child := ast.NewSection()
			if err := es.encodeSection(inner, child); err != nil {
				return err
			}
			return s.SetSubSection(name, child, false)
		}
		if inner.Kind() == reflect.Slice && inner.IsNil() {
			return nil
		}
	}

	v, err := es.encodeValue(rv)
	if err != nil {
		return fmt.Errorf("mini: key %q: %w", name, err)
	}
	if v == nil {
		return nil
	}
	return s.SetValue(name, v, false)
}

// encodeValue converts rv to a MINI value. It returns nil for nil pointers
// and interfaces.
func (es *encodeState) encodeValue(rv reflect.Value) (ast.Value, error) {
	if err := es.enter(); err != nil {
		return nil, err
	}
	defer es.leave()

	if v, handled, err := marshalCustom(rv); handled || err != nil {
		return v, err
	}

	rv, ok := deref(rv)
	if !ok {
		return nil, nil
	}

	switch rv.Kind() {
	case reflect.String:
		return ast.NewString(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ast.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, minierrors.New(minierrors.IntegerValueOutOfRange, fmt.Sprintf("%d", u))
		}
		return ast.NewInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ast.NewFloat(rv.Float()), nil
	case reflect.Bool:
		return ast.NewBool(rv.Bool()), nil
	case reflect.Slice, reflect.Array:
		arr := ast.NewArray()
		for i := range rv.Len() {
			elem, err := es.encodeValue(rv.Index(i))
			if err != nil {
				return nil, err
			}
			if elem == nil {
				return nil, minierrors.New(minierrors.InvalidDataType, "nil array element")
			}
			if arr.Len() > 0 && elem.Kind() != arr.Index(0).Kind() {
				return nil, minierrors.New(minierrors.ArrayDataTypeInconsistency, rv.Type().String())
			}
			arr.Append(elem)
		}
		return arr, nil
	default:
		return nil, minierrors.New(minierrors.InvalidDataType,
			fmt.Sprintf("cannot marshal Go value of type %s", rv.Type()))
	}
}

// marshalCustom uses Marshaler or encoding.TextMarshaler when rv or a
// pointer to it implements them.
func marshalCustom(rv reflect.Value) (ast.Value, bool, error) {
	for rv.IsValid() && rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, false, nil
	}
	if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
		if rv.CanAddr() {
			rv = rv.Addr()
		} else if reflect.PointerTo(rv.Type()).Implements(marshalerType) ||
			reflect.PointerTo(rv.Type()).Implements(textMarshalerType) {
			pv := reflect.New(rv.Type())
			pv.Elem().Set(rv)
			rv = pv
		}
	}
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return nil, false, nil
	}
	if !rv.CanInterface() {
		return nil, false, nil
	}

	switch m := rv.Interface().(type) {
	case Marshaler:
		b, err := m.MarshalMINI()
		if err != nil {
			return nil, true, &MarshalerError{Type: rv.Type(), Err: err}
		}
		v, err := ast.ParseValue(string(b))
		if err != nil {
			return nil, true, &MarshalerError{Type: rv.Type(), Err: fmt.Errorf("invalid MINI value: %w", err)}
		}
		return v, true, nil
	case encoding.TextMarshaler:
		b, err := m.MarshalText()
		if err != nil {
			return nil, true, &MarshalerError{Type: rv.Type(), Err: err}
		}
		return ast.NewString(string(b)), true, nil
	}
	return nil, false, nil
}

func hasCustomMarshaler(rv reflect.Value) bool {
	if !rv.IsValid() {
		return false
	}
	t := rv.Type()
	if t.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		t = rv.Elem().Type()
	}
	if t.Kind() != reflect.Pointer {
		t = reflect.PointerTo(t)
	}
	return t.Implements(marshalerType) || t.Implements(textMarshalerType)
}

// deref follows pointers and interfaces. It reports false when it meets a
// nil one.
func deref(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return rv, false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return rv, false
	}
	if rv.Kind() == reflect.Map && rv.IsNil() {
		return rv, false
	}
	return rv, true
}

func isSection(rv reflect.Value) bool {
	return rv.Kind() == reflect.Struct || rv.Kind() == reflect.Map
}

func typeName(rv reflect.Value) string {
	if !rv.IsValid() {
		return "nil"
	}
	return rv.Type().String()
}

// isEmptyValue reports whether the value v is empty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	case reflect.Struct:
		return v.IsZero()
	}
	return false
}
