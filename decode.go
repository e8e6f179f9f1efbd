package mini

import (
	"encoding"
	"fmt"
	"io"
	"reflect"

	"github.com/KimNorgaard/go-mini/ast"
	minierrors "github.com/KimNorgaard/go-mini/errors"
	"github.com/KimNorgaard/go-mini/internal/mapper"
)

// Decoder reads and decodes a MINI document from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Functional options can be provided to configure the decoding process,
// such as setting a maximum decoding depth with the MaxDepth option.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

var (
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
	textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Decode reads the whole input, parses it and stores the result in the
// value pointed to by v.
//
// See the documentation for Unmarshal for details about the conversion of
// MINI into a Go value.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("mini: Decode(nil reader)")
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("mini: Unmarshal(non-pointer %T or nil)", v)
	}

	data, err := io.ReadAll(d.r)
	if err != nil {
		return minierrors.Wrap(minierrors.FileIOError, "", err)
	}
	doc, err := parse(data, o)
	if err != nil {
		return err
	}

	switch target := v.(type) {
	case **ast.Document:
		*target = doc
		return nil
	case *ast.Document:
		*target = *doc
		return nil
	}

	ds := &decodeState{depth: o.maxDepth}
	return ds.decodeSection(doc.Root, rv.Elem())
}

type decodeState struct {
	depth int
}

func (ds *decodeState) enter() error {
	ds.depth--
	if ds.depth <= 0 {
		return fmt.Errorf("mini: reached max recursion depth")
	}
	return nil
}

func (ds *decodeState) leave() { ds.depth++ }

// decodeSection maps s onto rv, which must be a struct, a string-keyed map
// or an empty interface, possibly behind pointers.
func (ds *decodeState) decodeSection(s *ast.Section, rv reflect.Value) error {
	if err := ds.enter(); err != nil {
		return err
	}
	defer ds.leave()

	rv = indirect(rv)
	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return typeError("section", rv.Type())
		}
		rv.Set(reflect.ValueOf(sectionMap(s)))
		return nil
	case reflect.Map:
		return ds.decodeMap(s, rv)
	case reflect.Struct:
		return ds.decodeStruct(s, rv)
	default:
		return typeError("section", rv.Type())
	}
}

func (ds *decodeState) decodeStruct(s *ast.Section, rv reflect.Value) error {
	fields := mapper.Of(rv.Type())
	for key, v := range s.Values() {
		f, ok := fields.Lookup(key)
		if !ok {
			continue
		}
		fv, err := fieldByIndex(rv, f.Index)
		if err != nil {
			return err
		}
		if err := ds.decodeValue(v, fv); err != nil {
			return fmt.Errorf("mini: key %q: %w", key, err)
		}
	}
	for name, child := range s.SubSections() {
		f, ok := fields.Lookup(name)
		if !ok {
			continue
		}
		fv, err := fieldByIndex(rv, f.Index)
		if err != nil {
			return err
		}
		if err := ds.decodeSection(child, fv); err != nil {
			return err
		}
	}
	return nil
}

func (ds *decodeState) decodeMap(s *ast.Section, rv reflect.Value) error {
	mt := rv.Type()
	if mt.Key().Kind() != reflect.String {
		return fmt.Errorf("mini: cannot unmarshal section into map with non-string key type %s", mt.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mt))
	} else {
		rv.Clear()
	}

	elem := mt.Elem()
	for key, v := range s.Values() {
		nv := reflect.New(elem).Elem()
		if err := ds.decodeValue(v, nv); err != nil {
			return fmt.Errorf("mini: key %q: %w", key, err)
		}
		rv.SetMapIndex(reflect.ValueOf(key).Convert(mt.Key()), nv)
	}
	for name, child := range s.SubSections() {
		nv := reflect.New(elem).Elem()
		if err := ds.decodeSection(child, nv); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(name).Convert(mt.Key()), nv)
	}
	return nil
}

func (ds *decodeState) decodeValue(v ast.Value, rv reflect.Value) error {
	if err := ds.enter(); err != nil {
		return err
	}
	defer ds.leave()

	handled, err := tryCustomUnmarshal(v, rv)
	if handled || err != nil {
		return err
	}

	rv = indirect(rv)
	if rv.Kind() == reflect.Interface {
		if rv.NumMethod() != 0 {
			return typeError(v.Kind().String(), rv.Type())
		}
		rv.Set(reflect.ValueOf(plainValue(v)))
		return nil
	}

	switch val := v.(type) {
	case *ast.StringValue:
		if rv.Kind() != reflect.String {
			return typeError("string", rv.Type())
		}
		rv.SetString(val.Value)
	case *ast.IntValue:
		return setInt(val.Value, rv)
	case *ast.FloatValue:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			if rv.OverflowFloat(val.Value) {
				return fmt.Errorf("mini: float value %g overflows Go value of type %s", val.Value, rv.Type())
			}
			rv.SetFloat(val.Value)
		default:
			return typeError("float", rv.Type())
		}
	case *ast.BoolValue:
		if rv.Kind() != reflect.Bool {
			return typeError("bool", rv.Type())
		}
		rv.SetBool(val.Value)
	case *ast.ArrayValue:
		return ds.decodeArray(val, rv)
	default:
		return fmt.Errorf("mini: unsupported value type %T", v)
	}
	return nil
}

func (ds *decodeState) decodeArray(a *ast.ArrayValue, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice:
		s := reflect.MakeSlice(rv.Type(), len(a.Elements), len(a.Elements))
		for i, elem := range a.Elements {
			if err := ds.decodeValue(elem, s.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(s)
		return nil
	case reflect.Array:
		if rv.Len() != len(a.Elements) {
			return fmt.Errorf("mini: cannot unmarshal array of length %d into Go array of length %d", len(a.Elements), rv.Len())
		}
		for i, elem := range a.Elements {
			if err := ds.decodeValue(elem, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return typeError("array", rv.Type())
	}
}

func setInt(i int64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(i) {
			return fmt.Errorf("mini: integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return fmt.Errorf("mini: integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetUint(uint64(i))
	default:
		return typeError("int", rv.Type())
	}
	return nil
}

// tryCustomUnmarshal uses Unmarshaler or, for strings,
// encoding.TextUnmarshaler when the target implements them.
func tryCustomUnmarshal(v ast.Value, rv reflect.Value) (bool, error) {
	if rv.Kind() == reflect.Pointer && rv.IsNil() && rv.CanSet() {
		if rv.Type().Implements(unmarshalerType) || rv.Type().Implements(textUnmarshaler) {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
	}
	pv := rv
	if rv.Kind() != reflect.Pointer {
		if !rv.CanAddr() {
			return false, nil
		}
		pv = rv.Addr()
	}
	if !pv.CanInterface() || pv.IsNil() {
		return false, nil
	}

	if u, ok := pv.Interface().(Unmarshaler); ok {
		text, err := v.Format()
		if err != nil {
			return true, err
		}
		if err := u.UnmarshalMINI([]byte(text)); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		s, isString := v.(*ast.StringValue)
		if !isString {
			return false, nil
		}
		if err := u.UnmarshalText([]byte(s.Value)); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}
	return false, nil
}

// indirect follows pointers, allocating nil ones, and returns the value
// they lead to.
func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}
	return rv
}

// fieldByIndex is reflect.Value.FieldByIndex that allocates nil embedded
// struct pointers on the way.
func fieldByIndex(rv reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				if !rv.CanSet() {
					return reflect.Value{}, fmt.Errorf("mini: cannot set embedded pointer to unexported struct %s", rv.Type().Elem())
				}
				rv.Set(reflect.New(rv.Type().Elem()))
			}
			rv = rv.Elem()
		}
		rv = rv.Field(x)
	}
	return rv, nil
}

func typeError(what string, t reflect.Type) error {
	return minierrors.New(minierrors.InvalidDataType,
		fmt.Sprintf("cannot unmarshal %s into Go value of type %s", what, t))
}
