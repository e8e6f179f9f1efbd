// Package mapper caches the struct field layout used to map MINI sections
// onto Go structs.
package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// Field is a struct field reachable by a MINI key or section name.
type Field struct {
	Name      string
	Index     []int
	Tagged    bool
	OmitEmpty bool
}

// Fields is the mapped layout of one struct type.
type Fields struct {
	// List holds the fields in declaration order, embedded structs
	// flattened in place.
	List []Field

	byName  map[string]int
	byLower map[string]int
}

// Lookup finds the field for name. An exact match wins over a
// case-insensitive one.
func (fs *Fields) Lookup(name string) (Field, bool) {
	if i, ok := fs.byName[name]; ok {
		return fs.List[i], true
	}
	if i, ok := fs.byLower[strings.ToLower(name)]; ok {
		return fs.List[i], true
	}
	return Field{}, false
}

var fieldCache sync.Map // map[reflect.Type]*Fields

// Of returns the field layout of struct type t. Unexported fields and
// fields tagged `mini:"-"` are skipped. The result is cached per type.
func Of(t reflect.Type) *Fields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*Fields)
	}

	var all []Field
	walk(&all, t, nil)

	fs := &Fields{
		byName:  make(map[string]int),
		byLower: make(map[string]int),
	}
	// A shallower field shadows a deeper one of the same name.
	depth := make(map[string]int)
	for _, f := range all {
		if d, ok := depth[f.Name]; ok && d <= len(f.Index) {
			continue
		}
		depth[f.Name] = len(f.Index)
	}
	for _, f := range all {
		if depth[f.Name] != len(f.Index) {
			continue
		}
		if _, dup := fs.byName[f.Name]; dup {
			continue
		}
		fs.byName[f.Name] = len(fs.List)
		lower := strings.ToLower(f.Name)
		if _, ok := fs.byLower[lower]; !ok {
			fs.byLower[lower] = len(fs.List)
		}
		fs.List = append(fs.List, f)
	}

	f, _ := fieldCache.LoadOrStore(t, fs)
	return f.(*Fields)
}

func walk(out *[]Field, t reflect.Type, parent []int) {
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("mini")
		if tag == "-" {
			continue
		}
		idx := append(append([]int(nil), parent...), i)

		name, opts, _ := strings.Cut(tag, ",")
		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				walk(out, ft, idx)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		f := Field{Name: sf.Name, Index: idx}
		if name != "" {
			f.Name = name
			f.Tagged = true
		}
		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			if opt == "omitempty" {
				f.OmitEmpty = true
			}
		}
		*out = append(*out, f)
	}
}
