package ast

import (
	"iter"
	"slices"
	"strings"

	minierrors "github.com/KimNorgaard/go-mini/errors"
)

// Section is a node of the configuration tree. It owns its values and its
// child sections, both keyed by name and both kept in insertion order.
// The zero value is an empty section ready to use.
type Section struct {
	comments

	keys   []string
	values map[string]Value

	names    []string
	children map[string]*Section
}

// NewSection returns an empty section.
func NewSection() *Section {
	return &Section{}
}

// SubSection resolves a dotted path of child section names, one segment at
// a time. It fails with SectionNotPresent at the first missing segment.
func (s *Section) SubSection(path string) (*Section, error) {
	cur := s
	for _, name := range strings.Split(path, ".") {
		next, ok := cur.children[name]
		if !ok {
			return nil, minierrors.New(minierrors.SectionNotPresent, name)
		}
		cur = next
	}
	return cur, nil
}

// SetSubSection inserts sub as the direct child called name. If a child of
// that name exists it is replaced when allowOverwrite is set and reported as
// SectionAlreadyPresent otherwise. A nil sub inserts an empty section.
func (s *Section) SetSubSection(name string, sub *Section, allowOverwrite bool) error {
	if _, ok := s.children[name]; ok {
		if !allowOverwrite {
			return minierrors.New(minierrors.SectionAlreadyPresent, name)
		}
	} else {
		s.names = append(s.names, name)
	}
	if sub == nil {
		sub = NewSection()
	}
	if s.children == nil {
		s.children = make(map[string]*Section)
	}
	s.children[name] = sub
	return nil
}

// DeleteSubSection removes the direct child called name and reports whether
// it existed.
func (s *Section) DeleteSubSection(name string) bool {
	if _, ok := s.children[name]; !ok {
		return false
	}
	delete(s.children, name)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
	return true
}

// Value resolves a dotted path whose last segment is a key and the rest are
// section names.
func (s *Section) Value(path string) (Value, error) {
	owner, key := s, path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		sub, err := s.SubSection(path[:i])
		if err != nil {
			return nil, err
		}
		owner, key = sub, path[i+1:]
	}

	v, ok := owner.values[key]
	if !ok {
		return nil, minierrors.New(minierrors.KeyNotPresent, key)
	}
	return v, nil
}

// SetValue stores v under the direct key name. An existing value is replaced
// when allowOverwrite is set and reported as KeyAlreadyPresent otherwise.
func (s *Section) SetValue(name string, v Value, allowOverwrite bool) error {
	if v == nil {
		return minierrors.New(minierrors.InvalidDataType, name)
	}
	if _, ok := s.values[name]; ok {
		if !allowOverwrite {
			return minierrors.New(minierrors.KeyAlreadyPresent, name)
		}
	} else {
		s.keys = append(s.keys, name)
	}
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	s.values[name] = v
	return nil
}

// DeleteValue removes the direct key name and reports whether it existed.
func (s *Section) DeleteValue(name string) bool {
	if _, ok := s.values[name]; !ok {
		return false
	}
	delete(s.values, name)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == name })
	return true
}

// Keys returns the direct value keys in insertion order.
func (s *Section) Keys() []string { return slices.Clone(s.keys) }

// Names returns the direct child section names in insertion order.
func (s *Section) Names() []string { return slices.Clone(s.names) }

// HasValues reports whether the section holds any direct values.
func (s *Section) HasValues() bool { return len(s.keys) > 0 }

// Values iterates over the direct values in insertion order.
func (s *Section) Values() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range s.keys {
			if !yield(k, s.values[k]) {
				return
			}
		}
	}
}

// SubSections iterates over the direct child sections in insertion order.
func (s *Section) SubSections() iter.Seq2[string, *Section] {
	return func(yield func(string, *Section) bool) {
		for _, n := range s.names {
			if !yield(n, s.children[n]) {
				return
			}
		}
	}
}

// StringOr returns the string at path, or fallback.
func (s *Section) StringOr(path, fallback string) string {
	return GetOrDefault[*StringValue](s, path, fallback)
}

// IntOr returns the integer at path, or fallback.
func (s *Section) IntOr(path string, fallback int64) int64 {
	return GetOrDefault[*IntValue](s, path, fallback)
}

// BoolOr returns the boolean at path, or fallback.
func (s *Section) BoolOr(path string, fallback bool) bool {
	return GetOrDefault[*BoolValue](s, path, fallback)
}

// FloatOr returns the float at path, or fallback.
func (s *Section) FloatOr(path string, fallback float64) float64 {
	return GetOrDefault[*FloatValue](s, path, fallback)
}

// Get resolves path like Section.Value and additionally requires the value
// to be a T, failing with InvalidDataType otherwise.
func Get[T Value](s *Section, path string) (T, error) {
	var zero T
	v, err := s.Value(path)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, minierrors.New(minierrors.InvalidDataType, path)
	}
	return t, nil
}

// GetOrDefault returns the payload of the T at path. Any lookup failure
// yields fallback instead of an error.
func GetOrDefault[T Typed[P], P any](s *Section, path string, fallback P) P {
	t, err := Get[T](s, path)
	if err != nil {
		return fallback
	}
	return t.Payload()
}

// Document owns the root of a configuration tree.
type Document struct {
	Root *Section
	// TrailingComments are comment lines that follow the last section or
	// value of the source and so have nothing to attach to.
	TrailingComments []string
}

// NewDocument returns a document with an empty root section.
func NewDocument() *Document {
	return &Document{Root: NewSection()}
}
