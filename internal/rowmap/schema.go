package rowmap

import (
	"fmt"
	"strings"
)

// Setter writes one raw column value into a record.
type Setter[T any] func(rec *T, value string)

// Field binds an external column name to a setter on T.
type Field[T any] struct {
	Column string
	Set    Setter[T]
}

// Schema describes how records of type T are built from named columns.
// Fields keep declaration order; column names are unique.
type Schema[T any] struct {
	// New constructs a fresh record for every data line. Nil means the zero value of T.
	New func() T

	fields []Field[T]
	byName map[string]int
}

// NewSchema builds a schema from fields in the given order. Empty or duplicate
// column names are rejected.
func NewSchema[T any](fields ...Field[T]) (*Schema[T], error) {
	s := &Schema[T]{
		fields: make([]Field[T], 0, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if err := s.add(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. Meant for package-level vars.
func MustSchema[T any](fields ...Field[T]) *Schema[T] {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema[T]) add(f Field[T]) error {
	if strings.TrimSpace(f.Column) == "" {
		return fmt.Errorf("schema: field #%d: %w: empty column name", len(s.fields), ErrUnsupportedField)
	}
	if f.Set == nil {
		return fmt.Errorf("schema: column %q: %w: nil setter", f.Column, ErrUnsupportedField)
	}
	if _, dup := s.byName[f.Column]; dup {
		return fmt.Errorf("schema: %w: %q", ErrDuplicateColumn, f.Column)
	}
	s.byName[f.Column] = len(s.fields)
	s.fields = append(s.fields, f)
	return nil
}

// Columns returns the column names in declaration order.
func (s *Schema[T]) Columns() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Column
	}
	return out
}

func (s *Schema[T]) lookup(column string) (Setter[T], bool) {
	i, ok := s.byName[column]
	if !ok {
		return nil, false
	}
	return s.fields[i].Set, true
}

func (s *Schema[T]) newRecord() T {
	if s.New != nil {
		return s.New()
	}
	var zero T
	return zero
}
