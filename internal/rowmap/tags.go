package rowmap

import (
	"fmt"
	"reflect"
	"strings"
)

// DefaultTag is the struct tag key read by FromTags.
const DefaultTag = "col"

// FromTags derives a schema from `col:"<column>"` struct tags on T.
func FromTags[T any]() (*Schema[T], error) {
	return FromTagsKey[T](DefaultTag)
}

// FromTagsKey derives a schema from struct tags with the given key. Fields are
// taken in declaration order and embedded structs are flattened in place. Only
// exported string fields can carry the tag; a tag value of "-" skips the field.
func FromTagsKey[T any](key string) (*Schema[T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tags: %s: %w: not a struct", rt, ErrUnsupportedField)
	}
	var fields []Field[T]
	if err := collectTagged(rt, nil, key, &fields); err != nil {
		return nil, err
	}
	return NewSchema(fields...)
}

func collectTagged[T any](rt reflect.Type, parent []int, key string, out *[]Field[T]) error {
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		index := append(append([]int(nil), parent...), i)

		tag, ok := sf.Tag.Lookup(key)
		if !ok {
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				if err := collectTagged(sf.Type, index, key, out); err != nil {
					return err
				}
			}
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if err := checkStringField(sf); err != nil {
			return err
		}
		*out = append(*out, Field[T]{Column: name, Set: indexSetter[T](index)})
	}
	return nil
}

// FieldByName binds column to the exported string field of T with the given Go name.
func FieldByName[T any](column, field string) (Field[T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		return Field[T]{}, fmt.Errorf("field %q: %s: %w: not a struct", field, rt, ErrUnsupportedField)
	}
	sf, ok := rt.FieldByName(field)
	if !ok {
		return Field[T]{}, fmt.Errorf("field %q: %w: no such field in %s", field, ErrUnsupportedField, rt)
	}
	if err := checkStringField(sf); err != nil {
		return Field[T]{}, err
	}
	// Setters never allocate, so a field promoted through an embedded pointer
	// would be written through nil.
	for k := 1; k < len(sf.Index); k++ {
		if rt.FieldByIndex(sf.Index[:k]).Type.Kind() == reflect.Pointer {
			return Field[T]{}, fmt.Errorf("field %q: %w: promoted through embedded pointer", field, ErrUnsupportedField)
		}
	}
	return Field[T]{Column: column, Set: indexSetter[T](sf.Index)}, nil
}

func checkStringField(sf reflect.StructField) error {
	if !sf.IsExported() {
		return fmt.Errorf("field %s: %w: unexported", sf.Name, ErrUnsupportedField)
	}
	if sf.Type.Kind() != reflect.String {
		return fmt.Errorf("field %s: %w: kind %s (only string fields take raw text)", sf.Name, ErrUnsupportedField, sf.Type.Kind())
	}
	return nil
}

func indexSetter[T any](index []int) Setter[T] {
	return func(rec *T, value string) {
		reflect.ValueOf(rec).Elem().FieldByIndex(index).SetString(value)
	}
}
