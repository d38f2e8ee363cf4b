// Package rowmap turns delimited text files into typed records.
//
// The first line of the input names the columns. Every column must be claimed
// by a field of the record Schema; each following non-blank line becomes one
// record whose fields receive the raw text at the matching position.
//
//	type Person struct {
//		Name string `col:"Name"`
//		Age  string `col:"Age"`
//	}
//
//	schema, _ := rowmap.FromTags[Person]()
//	people, err := rowmap.ReadFile("people.csv", "UTF-8", ";", schema)
package rowmap

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"

	"rowmapper/internal/iox"
)

// ReadFile validates path, resolves encodingName and decodes the whole file.
func ReadFile[T any](path, encodingName, sep string, s *Schema[T]) ([]T, error) {
	if err := Validate(path); err != nil {
		return nil, err
	}
	enc, err := iox.LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return readValidated(path, enc, sep, s)
}

// ReadFileEncoding is ReadFile with an already resolved encoding.
func ReadFileEncoding[T any](path string, enc encoding.Encoding, sep string, s *Schema[T]) ([]T, error) {
	if err := Validate(path); err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: nil encoding", ErrUnsupportedEncoding)
	}
	return readValidated(path, enc, sep, s)
}

func readValidated[T any](path string, enc encoding.Encoding, sep string, s *Schema[T]) ([]T, error) {
	in, err := iox.Open(path, enc)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	return Decode(in, sep, s)
}

// Decode reads a header line and all data lines from r, which must already
// yield decoded text.
func Decode[T any](r io.Reader, sep string, s *Schema[T]) ([]T, error) {
	if sep == "" {
		return nil, ErrEmptySeparator
	}
	if s == nil {
		return nil, errors.New("rowmap: nil schema")
	}

	lr := newLineReader(r)
	columns, err := readHeader(lr, sep)
	if err != nil {
		return nil, err
	}
	setters, err := resolve(columns, s)
	if err != nil {
		return nil, err
	}
	return readRows(lr, sep, setters, s)
}
