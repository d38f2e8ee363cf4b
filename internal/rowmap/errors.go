package rowmap

import (
	"errors"
	"fmt"

	"rowmapper/internal/iox"
)

var (
	ErrFileNotFound        = errors.New("file not found")
	ErrInvalidExtension    = errors.New("invalid file extension (use .csv or .txt)")
	ErrUnsupportedEncoding = iox.ErrUnsupportedEncoding
	ErrEmptyHeader         = errors.New("empty header line")
	ErrUnmappedColumn      = errors.New("unmapped column")
	ErrDuplicateColumn     = errors.New("duplicate column")
	ErrEmptySeparator      = errors.New("empty separator")
	ErrUnsupportedField    = errors.New("unsupported field")
)

// UnmappedColumnError reports the first header column that no schema field claims.
type UnmappedColumnError struct {
	Column string
	Index  int
}

func (e *UnmappedColumnError) Error() string {
	return fmt.Sprintf("unmapped column %q at position %d", e.Column, e.Index)
}

func (e *UnmappedColumnError) Is(target error) bool {
	return target == ErrUnmappedColumn
}
