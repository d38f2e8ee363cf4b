// Package mapping loads column mapping files. A mapping file names, in order,
// the columns a record is built from and the field each column fills:
//
//	version: "1"
//	separator: ";"
//	encoding: windows-1250
//	columns:
//	  - column: Ime
//	    field: Name
//	  - column: Starost
//	    field: Age
//
// The same structure is accepted as JSON when the file ends in .json.
package mapping

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"rowmapper/internal/rowmap"
)

type File struct {
	Version   string   `yaml:"version" json:"version"`
	Separator string   `yaml:"separator,omitempty" json:"separator,omitempty"`
	Encoding  string   `yaml:"encoding,omitempty" json:"encoding,omitempty"`
	Columns   []Column `yaml:"columns" json:"columns"`
}

type Column struct {
	// Name is the column name as it appears in the header line.
	Name string `yaml:"column" json:"column"`
	// Field is the record field the column fills; defaults to Name.
	Field string `yaml:"field,omitempty" json:"field,omitempty"`
}

// LoadFile reads a mapping file, choosing the format by extension.
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return Parse(b)
	case ".json":
		return ParseJSON(b)
	default:
		return nil, fmt.Errorf("unsupported mapping file format %q (use .json or .yaml/.yml)", ext)
	}
}

// Parse parses YAML mapping data.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}
	return finish(&f)
}

// ParseJSON parses JSON mapping data.
func ParseJSON(data []byte) (*File, error) {
	var f File
	if err := sonic.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse mapping JSON: %w", err)
	}
	return finish(&f)
}

func finish(f *File) (*File, error) {
	applyDefaults(f)
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
	for i := range f.Columns {
		c := &f.Columns[i]
		if c.Field == "" {
			c.Field = c.Name
		}
	}
}

// Validate rejects mapping files with no columns, empty column names, or a
// column or field listed twice.
func (f *File) Validate() error {
	if len(f.Columns) == 0 {
		return errors.New("mapping: no columns")
	}
	seen := make(map[string]struct{}, len(f.Columns))
	fields := make(map[string]string, len(f.Columns))
	for i, c := range f.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("mapping: columns[%d]: empty column name", i)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("mapping: %w: %q", rowmap.ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = struct{}{}
		if prev, dup := fields[c.Field]; dup {
			return fmt.Errorf("mapping: %w: columns %q and %q both fill field %q", rowmap.ErrDuplicateColumn, prev, c.Name, c.Field)
		}
		fields[c.Field] = c.Name
	}
	return nil
}

// Names returns the column names as they appear in the header.
func (f *File) Names() []string {
	out := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		out[i] = c.Name
	}
	return out
}

// Fields returns the field names in column order.
func (f *File) Fields() []string {
	out := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		out[i] = c.Field
	}
	return out
}
