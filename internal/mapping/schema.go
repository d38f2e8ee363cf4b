package mapping

import (
	"rowmapper/internal/export"
	"rowmapper/internal/rowmap"
)

// Schema binds every mapped column to the exported string field of T named by
// the column's Field.
func Schema[T any](f *File) (*rowmap.Schema[T], error) {
	fields := make([]rowmap.Field[T], 0, len(f.Columns))
	for _, c := range f.Columns {
		fd, err := rowmap.FieldByName[T](c.Name, c.Field)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fd)
	}
	return rowmap.NewSchema(fields...)
}

// DocumentSchema builds documents whose fields follow the mapping's column order.
func DocumentSchema(f *File) (*rowmap.Schema[export.Document], error) {
	names := f.Fields()
	fields := make([]rowmap.Field[export.Document], 0, len(f.Columns))
	for i, c := range f.Columns {
		i := i
		fields = append(fields, rowmap.Field[export.Document]{
			Column: c.Name,
			Set:    func(d *export.Document, v string) { d.Set(i, v) },
		})
	}
	s, err := rowmap.NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	s.New = func() export.Document { return export.NewDocument(names) }
	return s, nil
}
