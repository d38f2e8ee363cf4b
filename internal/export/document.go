package export

// Document is a record whose fields are only known at run time, e.g. from a
// mapping file. Fields is shared between documents built from the same
// mapping and must not be modified.
type Document struct {
	Fields []string
	Values []string
}

func NewDocument(fields []string) Document {
	return Document{Fields: fields, Values: make([]string, len(fields))}
}

// Set stores v at field position i; out of range positions are ignored.
func (d *Document) Set(i int, v string) {
	if i >= 0 && i < len(d.Values) {
		d.Values[i] = v
	}
}

// Get returns the value of the named field, or "" if there is none.
func (d Document) Get(field string) string {
	for i, f := range d.Fields {
		if f == field && i < len(d.Values) {
			return d.Values[i]
		}
	}
	return ""
}

func (d Document) Map() map[string]string {
	m := make(map[string]string, len(d.Fields))
	for i, f := range d.Fields {
		if i < len(d.Values) {
			m[f] = d.Values[i]
		}
	}
	return m
}
