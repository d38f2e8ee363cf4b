package rowmap

// resolve maps every header column, in order, to the schema setter claiming it.
// It stops at the first column nobody claims; no partial result is returned.
func resolve[T any](columns []string, s *Schema[T]) ([]Setter[T], error) {
	out := make([]Setter[T], 0, len(columns))
	for i, c := range columns {
		set, ok := s.lookup(c)
		if !ok {
			return nil, &UnmappedColumnError{Column: c, Index: i}
		}
		out = append(out, set)
	}
	return out, nil
}
