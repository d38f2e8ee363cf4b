package rowmap

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// readRows builds one record per non-blank line. Values are bound by position;
// missing trailing values leave the field at its default and surplus values
// are dropped.
func readRows[T any](lr *lineReader, sep string, setters []Setter[T], s *Schema[T]) ([]T, error) {
	var out []T
	for {
		line, err := lr.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line %d: %w", lr.line+1, err)
		}
		if isBlank(line) {
			continue
		}

		values := strings.Split(line, sep)
		rec := s.newRecord()
		n := min(len(setters), len(values))
		for i := 0; i < n; i++ {
			setters[i](&rec, values[i])
		}
		out = append(out, rec)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
