package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

// JSONLWriter writes one JSON object per line.
type JSONLWriter struct {
	buf *bufio.Writer
}

func NewJSONL(w io.Writer) *JSONLWriter {
	return &JSONLWriter{buf: bufio.NewWriterSize(w, 1<<20)}
}

// Write marshals v with sonic and appends it as a single line.
func (jw *JSONLWriter) Write(v any) error {
	b, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("jsonl: marshal: %w", err)
	}
	if _, err := jw.buf.Write(b); err != nil {
		return err
	}
	return jw.buf.WriteByte('\n')
}

// WriteDocument writes d as an object keyed by field name, keys in d.Fields order.
func (jw *JSONLWriter) WriteDocument(d Document) error {
	if err := jw.buf.WriteByte('{'); err != nil {
		return err
	}
	for i, f := range d.Fields {
		var v string
		if i < len(d.Values) {
			v = d.Values[i]
		}
		k, err := sonic.MarshalString(f)
		if err != nil {
			return fmt.Errorf("jsonl: marshal key: %w", err)
		}
		val, err := sonic.MarshalString(v)
		if err != nil {
			return fmt.Errorf("jsonl: marshal %s: %w", f, err)
		}
		if i > 0 {
			_ = jw.buf.WriteByte(',')
		}
		_, _ = jw.buf.WriteString(k)
		_ = jw.buf.WriteByte(':')
		if _, err := jw.buf.WriteString(val); err != nil {
			return err
		}
	}
	if _, err := jw.buf.WriteString("}\n"); err != nil {
		return err
	}
	return nil
}

func (jw *JSONLWriter) Flush() error {
	return jw.buf.Flush()
}
