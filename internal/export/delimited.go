package export

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// DelimitedWriter writes lines of values joined by a literal separator, the
// same shape rowmap reads. Values are written verbatim: no quoting, so a value
// containing the separator or a line break will not read back the same.
type DelimitedWriter struct {
	buf *bufio.Writer
	sep string
}

func NewDelimited(w io.Writer, sep string) (*DelimitedWriter, error) {
	if sep == "" {
		return nil, errors.New("export: empty separator")
	}
	return &DelimitedWriter{buf: bufio.NewWriterSize(w, 1<<20), sep: sep}, nil
}

func (dw *DelimitedWriter) WriteHeader(header []string) error {
	return dw.WriteRow(header)
}

func (dw *DelimitedWriter) WriteRow(row []string) error {
	if _, err := dw.buf.WriteString(strings.Join(row, dw.sep)); err != nil {
		return err
	}
	return dw.buf.WriteByte('\n')
}

func (dw *DelimitedWriter) Flush() error {
	return dw.buf.Flush()
}
