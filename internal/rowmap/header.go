package rowmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const bom = "\ufeff"

// lineReader yields lines without their "\n", "\r\n" or "\r" terminator.
type lineReader struct {
	br   *bufio.Reader
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReaderSize(r, 1<<20)}
}

func (lr *lineReader) next() (string, error) {
	var sb strings.Builder
	for {
		b, err := lr.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				break
			}
			return "", err
		}
		if b == '\n' {
			break
		}
		if b == '\r' {
			if nb, err := lr.br.Peek(1); err == nil && nb[0] == '\n' {
				_, _ = lr.br.ReadByte()
			}
			break
		}
		sb.WriteByte(b)
	}
	lr.line++
	return sb.String(), nil
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// readHeader consumes exactly one line and splits it on the literal separator.
func readHeader(lr *lineReader, sep string) ([]string, error) {
	line, err := lr.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: input is empty", ErrEmptyHeader)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	line = strings.TrimPrefix(line, bom)
	if isBlank(line) {
		return nil, fmt.Errorf("%w: first line is blank", ErrEmptyHeader)
	}
	return strings.Split(line, sep), nil
}
