package iox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// LookupEncoding resolves an encoding by IANA name or alias ("UTF-8",
// "ISO-8859-1", "latin1", "windows-1250", ...), falling back to WHATWG labels
// such as "cp1252". An empty name means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return unicode.UTF8, nil
	}
	if enc, err := ianaindex.IANA.Encoding(n); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(n); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
}

// Open opens path and decodes it from enc to UTF-8. Closing the result closes the file.
func Open(path string, enc encoding.Encoding) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if enc == nil || enc == unicode.UTF8 {
		return f, nil
	}
	return &rc{Reader: transform.NewReader(f, enc.NewDecoder()), Closers: []io.Closer{f}}, nil
}

// Create creates path; text written to the result is encoded from UTF-8 to enc.
func Create(path string, enc encoding.Encoding) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return Encode(f, enc), nil
}

// Encode wraps w so that UTF-8 text written to it reaches w encoded as enc.
// Close flushes the encoder and then closes w.
func Encode(w io.WriteCloser, enc encoding.Encoding) io.WriteCloser {
	if enc == nil || enc == unicode.UTF8 {
		return w
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return &wc{Writer: tw, Closers: []io.Closer{tw, w}}
}

type rc struct {
	io.Reader
	Closers []io.Closer
}

func (r *rc) Close() error {
	var err error
	for i := range r.Closers {
		if e := r.Closers[i].Close(); err == nil && e != nil {
			err = e
		}
	}
	return err
}

type wc struct {
	io.Writer
	Closers []io.Closer
}

func (w *wc) Close() error {
	var err error
	for i := range w.Closers {
		if e := w.Closers[i].Close(); err == nil && e != nil {
			err = e
		}
	}
	return err
}
