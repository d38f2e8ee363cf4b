package iox

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestLookupEncoding(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "empty means utf-8", in: ""},
		{name: "utf-8", in: "UTF-8"},
		{name: "lowercase alias", in: "utf8"},
		{name: "latin1 alias", in: "latin1"},
		{name: "iso-8859-1", in: "ISO-8859-1"},
		{name: "windows code page", in: "windows-1250"},
		{name: "whatwg label", in: "cp1252"},
		{name: "unknown", in: "klingon-42", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			enc, err := LookupEncoding(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedEncoding)
				assert.Nil(t, enc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, enc)
		})
	}
}

func TestLookupEncodingEmptyIsUTF8(t *testing.T) {
	enc, err := LookupEncoding("  ")
	require.NoError(t, err)
	assert.Equal(t, unicode.UTF8, enc)
}

func TestOpenDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.txt")
	// "Zoë" in ISO-8859-1
	require.NoError(t, os.WriteFile(path, []byte{'Z', 'o', 0xEB}, 0o644))

	in, err := Open(path, charmap.ISO8859_1)
	require.NoError(t, err)
	defer in.Close()

	b, err := io.ReadAll(in)
	require.NoError(t, err)
	assert.Equal(t, "Zoë", string(b))
}

func TestCreateEncodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	out, err := Create(path, charmap.Windows1252)
	require.NoError(t, err)
	_, err = io.WriteString(out, "café")
	require.NoError(t, err)
	require.NoError(t, out.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, b)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
