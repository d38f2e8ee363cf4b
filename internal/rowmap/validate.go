package rowmap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var allowedExt = map[string]struct{}{
	".csv": {},
	".txt": {},
}

// Validate checks that path names an existing regular file with a .csv or
// .txt extension (case-insensitive). It never opens the file.
func Validate(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := allowedExt[ext]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}
