// Package filex prepares on-disk locations for local data.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDataFile resolves path against the working directory and creates
// its parent directory. SQLite DSNs that are not plain paths (":memory:",
// "file:...") are returned untouched.
func EnsureDataFile(path string) (string, error) {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return abs, nil
}
