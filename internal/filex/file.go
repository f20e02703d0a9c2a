package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir with owner-only permissions if it does not exist and
// returns its absolute path. A relative dir is resolved against the working
// directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}
