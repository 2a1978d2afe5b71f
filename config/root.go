package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoRoot is returned by FindRoot when no ancestor holds a .modelcat
// directory.
var ErrNoRoot = errors.New("no .modelcat directory found")

// FindRoot ascends from path and returns the absolute path of the first
// directory containing a .modelcat directory. path itself is checked first.
func FindRoot(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", path, err)
	}

	curr := absPath
	for {
		info, err := os.Stat(filepath.Join(curr, filepath.Dir(relPath)))
		if err == nil && info.IsDir() {
			return curr, nil
		}
		parent := filepath.Dir(curr)
		if parent == curr {
			return "", fmt.Errorf("%w above %s", ErrNoRoot, absPath)
		}
		curr = parent
	}
}
