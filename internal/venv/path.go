package venv

import (
	"os"
	"path/filepath"
	"strings"
)

// CanonicalPath resolves a user-supplied path to the absolute, symlink- and
// ~-resolved form used as the registry key. Symlinks are only resolved when
// the path exists; a vanished path still canonicalizes to a stable key.
func CanonicalPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return filepath.Clean(abs), nil
	}
	return resolved, nil
}
