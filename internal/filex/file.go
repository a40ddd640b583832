// Package filex holds small filesystem helpers for locating and creating
// the application's data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the per-user data directory name.
const AppDirName = "pwkeeper"

// EnsureDir creates dir (and parents) with owner-only permissions if it does
// not exist and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// DataDir returns the default data directory: <user config dir>/pwkeeper,
// falling back to ./.pwkeeper when the user config dir is unknown.
func DataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "." + AppDirName
	}
	return filepath.Join(base, AppDirName)
}
