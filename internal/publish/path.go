// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolvePath returns output unchanged when it is absolute and joins it
// onto baseDir otherwise.
func ResolvePath(baseDir, output string) string {
	if filepath.IsAbs(output) {
		return filepath.Clean(output)
	}
	return filepath.Join(baseDir, output)
}

// ExecutableDir returns the directory holding the running binary, with
// symlinks resolved. It is the base directory when none is configured, so
// output placement does not depend on where the program is started from.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
