package fsops

import (
	"fmt"
	"os"
	"path/filepath"
)

// UniquePath returns a path for name under dir that does not currently exist.
// On collision it appends " (1)", " (2)", ... to the whole name, extension
// included ("file.txt" collides into "file.txt (1)", not "file (1).txt").
// The probe is not atomic with respect to concurrent writers; the caller's
// create may still race with an external process.
func UniquePath(dir string, name string) string {
	candidate := filepath.Join(dir, name)
	if !pathExists(candidate) {
		return candidate
	}

	for index := 1; ; index++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)", name, index))
		if !pathExists(candidate) {
			return candidate
		}
	}
}

func pathExists(path string) bool {
	// Lstat so dangling symlinks still count as occupied names.
	_, err := os.Lstat(path)
	return err == nil
}
