package fsops

import (
	"io"
	"os"
	"path/filepath"
)

// movePath relocates source to destination, attempting an atomic rename
// first. If the rename fails (typically because source and destination live
// on different storage volumes) it falls back to a recursive copy followed by
// removal of the source. The copy runs before the removal, so a copy failure
// never destroys the source.
func movePath(source string, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return err
	}

	if err := os.Rename(source, destination); err == nil {
		return nil
	}

	if err := copyRecursive(source, destination); err != nil {
		return err
	}

	return os.RemoveAll(source)
}

// copyRecursive duplicates source at destination. Directories are recreated
// and their children copied depth-first; files are duplicated byte for byte.
// The first failing child aborts the copy; any partially written tree is left
// in place for the caller to surface.
func copyRecursive(source string, destination string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return copyFile(source, destination, info.Mode())
	}

	if err := os.MkdirAll(destination, info.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		childSource := filepath.Join(source, entry.Name())
		childDestination := filepath.Join(destination, entry.Name())
		if err := copyRecursive(childSource, childDestination); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(source string, destination string, mode os.FileMode) error {
	input, err := os.Open(source)
	if err != nil {
		return err
	}
	defer input.Close()

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return err
	}

	output, err := os.OpenFile(destination, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(output, input)
	closeErr := output.Close()
	if copyErr != nil {
		return copyErr
	}

	return closeErr
}
