// Package storage confines the API's client-relative paths to a configured
// root. Mutations themselves are performed by the operation engine on
// resolved absolute paths; this package only resolves, relativizes, and
// reads.
package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type Storage struct {
	validator *PathValidator
}

func New(root string) (*Storage, error) {
	validator, err := NewPathValidator(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(validator.RootAbs(), 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &Storage{validator: validator}, nil
}

func (s *Storage) RootAbs() string {
	return s.validator.RootAbs()
}

// Resolve turns a client path into an absolute path under the root, or fails
// when the path escapes it.
func (s *Storage) Resolve(clientPath string) (string, error) {
	return s.validator.ResolvePath(clientPath)
}

// Relativize is the inverse of Resolve: it maps an absolute path under the
// root back to the slash-separated client form.
func (s *Storage) Relativize(absPath string) (string, error) {
	rel, err := filepath.Rel(s.validator.RootAbs(), absPath)
	if err != nil {
		return "", fmt.Errorf("relativize %q: %w", absPath, err)
	}

	if rel == "." {
		return "/", nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("relativize %q: outside storage root", absPath)
	}

	return path.Clean("/" + filepath.ToSlash(rel)), nil
}

func (s *Storage) Stat(clientPath string) (fs.FileInfo, error) {
	resolved, err := s.Resolve(clientPath)
	if err != nil {
		return nil, err
	}

	return os.Stat(resolved)
}

func (s *Storage) ReadDir(clientPath string) ([]fs.DirEntry, error) {
	resolved, err := s.Resolve(clientPath)
	if err != nil {
		return nil, err
	}

	return os.ReadDir(resolved)
}
