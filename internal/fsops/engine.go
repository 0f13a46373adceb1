// Package fsops executes reversible mutations against the local filesystem.
// Every successful operation yields a Record sufficient to invert it; the
// engine never records a no-op and never rolls back partial state on failure.
package fsops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Engine performs copy/move/rename/create/trash-delete operations. All
// methods are synchronous and block until the underlying I/O completes; they
// are not designed for cancellation. The engine operates on absolute paths
// supplied by the caller.
type Engine struct {
	trashDir string
}

// NewEngine prepares an engine whose soft deletes land in trashDir. The
// directory is created if missing.
func NewEngine(trashDir string) (*Engine, error) {
	if strings.TrimSpace(trashDir) == "" {
		return nil, fmt.Errorf("trash directory cannot be empty")
	}

	if err := os.MkdirAll(trashDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare trash directory %q: %w", trashDir, err)
	}

	return &Engine{trashDir: trashDir}, nil
}

func (e *Engine) TrashDir() string {
	return e.trashDir
}

// Copy duplicates source into targetDir under a collision-free name. A
// failing child copy aborts the operation and leaves the partial tree in
// place; the source is never modified.
func (e *Engine) Copy(source string, targetDir string) (Record, error) {
	destination := UniquePath(targetDir, filepath.Base(source))
	if err := copyRecursive(source, destination); err != nil {
		return Record{}, fmt.Errorf("copy %q to %q: %w", source, destination, err)
	}

	return Record{Kind: KindCopy, To: destination}, nil
}

// Move relocates source into targetDir under a collision-free name, using an
// atomic rename where possible and copy-then-remove across volumes.
func (e *Engine) Move(source string, targetDir string) (Record, error) {
	destination := UniquePath(targetDir, filepath.Base(source))
	if err := movePath(source, destination); err != nil {
		return Record{}, fmt.Errorf("move %q to %q: %w", source, destination, err)
	}

	return Record{Kind: KindMove, From: source, To: destination}, nil
}

// Rename gives source a new name within its parent directory. Unlike Move it
// performs no collision resolution: an occupied destination is an error, not
// a renumber.
func (e *Engine) Rename(source string, newName string) (Record, error) {
	destination := filepath.Join(filepath.Dir(source), newName)

	if _, err := os.Lstat(destination); err == nil {
		return Record{}, fmt.Errorf("rename %q to %q: %w", source, newName, os.ErrExist)
	} else if !os.IsNotExist(err) {
		return Record{}, fmt.Errorf("rename %q to %q: %w", source, newName, err)
	}

	if err := movePath(source, destination); err != nil {
		return Record{}, fmt.Errorf("rename %q to %q: %w", source, newName, err)
	}

	return Record{Kind: KindRename, From: source, To: destination}, nil
}

// Mkdir creates where/name along with any missing intermediate directories.
// Creating over an existing directory succeeds (create-if-missing semantics).
func (e *Engine) Mkdir(where string, name string) (Record, error) {
	path := filepath.Join(where, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Record{}, fmt.Errorf("mkdir %q: %w", path, err)
	}

	return Record{Kind: KindMkdir, To: path}, nil
}

// Touch creates (or opens for writing, without truncating) a file at
// where/name, creating missing parent directories first.
func (e *Engine) Touch(where string, name string) (Record, error) {
	path := filepath.Join(where, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Record{}, fmt.Errorf("touch %q: %w", path, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Record{}, fmt.Errorf("touch %q: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return Record{}, fmt.Errorf("touch %q: %w", path, err)
	}

	return Record{Kind: KindTouch, To: path}, nil
}

// DeleteToTrash soft-deletes path by moving it into the trash directory under
// a collision-free name. The original bytes are never destroyed by this call.
func (e *Engine) DeleteToTrash(path string) (Record, error) {
	destination := UniquePath(e.trashDir, filepath.Base(path))
	if err := movePath(path, destination); err != nil {
		return Record{}, fmt.Errorf("delete %q to trash: %w", path, err)
	}

	return Record{Kind: KindDelete, From: path, To: destination}, nil
}

// Undo applies the structural inverse of record. It is one-shot: a failed
// undo leaves the filesystem in whatever state the partial inverse produced
// and the failure is surfaced to the caller.
func (e *Engine) Undo(record Record) error {
	switch record.Kind {
	case KindCopy, KindMkdir, KindTouch:
		if err := os.RemoveAll(record.To); err != nil {
			return fmt.Errorf("undo %s: remove %q: %w", record.Kind, record.To, err)
		}
		return nil
	case KindMove, KindRename, KindDelete:
		if err := movePath(record.To, record.From); err != nil {
			return fmt.Errorf("undo %s: restore %q to %q: %w", record.Kind, record.To, record.From, err)
		}
		return nil
	default:
		return fmt.Errorf("undo: unknown record kind %q", record.Kind)
	}
}
