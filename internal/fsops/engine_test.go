package fsops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := NewEngine(filepath.Join(t.TempDir(), "trash"))
	require.NoError(t, err)
	return engine
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEngine_Copy(t *testing.T) {
	t.Run("copies a file and leaves the source unchanged", func(t *testing.T) {
		engine := newTestEngine(t)
		src := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, src, "hello")
		target := t.TempDir()

		record, err := engine.Copy(src, target)

		require.NoError(t, err)
		assert.Equal(t, KindCopy, record.Kind)
		assert.Empty(t, record.From)
		assert.Equal(t, filepath.Join(target, "a.txt"), record.To)
		assert.Equal(t, "hello", readFile(t, record.To))
		assert.Equal(t, "hello", readFile(t, src))
	})

	t.Run("copies a directory tree recursively", func(t *testing.T) {
		engine := newTestEngine(t)
		src := filepath.Join(t.TempDir(), "tree")
		writeFile(t, filepath.Join(src, "one.txt"), "1")
		writeFile(t, filepath.Join(src, "sub", "two.txt"), "2")
		target := t.TempDir()

		record, err := engine.Copy(src, target)

		require.NoError(t, err)
		assert.Equal(t, "1", readFile(t, filepath.Join(record.To, "one.txt")))
		assert.Equal(t, "2", readFile(t, filepath.Join(record.To, "sub", "two.txt")))
	})

	t.Run("renumbers on collision in the target directory", func(t *testing.T) {
		engine := newTestEngine(t)
		src := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, src, "new")
		target := t.TempDir()
		writeFile(t, filepath.Join(target, "a.txt"), "old")

		record, err := engine.Copy(src, target)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(target, "a.txt (1)"), record.To)
		assert.Equal(t, "old", readFile(t, filepath.Join(target, "a.txt")))
		assert.Equal(t, "new", readFile(t, record.To))
	})

	t.Run("missing source surfaces an error", func(t *testing.T) {
		engine := newTestEngine(t)

		_, err := engine.Copy(filepath.Join(t.TempDir(), "nope"), t.TempDir())

		assert.Error(t, err)
	})

	t.Run("undo removes the copy without touching the source", func(t *testing.T) {
		engine := newTestEngine(t)
		src := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, src, "hello")
		target := t.TempDir()

		record, err := engine.Copy(src, target)
		require.NoError(t, err)

		require.NoError(t, engine.Undo(record))

		assert.NoFileExists(t, record.To)
		assert.Equal(t, "hello", readFile(t, src))
	})
}

func TestEngine_Move(t *testing.T) {
	t.Run("moves a file into the target directory", func(t *testing.T) {
		engine := newTestEngine(t)
		src := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, src, "hello")
		target := t.TempDir()

		record, err := engine.Move(src, target)

		require.NoError(t, err)
		assert.Equal(t, KindMove, record.Kind)
		assert.Equal(t, src, record.From)
		assert.NoFileExists(t, src)
		assert.Equal(t, "hello", readFile(t, record.To))
	})

	t.Run("renumbers on collision", func(t *testing.T) {
		engine := newTestEngine(t)
		src := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, src, "new")
		target := t.TempDir()
		writeFile(t, filepath.Join(target, "a.txt"), "old")

		record, err := engine.Move(src, target)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(target, "a.txt (1)"), record.To)
		assert.Equal(t, "old", readFile(t, filepath.Join(target, "a.txt")))
	})

	t.Run("undo restores the original location", func(t *testing.T) {
		engine := newTestEngine(t)
		src := filepath.Join(t.TempDir(), "dir")
		writeFile(t, filepath.Join(src, "f.txt"), "content")
		target := t.TempDir()

		record, err := engine.Move(src, target)
		require.NoError(t, err)

		require.NoError(t, engine.Undo(record))

		assert.NoDirExists(t, record.To)
		assert.Equal(t, "content", readFile(t, filepath.Join(src, "f.txt")))
	})
}

func TestEngine_Rename(t *testing.T) {
	t.Run("renames within the parent directory", func(t *testing.T) {
		engine := newTestEngine(t)
		parent := t.TempDir()
		src := filepath.Join(parent, "old.txt")
		writeFile(t, src, "hello")

		record, err := engine.Rename(src, "new.txt")

		require.NoError(t, err)
		assert.Equal(t, KindRename, record.Kind)
		assert.Equal(t, filepath.Join(parent, "new.txt"), record.To)
		assert.NoFileExists(t, src)
		assert.Equal(t, "hello", readFile(t, record.To))
	})

	t.Run("occupied destination is an error, not a renumber", func(t *testing.T) {
		engine := newTestEngine(t)
		parent := t.TempDir()
		src := filepath.Join(parent, "old.txt")
		writeFile(t, src, "a")
		writeFile(t, filepath.Join(parent, "new.txt"), "b")

		_, err := engine.Rename(src, "new.txt")

		assert.ErrorIs(t, err, os.ErrExist)
		assert.Equal(t, "a", readFile(t, src))
		assert.Equal(t, "b", readFile(t, filepath.Join(parent, "new.txt")))
	})

	t.Run("undo restores the old name", func(t *testing.T) {
		engine := newTestEngine(t)
		parent := t.TempDir()
		src := filepath.Join(parent, "old.txt")
		writeFile(t, src, "hello")

		record, err := engine.Rename(src, "new.txt")
		require.NoError(t, err)

		require.NoError(t, engine.Undo(record))

		assert.NoFileExists(t, record.To)
		assert.Equal(t, "hello", readFile(t, src))
	})
}

func TestEngine_Mkdir(t *testing.T) {
	t.Run("creates nested directories", func(t *testing.T) {
		engine := newTestEngine(t)
		where := t.TempDir()

		record, err := engine.Mkdir(where, filepath.Join("a", "b", "c"))

		require.NoError(t, err)
		assert.Equal(t, KindMkdir, record.Kind)
		assert.DirExists(t, record.To)
	})

	t.Run("existing directory is idempotent success", func(t *testing.T) {
		engine := newTestEngine(t)
		where := t.TempDir()

		_, err := engine.Mkdir(where, "docs")
		require.NoError(t, err)
		record, err := engine.Mkdir(where, "docs")

		require.NoError(t, err)
		assert.DirExists(t, record.To)
	})

	t.Run("undo removes the directory", func(t *testing.T) {
		engine := newTestEngine(t)
		where := t.TempDir()

		record, err := engine.Mkdir(where, "docs")
		require.NoError(t, err)

		require.NoError(t, engine.Undo(record))

		assert.NoDirExists(t, record.To)
	})
}

func TestEngine_Touch(t *testing.T) {
	t.Run("creates the file and missing parents", func(t *testing.T) {
		engine := newTestEngine(t)
		where := t.TempDir()

		record, err := engine.Touch(where, filepath.Join("notes", "todo.txt"))

		require.NoError(t, err)
		assert.Equal(t, KindTouch, record.Kind)
		assert.FileExists(t, record.To)
	})

	t.Run("does not truncate an existing file", func(t *testing.T) {
		engine := newTestEngine(t)
		where := t.TempDir()
		writeFile(t, filepath.Join(where, "todo.txt"), "keep me")

		_, err := engine.Touch(where, "todo.txt")

		require.NoError(t, err)
		assert.Equal(t, "keep me", readFile(t, filepath.Join(where, "todo.txt")))
	})
}

func TestEngine_DeleteToTrash(t *testing.T) {
	t.Run("moves the path into trash and keeps the bytes", func(t *testing.T) {
		engine := newTestEngine(t)
		src := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, src, "precious")

		record, err := engine.DeleteToTrash(src)

		require.NoError(t, err)
		assert.Equal(t, KindDelete, record.Kind)
		assert.Equal(t, src, record.From)
		assert.NoFileExists(t, src)
		assert.Equal(t, "precious", readFile(t, record.To))
	})

	t.Run("same-named deletes get distinct trash names", func(t *testing.T) {
		engine := newTestEngine(t)
		dirA := t.TempDir()
		dirB := t.TempDir()
		writeFile(t, filepath.Join(dirA, "a.txt"), "first")
		writeFile(t, filepath.Join(dirB, "a.txt"), "second")

		first, err := engine.DeleteToTrash(filepath.Join(dirA, "a.txt"))
		require.NoError(t, err)
		second, err := engine.DeleteToTrash(filepath.Join(dirB, "a.txt"))
		require.NoError(t, err)

		assert.NotEqual(t, first.To, second.To)
		assert.Equal(t, "first", readFile(t, first.To))
		assert.Equal(t, "second", readFile(t, second.To))
	})

	t.Run("delete then undo is observably a no-op", func(t *testing.T) {
		engine := newTestEngine(t)
		src := filepath.Join(t.TempDir(), "tree")
		writeFile(t, filepath.Join(src, "f.txt"), "content")

		record, err := engine.DeleteToTrash(src)
		require.NoError(t, err)
		require.NoError(t, engine.Undo(record))

		assert.NoDirExists(t, record.To)
		assert.Equal(t, "content", readFile(t, filepath.Join(src, "f.txt")))
	})
}

func TestEngine_Undo_UnknownKind(t *testing.T) {
	engine := newTestEngine(t)

	err := engine.Undo(Record{Kind: Kind("bogus"), To: "/nowhere"})

	assert.Error(t, err)
}
