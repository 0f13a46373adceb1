// Package search runs concurrent, cancellable recursive scans of a directory
// tree, streaming matches and progress back to a non-blocking reader.
package search

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
)

const DefaultBuffer = 1024

// Coordinator spawns one scanning goroutine per Start call and tracks live
// sessions by ID. Starting a new search does not cancel a prior one; each
// session carries its own flag and channel pair, and an orphaned scan keeps
// running until its flag is set or it finishes.
type Coordinator struct {
	sessions *xsync.Map[string, *Session]
	buffer   int
}

func NewCoordinator(buffer int) *Coordinator {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	return &Coordinator{
		sessions: xsync.NewMap[string, *Session](),
		buffer:   buffer,
	}
}

// Start begins a depth-first scan under root, matching query case-insensitively
// against each file's name (not its full path). The returned session exposes
// the result and progress streams and the cancellation handle.
func (c *Coordinator) Start(root string, query string) *Session {
	session := &Session{
		ID:       uuid.NewString(),
		Root:     root,
		Query:    query,
		results:  make(chan Result, c.buffer),
		progress: make(chan Progress, c.buffer),
	}

	c.sessions.Store(session.ID, session)
	go c.scan(session)

	return session
}

func (c *Coordinator) Get(id string) (*Session, bool) {
	return c.sessions.Load(id)
}

// Remove forgets a session. It does not stop the scan; call Cancel on the
// session first if it may still be running.
func (c *Coordinator) Remove(id string) {
	c.sessions.Delete(id)
}

// scan walks the tree over an explicit work-list instead of native recursion,
// which bounds stack usage on deep trees and gives every directory pop a
// uniform cancellation check. Symlinked directories are followed with no
// cycle detection; a self-referential symlink tree can keep the scan alive
// until cancelled.
func (c *Coordinator) scan(session *Session) {
	var scannedFiles, scannedDirs uint64
	queryLower := strings.ToLower(session.Query)

	pending := []string{session.Root}

walk:
	for len(pending) > 0 {
		if session.Cancelled() {
			break
		}

		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			// Unreadable directories are skipped silently; their entries are
			// simply absent from the counts.
			continue
		}

		scannedDirs++
		session.dirs.Store(scannedDirs)
		c.send(session, Progress{ScannedFiles: scannedFiles, ScannedDirs: scannedDirs})

		for _, entry := range entries {
			if session.Cancelled() {
				break walk
			}

			path := filepath.Join(dir, entry.Name())
			if isDirectory(entry, path) {
				pending = append(pending, path)
				continue
			}

			scannedFiles++
			session.files.Store(scannedFiles)
			if strings.Contains(strings.ToLower(entry.Name()), queryLower) {
				c.sendResult(session, Result{Path: path})
			}
			c.send(session, Progress{ScannedFiles: scannedFiles, ScannedDirs: scannedDirs})
		}
	}

	c.send(session, Progress{ScannedFiles: scannedFiles, ScannedDirs: scannedDirs, Done: true})
	session.done.Store(true)
	close(session.results)
	close(session.progress)
}

// send and sendResult never block: an orphaned session whose buffers have
// filled silently drops messages, mirroring a send into a stream nobody
// drains. An attentive poller keeps the buffers far from full.
func (c *Coordinator) send(session *Session, progress Progress) {
	select {
	case session.progress <- progress:
	default:
	}
}

func (c *Coordinator) sendResult(session *Session, result Result) {
	select {
	case session.results <- result:
	default:
	}
}

// isDirectory follows symlinks so that linked directories are scanned, the
// same way the rest of the engine treats them.
func isDirectory(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}

	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
