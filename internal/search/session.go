package search

import (
	"sync/atomic"
)

// Result carries the full path of one matching file.
type Result struct {
	Path string `json:"path"`
}

// Progress reports scan counters. Exactly one Progress with Done=true is
// emitted per session, carrying the final counter values.
type Progress struct {
	ScannedFiles uint64 `json:"scanned_files"`
	ScannedDirs  uint64 `json:"scanned_dirs"`
	Done         bool   `json:"done"`
}

// Session is one background scan. The scanning goroutine is the only writer
// to the result and progress channels and closes both when it exits; the
// cancellation flag is the only state shared with the foreground.
type Session struct {
	ID    string
	Root  string
	Query string

	results  chan Result
	progress chan Progress

	files atomic.Uint64
	dirs  atomic.Uint64

	cancelled atomic.Bool
	done      atomic.Bool
}

// Snapshot reads the live counters directly. Unlike the progress stream it
// cannot lose updates to a full buffer, which makes it the right source for
// a polling caller.
func (s *Session) Snapshot() Progress {
	return Progress{
		ScannedFiles: s.files.Load(),
		ScannedDirs:  s.dirs.Load(),
		Done:         s.done.Load(),
	}
}

// Results streams matches. The channel is closed when the scan finishes.
func (s *Session) Results() <-chan Result {
	return s.results
}

// ProgressUpdates streams counter snapshots, ending with a Done=true message
// before the channel closes.
func (s *Session) ProgressUpdates() <-chan Progress {
	return s.progress
}

// Cancel sets the shared cancellation flag. It does not block or join the
// background goroutine; the scan observes the flag at its next check and
// winds down on its own.
func (s *Session) Cancel() {
	s.cancelled.Store(true)
}

func (s *Session) Cancelled() bool {
	return s.cancelled.Load()
}

// Done reports whether the background scan has finished, naturally or after
// observing cancellation.
func (s *Session) Done() bool {
	return s.done.Load()
}
