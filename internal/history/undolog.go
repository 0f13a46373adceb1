// Package history keeps a bounded, insertion-ordered log of executed
// filesystem operations for one-shot undo.
package history

import (
	"sync"

	"go-file-manager/internal/fsops"
)

const DefaultCapacity = 64

// UndoLog is a fixed-capacity deque of operation records: push-back with
// pop-front eviction once full, pop-back for undo. It behaves as a bounded
// stack from the undo side and a bounded queue from the eviction side.
type UndoLog struct {
	mu       sync.Mutex
	capacity int
	records  []fsops.Record
}

func NewUndoLog(capacity int) *UndoLog {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &UndoLog{
		capacity: capacity,
		records:  make([]fsops.Record, 0, capacity),
	}
}

// Push appends record, evicting the oldest entry if the log is at capacity.
// An evicted record is gone for good; its operation can no longer be undone.
func (l *UndoLog) Push(record fsops.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.records) == l.capacity {
		copy(l.records, l.records[1:])
		l.records = l.records[:len(l.records)-1]
	}

	l.records = append(l.records, record)
}

// PopMostRecent removes and returns the newest record. The record is consumed
// whether or not the subsequent undo succeeds.
func (l *UndoLog) PopMostRecent() (fsops.Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.records) == 0 {
		return fsops.Record{}, false
	}

	last := l.records[len(l.records)-1]
	l.records = l.records[:len(l.records)-1]
	return last, true
}

func (l *UndoLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
