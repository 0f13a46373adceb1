// Package clipboard holds a pending set of paths and an intent for a later
// paste.
package clipboard

import "sync"

// Mode is the paste intent attached to the clipboard contents.
type Mode string

const (
	ModeCopy Mode = "copy"
	ModeCut  Mode = "cut"
)

// PasteTarget records where one clipboard item landed during the last paste.
type PasteTarget struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Clipboard stores item paths plus an intent. Intent is present iff the item
// set is non-empty. Pasted actions are undone through the undo log, not
// through the clipboard; last-paste targets are kept only for inspection.
type Clipboard struct {
	mu         sync.Mutex
	items      []string
	mode       Mode
	lastPasted []PasteTarget
}

func New() *Clipboard {
	return &Clipboard{}
}

// Set replaces the contents and intent unconditionally; there is no merge
// with a prior set. An empty item set clears the clipboard.
func (c *Clipboard) Set(items []string, mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(items) == 0 {
		c.items = nil
		c.mode = ""
		c.lastPasted = nil
		return
	}

	c.items = append([]string(nil), items...)
	c.mode = mode
	c.lastPasted = nil
}

func (c *Clipboard) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.mode = ""
	c.lastPasted = nil
}

// HasItems reports whether a paste may proceed: a non-empty item set with an
// intent attached.
func (c *Clipboard) HasItems() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) > 0 && c.mode != ""
}

func (c *Clipboard) Items() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.items...)
}

func (c *Clipboard) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// RecordPaste stores where the items of the most recent paste ended up.
func (c *Clipboard) RecordPaste(targets []PasteTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastPasted = append([]PasteTarget(nil), targets...)
}

func (c *Clipboard) LastPasteTargets() []PasteTarget {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]PasteTarget(nil), c.lastPasted...)
}
