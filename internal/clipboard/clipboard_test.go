package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClipboard_SetReplacesContents(t *testing.T) {
	board := New()
	board.Set([]string{"/a"}, ModeCopy)
	board.Set([]string{"/b", "/c"}, ModeCut)

	assert.Equal(t, []string{"/b", "/c"}, board.Items())
	assert.Equal(t, ModeCut, board.Mode())
	assert.True(t, board.HasItems())
}

func TestClipboard_HasItemsGate(t *testing.T) {
	board := New()
	assert.False(t, board.HasItems())

	board.Set([]string{"/a"}, ModeCopy)
	assert.True(t, board.HasItems())

	board.Clear()
	assert.False(t, board.HasItems())
	assert.Empty(t, board.Items())
	assert.Equal(t, Mode(""), board.Mode())
}

func TestClipboard_SetEmptyClears(t *testing.T) {
	board := New()
	board.Set([]string{"/a"}, ModeCut)

	board.Set(nil, ModeCopy)

	assert.False(t, board.HasItems())
}

func TestClipboard_PasteTargets(t *testing.T) {
	board := New()
	board.Set([]string{"/a"}, ModeCopy)

	board.RecordPaste([]PasteTarget{{Source: "/a", Destination: "/docs/a"}})

	targets := board.LastPasteTargets()
	assert.Len(t, targets, 1)
	assert.Equal(t, "/docs/a", targets[0].Destination)

	// A fresh set discards the record of the previous paste.
	board.Set([]string{"/b"}, ModeCopy)
	assert.Empty(t, board.LastPasteTargets())
}

func TestClipboard_ItemsReturnsACopy(t *testing.T) {
	board := New()
	board.Set([]string{"/a"}, ModeCopy)

	items := board.Items()
	items[0] = "/mutated"

	assert.Equal(t, []string{"/a"}, board.Items())
}
