package event

type Type string

const (
	TypeFileCopied      Type = "file.copied"
	TypeFileMoved       Type = "file.moved"
	TypeFileRenamed     Type = "file.renamed"
	TypeFileDeleted     Type = "file.deleted"
	TypeFileCreated     Type = "file.created"
	TypeDirCreated      Type = "dir.created"
	TypeOpUndone        Type = "op.undone"
	TypeClipboardPasted Type = "clipboard.pasted"
	TypeSearchStarted   Type = "search.started"
	TypeSearchCancelled Type = "search.cancelled"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

type Bus interface {
	Publish(e Event)
	// Subscribe returns a receive channel and an unsubscribe function that
	// closes it.
	Subscribe() (<-chan Event, func())
}
