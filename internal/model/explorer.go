package model

import "time"

type FileItem struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Type        string    `json:"type"` // "file" or "directory"
	Size        int64     `json:"size"`
	Extension   string    `json:"extension,omitempty"`
	ModifiedAt  time.Time `json:"modified_at"`
	Permissions string    `json:"permissions"`
}

type DirectoryListData struct {
	Path  string     `json:"path"`
	Items []FileItem `json:"items"`
}

// OperationData describes one executed, undoable mutation. Paths under the
// storage root are client-relative; the trash location of a delete is
// absolute since trash lives outside the root.
type OperationData struct {
	Kind string `json:"kind"`
	From string `json:"from,omitempty"`
	To   string `json:"to"`
}

type PathPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type OperationFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type TransferResponse struct {
	Completed []PathPair         `json:"completed"`
	Failed    []OperationFailure `json:"failed"`
}

type DeleteResponse struct {
	Deleted []string           `json:"deleted"`
	Failed  []OperationFailure `json:"failed"`
}

type PasteTarget struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type ClipboardData struct {
	Items     []string      `json:"items"`
	Mode      string        `json:"mode,omitempty"`
	HasItems  bool          `json:"has_items"`
	LastPaste []PasteTarget `json:"last_paste,omitempty"`
}

type PasteResponse struct {
	Mode    string             `json:"mode"`
	Pasted  []PathPair         `json:"pasted"`
	Failed  []OperationFailure `json:"failed"`
	Cleared bool               `json:"cleared"`
}

type SearchStartData struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	Query     string `json:"query"`
}

type SearchPollData struct {
	SessionID    string   `json:"session_id"`
	Results      []string `json:"results"`
	ScannedFiles uint64   `json:"scanned_files"`
	ScannedDirs  uint64   `json:"scanned_dirs"`
	Done         bool     `json:"done"`
}
