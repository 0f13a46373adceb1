package model

type LoginRequest struct {
	Password string `json:"password"`
}

type RenameRequest struct {
	Path    string `json:"path"`
	NewName string `json:"new_name"`
}

// TransferRequest is shared by move and copy.
type TransferRequest struct {
	Sources     []string `json:"sources"`
	Destination string   `json:"destination"`
}

type DeleteRequest struct {
	Paths []string `json:"paths"`
}

// CreateRequest is shared by mkdir and touch: name is created under path.
type CreateRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

type ClipboardRequest struct {
	Paths []string `json:"paths"`
	Mode  string   `json:"mode"`
}

type PasteRequest struct {
	Destination string `json:"destination"`
}

type SearchRequest struct {
	Path  string `json:"path"`
	Query string `json:"query"`
}
