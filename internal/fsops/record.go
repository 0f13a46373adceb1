package fsops

// Kind identifies the mutation a Record describes.
type Kind string

const (
	KindRename Kind = "rename"
	KindMove   Kind = "move"
	KindCopy   Kind = "copy"
	KindDelete Kind = "delete"
	KindMkdir  Kind = "mkdir"
	KindTouch  Kind = "touch"
)

// Record is an immutable description of one completed mutation, carrying
// exactly the paths needed to compute its inverse. Field use per kind:
//
//	rename/move: From is the pre-operation path, To the post-operation path
//	copy:        To is the newly created copy (no From: undo only deletes it)
//	delete:      From is the original location, To the location inside trash
//	mkdir/touch: To is the created path
type Record struct {
	Kind Kind   `json:"kind"`
	From string `json:"from,omitempty"`
	To   string `json:"to"`
}
