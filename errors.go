package vfstree

import "fmt"

// Lookup and deletion errors
var (
	ErrUnsupported = fmt.Errorf("unsupported")
	ErrNotFound    = fmt.Errorf("not found")
)

// Attachment errors
var (
	ErrAttached = fmt.Errorf("node is already attached to a folder")
	ErrCycle    = fmt.Errorf("node cannot contain itself")
	ErrDeleted  = fmt.Errorf("node has been deleted")
)

// Registry errors
var (
	ErrDuplicateID   = fmt.Errorf("duplicate node id")
	ErrUnknownTarget = fmt.Errorf("unknown link target")
	ErrDanglingLink  = fmt.Errorf("dangling link")
	ErrNotFolder     = fmt.Errorf("not a folder")
)
