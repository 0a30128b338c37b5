// Package vfstree contains core domain types for the in-memory namespace tree
package vfstree

import "github.com/hanwen/go-fuse/v2/fuse"

// Kind identifies which node variant an entity is
type Kind int

const (
	FileKind Kind = iota
	FolderKind
	LinkKind
)

func (k Kind) String() string {
	switch k {
	case FileKind:
		return "file"
	case FolderKind:
		return "folder"
	case LinkKind:
		return "link"
	default:
		return "unknown"
	}
}

// Mode returns the file type bits for the kind
func (k Kind) Mode() uint32 {
	switch k {
	case FolderKind:
		return fuse.S_IFDIR
	case LinkKind:
		return fuse.S_IFLNK
	default:
		return fuse.S_IFREG
	}
}

// Default permission bits applied to new nodes' attributes
const (
	DefaultFilePerms   uint32 = 0o644
	DefaultFolderPerms uint32 = 0o755
	DefaultLinkPerms   uint32 = 0o777
)

// Perms returns the default permission bits for the kind
func (k Kind) Perms() uint32 {
	switch k {
	case FolderKind:
		return DefaultFolderPerms
	case LinkKind:
		return DefaultLinkPerms
	default:
		return DefaultFilePerms
	}
}

// NodeInfo provides read-only access to node identity for external consumers
type NodeInfo interface {
	// Name returns the node's name. Not guaranteed unique among siblings
	Name() string

	// ID returns the node identifier
	ID() uint64

	Kind() Kind

	// IsDel returns true once the node has been deleted
	IsDel() bool
}
