package filesystem

import (
	"github.com/brettbedarf/vfstree"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// View is the read-only side of an entity. Lookups through [Entity.Get] and
// link targets are handed out as Views so they cannot be used to mutate the tree.
type View interface {
	vfstree.NodeInfo

	// Get returns the node itself if its name matches, else the first direct
	// child with that name. Lookups never descend more than one level.
	Get(name string) (View, bool)

	// Render returns the canonical string form of the node
	Render() string

	Attr() fuse.Attr
}

// Entity is the capability set shared by [File], [Folder] and [Symlink].
// It is sealed: only types in this package implement it.
type Entity interface {
	View

	// GetMut is the mutable variant of Get with the same one-level semantics
	GetMut(name string) (Entity, bool)

	// Delete tears down every owned descendant, deepest first, then the node
	// itself, emitting one Notice per destroyed node. A node owned by a folder
	// is also detached from it.
	Delete()

	// DeleteID fully deletes the first direct child with the given id and
	// returns that id. Files and links fail with [vfstree.ErrUnsupported];
	// folders without a matching direct child fail with [vfstree.ErrNotFound].
	DeleteID(id uint64) (uint64, error)

	SetNotifier(n Notifier)
	Parent() *Folder

	node() *identity
	teardown(n Notifier)
}
