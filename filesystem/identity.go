package filesystem

import (
	"os"
	"time"

	"github.com/brettbedarf/vfstree"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// identity is the record shared by every node kind
type identity struct {
	name     string // comparison key for lookups; not unique among siblings
	id       uint64 // intended unique across the tree, never enforced here
	kind     vfstree.Kind
	parent   *Folder  // owning folder; nil for roots and detached nodes
	notifier Notifier // optional override for deletion notices
	isDel    bool
	attr     fuse.Attr
}

func newIdentity(name string, id uint64, kind vfstree.Kind) identity {
	return identity{
		name: name,
		id:   id,
		kind: kind,
		attr: newDefaultAttr(id, kind),
	}
}

// Name returns the node's immutable name.
func (n *identity) Name() string {
	return n.name
}

// ID returns the node's identifier
func (n *identity) ID() uint64 {
	return n.id
}

func (n *identity) Kind() vfstree.Kind {
	return n.kind
}

func (n *identity) IsDel() bool {
	return n.isDel
}

// Attr returns a copy of the node's attributes
func (n *identity) Attr() fuse.Attr {
	return n.attr
}

// Parent returns the owning folder or nil if the node is a root or detached
func (n *identity) Parent() *Folder {
	return n.parent
}

// SetNotifier overrides where deletion notices for this node and its
// descendants are sent. Passing nil restores inheritance from the parent.
func (n *identity) SetNotifier(notifier Notifier) {
	n.notifier = notifier
}

func (n *identity) node() *identity {
	return n
}

// resolveNotifier walks up the ownership chain to the nearest configured Notifier
func (n *identity) resolveNotifier() Notifier {
	for cur := n; cur != nil; {
		if cur.notifier != nil {
			return cur.notifier
		}
		if cur.parent == nil {
			break
		}
		cur = &cur.parent.identity
	}
	return DefaultNotifier
}

// notifierOr prefers the node's own notifier over the one handed down by its owner
func (n *identity) notifierOr(inherited Notifier) Notifier {
	if n.notifier != nil {
		return n.notifier
	}
	return inherited
}

// detach unlinks the node from its owning folder, if any
func (n *identity) detach(self Entity) {
	if n.parent != nil {
		n.parent.removeChild(self)
	}
}

// markDeleted flags the node and emits its notice; repeated deletes are silent
func (n *identity) markDeleted(notifier Notifier, target string) {
	if n.isDel {
		return
	}
	n.isDel = true
	notifier.Deleted(Notice{
		Kind:   n.kind,
		Name:   n.name,
		ID:     n.id,
		Target: target,
		node:   n,
	})
}

// newDefaultAttr returns the default attributes for a new node
func newDefaultAttr(ino uint64, kind vfstree.Kind) fuse.Attr {
	now := time.Now()
	return fuse.Attr{
		Ino:   ino,
		Mode:  kind.Mode() | kind.Perms(),
		Nlink: 1,
		Owner: fuse.Owner{
			Uid: uint32(os.Getuid()),
			Gid: uint32(os.Getgid()),
		},
		Atime:     uint64(now.Unix()),
		Mtime:     uint64(now.Unix()),
		Ctime:     uint64(now.Unix()),
		Atimensec: uint32(now.Nanosecond()),
		Mtimensec: uint32(now.Nanosecond()),
		Ctimensec: uint32(now.Nanosecond()),
		Blksize:   4096,
	}
}
