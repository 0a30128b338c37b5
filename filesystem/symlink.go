package filesystem

import (
	"fmt"
	"strconv"

	"github.com/brettbedarf/vfstree"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Symlink is an alias to another node. It never owns its target: deleting a
// link leaves the target untouched, and the target is only reachable as a
// read-only [View].
//
// The target must outlive the link. Memory is kept alive by the GC, but once
// the target is deleted the link is [Symlink.Dangling]. [FileSystem] only
// creates links to targets currently registered in its tree.
type Symlink struct {
	identity
	target View
}

// NewSymlink creates a detached link to target
func NewSymlink(name string, id uint64, target View) *Symlink {
	return &Symlink{
		identity: newIdentity(name, id, vfstree.LinkKind),
		target:   target,
	}
}

// Target returns the linked node
func (s *Symlink) Target() View {
	return s.target
}

// Dangling reports whether the target is missing or has been deleted
func (s *Symlink) Dangling() bool {
	return s.target == nil || s.target.IsDel()
}

func (s *Symlink) targetName() string {
	if s.target == nil {
		return ""
	}
	return s.target.Name()
}

// Get matches the link's own name only; it never dereferences the target.
func (s *Symlink) Get(name string) (View, bool) {
	if s.name == name {
		return s, true
	}
	return nil, false
}

func (s *Symlink) GetMut(name string) (Entity, bool) {
	if s.name == name {
		return s, true
	}
	return nil, false
}

func (s *Symlink) Delete() {
	s.teardown(s.resolveNotifier())
	s.detach(s)
}

func (s *Symlink) teardown(n Notifier) {
	s.markDeleted(s.notifierOr(n), s.targetName())
}

func (s *Symlink) DeleteID(id uint64) (uint64, error) {
	return 0, fmt.Errorf("%w: link %q has no children", vfstree.ErrUnsupported, s.name)
}

// Render returns `"name" -> "target"` without expanding the target
func (s *Symlink) Render() string {
	return strconv.Quote(s.name) + " -> " + strconv.Quote(s.targetName())
}

func (s *Symlink) String() string {
	return s.Render()
}

// Attr reports the target name length as size, like a readlink payload
func (s *Symlink) Attr() fuse.Attr {
	attr := s.attr
	attr.Size = uint64(len(s.targetName()))
	return attr
}

var _ Entity = (*Symlink)(nil)
