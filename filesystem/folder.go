package filesystem

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/brettbedarf/vfstree"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Folder owns an ordered sequence of child entities. Children keep insertion
// order, which is visible in Render and in deletion order.
type Folder struct {
	identity
	children []Entity
}

// NewFolder creates a detached, empty folder
func NewFolder(name string, id uint64) *Folder {
	return &Folder{identity: newIdentity(name, id, vfstree.FolderKind)}
}

// Add transfers ownership of child to the folder.
//
// A node can only be attached once: moving a node between folders is not
// supported and returns [vfstree.ErrAttached].
func (f *Folder) Add(child Entity) error {
	if child == nil {
		return fmt.Errorf("cannot add nil entity to folder %q", f.name)
	}
	cn := child.node()
	if f.isDel || cn.isDel {
		return fmt.Errorf("%w: cannot add %q to %q", vfstree.ErrDeleted, cn.name, f.name)
	}
	if cn.parent != nil {
		return fmt.Errorf("%w: %q is owned by %q", vfstree.ErrAttached, cn.name, cn.parent.name)
	}
	for cur := f; cur != nil; cur = cur.parent {
		if &cur.identity == cn {
			return fmt.Errorf("%w: %q is %q or one of its ancestors", vfstree.ErrCycle, cn.name, f.name)
		}
	}

	cn.parent = f
	f.children = append(f.children, child)
	return nil
}

// AddLink creates a link to target and attaches it to the folder. The folder
// owns the link, never the target.
func (f *Folder) AddLink(name string, id uint64, target View) (*Symlink, error) {
	link := NewSymlink(name, id, target)
	if err := f.Add(link); err != nil {
		return nil, err
	}
	return link, nil
}

// Children returns a copy of the direct children in insertion order
func (f *Folder) Children() []Entity {
	return slices.Clone(f.children)
}

// Len returns the number of direct children
func (f *Folder) Len() int {
	return len(f.children)
}

func (f *Folder) Get(name string) (View, bool) {
	if f.name == name {
		return f, true
	}
	for _, child := range f.children {
		if child.Name() == name {
			return child, true
		}
	}
	return nil, false
}

func (f *Folder) GetMut(name string) (Entity, bool) {
	if f.name == name {
		return f, true
	}
	for _, child := range f.children {
		if child.Name() == name {
			return child, true
		}
	}
	return nil, false
}

// Delete removes and deletes every child, last to first, each cascading
// through its own subtree, then reports the folder itself.
func (f *Folder) Delete() {
	f.teardown(f.resolveNotifier())
	f.detach(f)
}

func (f *Folder) teardown(n Notifier) {
	n = f.notifierOr(n)
	for len(f.children) > 0 {
		last := len(f.children) - 1
		child := f.children[last]
		f.children[last] = nil
		f.children = f.children[:last]

		child.node().parent = nil
		child.teardown(n)
	}
	f.markDeleted(n, "")
}

func (f *Folder) DeleteID(id uint64) (uint64, error) {
	for pos, child := range f.children {
		if child.ID() != id {
			continue
		}
		child.teardown(f.resolveNotifier())
		f.children = slices.Delete(f.children, pos, pos+1)
		child.node().parent = nil
		return id, nil
	}
	return 0, fmt.Errorf("%w: no direct child of %q with id %d", vfstree.ErrNotFound, f.name, id)
}

func (f *Folder) removeChild(child Entity) {
	if i := slices.Index(f.children, child); i >= 0 {
		f.children = slices.Delete(f.children, i, i+1)
	}
	child.node().parent = nil
}

// Walk calls fn for every owned descendant in pre-order. Links are visited
// but never followed.
func (f *Folder) Walk(fn func(e Entity)) {
	for _, child := range f.children {
		fn(child)
		if sub, ok := child.(*Folder); ok {
			sub.Walk(fn)
		}
	}
}

// Render returns `{ "name": child, child }` with each child rendered recursively
func (f *Folder) Render() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	sb.WriteString(strconv.Quote(f.name))
	sb.WriteString(":")
	for i, child := range f.children {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		sb.WriteString(child.Render())
	}
	sb.WriteString(" }")
	return sb.String()
}

func (f *Folder) String() string {
	return f.Render()
}

// Attr reports Nlink as 2 plus one per child folder, as directories do
func (f *Folder) Attr() fuse.Attr {
	attr := f.attr
	attr.Nlink = 2
	for _, child := range f.children {
		if child.Kind() == vfstree.FolderKind {
			attr.Nlink++
		}
	}
	return attr
}

var _ Entity = (*Folder)(nil)
