package filesystem

import (
	"fmt"
	"strconv"

	"github.com/brettbedarf/vfstree"
)

// File is a leaf node
type File struct {
	identity
}

// NewFile creates a detached file. Attach it with [Folder.Add].
func NewFile(name string, id uint64) *File {
	return &File{identity: newIdentity(name, id, vfstree.FileKind)}
}

func (f *File) Get(name string) (View, bool) {
	if f.name == name {
		return f, true
	}
	return nil, false
}

func (f *File) GetMut(name string) (Entity, bool) {
	if f.name == name {
		return f, true
	}
	return nil, false
}

func (f *File) Delete() {
	f.teardown(f.resolveNotifier())
	f.detach(f)
}

func (f *File) teardown(n Notifier) {
	f.markDeleted(f.notifierOr(n), "")
}

func (f *File) DeleteID(id uint64) (uint64, error) {
	return 0, fmt.Errorf("%w: file %q has no children", vfstree.ErrUnsupported, f.name)
}

// Render returns the quoted file name
func (f *File) Render() string {
	return strconv.Quote(f.name)
}

func (f *File) String() string {
	return f.Render()
}

var _ Entity = (*File)(nil)
