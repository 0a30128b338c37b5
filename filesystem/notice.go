package filesystem

import (
	"fmt"
	"io"
	"os"

	"github.com/brettbedarf/vfstree"
)

// Notice describes one destroyed node. Cascading deletes emit notices in
// post-order: descendants before the folder that owned them.
type Notice struct {
	Kind   vfstree.Kind
	Name   string
	ID     uint64
	Target string // link target name; empty for files and folders

	node *identity
}

// String returns the human-readable notice line, e.g. "deleted file file1"
func (n Notice) String() string {
	if n.Kind == vfstree.LinkKind {
		return fmt.Sprintf("deleted link %s -> %s", n.Name, n.Target)
	}
	return fmt.Sprintf("deleted %s %s", n.Kind, n.Name)
}

// Notifier receives one Notice per destroyed node
type Notifier interface {
	Deleted(n Notice)
}

// NotifierFunc adapts a plain function to a Notifier
type NotifierFunc func(n Notice)

func (f NotifierFunc) Deleted(n Notice) { f(n) }

// WriterNotifier writes one notice line per destroyed node to w
type WriterNotifier struct {
	w io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (wn *WriterNotifier) Deleted(n Notice) {
	fmt.Fprintln(wn.w, n.String()) // nolint:errcheck
}

// MultiNotifier fans every notice out to each Notifier in order
type MultiNotifier []Notifier

func (m MultiNotifier) Deleted(n Notice) {
	for _, notifier := range m {
		notifier.Deleted(n)
	}
}

var (
	// DefaultNotifier is used when neither a node nor any ancestor has a Notifier
	DefaultNotifier Notifier = NewWriterNotifier(os.Stdout)

	// Discard drops every notice
	Discard Notifier = NotifierFunc(func(Notice) {})
)
