package filesystem

import (
	"fmt"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/internal/util"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/puzpuzpuz/xsync/v4"
)

// FileSystem assembles a tree under a single root folder and keeps an id
// registry of every node attached through it.
//
// The registry is the longer-lived owner links are created against: AddLink
// only accepts targets that are currently registered. Deletion notices drive
// registry removal, so cascades issued directly on entities keep it in sync.
// Nodes should not override notifiers below the root or their deletions will
// not reach the registry.
//
// Duplicate ids are tolerated unless StrictIDs is set: the first node attached
// with an id is the registered one and later ones are shadowed. When the
// registered node is deleted, the first surviving shadowed node in tree order
// takes over the id.
type FileSystem struct {
	cfg      *config.Config
	root     *Folder
	registry *xsync.Map[uint64, Entity] // first registration wins for duplicate ids
	shadowed map[uint64]int             // attached nodes not registered because their id was taken
	out      Notifier                   // human-readable notice sink
	session  uuid.UUID
	logger   util.Logger
}

func NewFS(cfg *config.Config) *FileSystem {
	fs := &FileSystem{
		cfg:      cfg,
		root:     NewFolder(cfg.RootName, cfg.RootID),
		registry: xsync.NewMap[uint64, Entity](),
		shadowed: make(map[uint64]int),
		out:      DefaultNotifier,
		session:  uuid.New(),
	}
	fs.logger = util.GetLogger("FS").With().Str("session", fs.session.String()).Logger()
	fs.root.SetNotifier(NotifierFunc(fs.onDeleted))
	fs.registry.Store(fs.root.id, fs.root)
	return fs
}

// Root returns the root folder
func (fs *FileSystem) Root() *Folder {
	return fs.root
}

// Session returns the unique id of this tree instance
func (fs *FileSystem) Session() uuid.UUID {
	return fs.session
}

// SetOutput replaces where human-readable deletion notices are written
func (fs *FileSystem) SetOutput(n Notifier) {
	fs.out = n
}

// Lookup returns a registered node by id, wherever it lives in the tree
func (fs *FileSystem) Lookup(id uint64) (Entity, bool) {
	return fs.registry.Load(id)
}

// Len returns the number of registered nodes, including the root
func (fs *FileSystem) Len() int {
	return fs.registry.Size()
}

// Render returns the canonical rendering of the whole tree
func (fs *FileSystem) Render() string {
	return fs.root.Render()
}

// AddFile creates a file with the given name and id under the folder parentID
func (fs *FileSystem) AddFile(parentID uint64, name string, id uint64) (*File, error) {
	file := NewFile(name, id)
	if err := fs.attach(parentID, file); err != nil {
		return nil, err
	}
	return file, nil
}

// AddFolder creates an empty folder with the given name and id under the folder parentID
func (fs *FileSystem) AddFolder(parentID uint64, name string, id uint64) (*Folder, error) {
	folder := NewFolder(name, id)
	if err := fs.attach(parentID, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// AddLink creates a link under parentID pointing at the registered node targetID
func (fs *FileSystem) AddLink(parentID uint64, name string, id uint64, targetID uint64) (*Symlink, error) {
	parent, err := fs.folder(parentID)
	if err != nil {
		return nil, err
	}
	target, _ := fs.registry.Load(targetID)
	return fs.addLink(parent, name, id, target, fmt.Sprintf("id %d", targetID))
}

// addLink attaches a link to target under parent. ref names the target in errors.
func (fs *FileSystem) addLink(parent *Folder, name string, id uint64, target Entity, ref string) (*Symlink, error) {
	if target == nil || target.IsDel() {
		err := fmt.Errorf("%w: %s", vfstree.ErrUnknownTarget, ref)
		fs.logger.Error().Err(err).Str("op", "AddLink").Str("name", name).Msg("Failed to create link")
		return nil, err
	}
	link := NewSymlink(name, id, target)
	if err := fs.attachTo(parent, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Attach adds e under parent and registers it. parent must be a live folder
// of this tree; it is addressed directly rather than by id, so duplicate ids
// cannot redirect the attach.
func (fs *FileSystem) Attach(parent *Folder, e Entity) error {
	if parent == nil || !fs.owns(parent) {
		err := fmt.Errorf("%w: folder is not part of this tree", vfstree.ErrNotFound)
		fs.logger.Error().Err(err).Str("op", "Attach").Str("name", e.Name()).Msg("Failed to find parent")
		return err
	}
	return fs.attachTo(parent, e)
}

// Descend resolves one name per level starting at the root, calling GetMut on
// each intermediate folder. It is the explicit form of repeated shallow lookups.
func (fs *FileSystem) Descend(names ...string) (Entity, bool) {
	var cur Entity = fs.root
	for _, name := range names {
		next, ok := cur.GetMut(name)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// DeleteID removes the direct child id of folder parentID with its whole subtree
func (fs *FileSystem) DeleteID(parentID uint64, id uint64) (uint64, error) {
	logger := fs.logger.With().Str("op", "DeleteID").Logger()

	parent, err := fs.folder(parentID)
	if err != nil {
		logger.Debug().Err(err).Uint64("parent", parentID).Msg("No parent folder")
		return 0, err
	}
	removed, err := parent.DeleteID(id)
	if err != nil {
		logger.Debug().Err(err).Uint64("parent", parentID).Uint64("id", id).Msg("Delete failed")
		return 0, err
	}
	logger.Info().Uint64("parent", parentID).Uint64("id", removed).Msg("Deleted node")
	return removed, nil
}

// Validate walks the tree and reports every duplicate id and dangling link.
// Uniqueness is otherwise only enforced on attach when StrictIDs is set.
func (fs *FileSystem) Validate() error {
	var result *multierror.Error
	seen := map[uint64]string{fs.root.id: fs.root.name}

	fs.root.Walk(func(e Entity) {
		if prev, dup := seen[e.ID()]; dup {
			result = multierror.Append(result,
				fmt.Errorf("%w: %d used by %q and %q", vfstree.ErrDuplicateID, e.ID(), prev, e.Name()))
		} else {
			seen[e.ID()] = e.Name()
		}
		if link, ok := e.(*Symlink); ok && link.Dangling() {
			result = multierror.Append(result,
				fmt.Errorf("%w: %q -> %q", vfstree.ErrDanglingLink, link.Name(), link.targetName()))
		}
	})

	return result.ErrorOrNil()
}

func (fs *FileSystem) folder(id uint64) (*Folder, error) {
	e, ok := fs.registry.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: folder id %d", vfstree.ErrNotFound, id)
	}
	folder, ok := e.(*Folder)
	if !ok {
		return nil, fmt.Errorf("%w: id %d is a %s", vfstree.ErrNotFolder, id, e.Kind())
	}
	return folder, nil
}

// owns reports whether f is the root or a live folder below it
func (fs *FileSystem) owns(f *Folder) bool {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.isDel {
			return false
		}
		if cur == fs.root {
			return true
		}
	}
	return false
}

func (fs *FileSystem) attach(parentID uint64, e Entity) error {
	parent, err := fs.folder(parentID)
	if err != nil {
		fs.logger.Error().Err(err).Str("op", "attach").Str("name", e.Name()).Msg("Failed to find parent")
		return err
	}
	return fs.attachTo(parent, e)
}

func (fs *FileSystem) attachTo(parent *Folder, e Entity) error {
	logger := fs.logger.With().Str("op", "attach").Logger()

	if _, exists := fs.registry.Load(e.ID()); exists && fs.cfg.StrictIDs {
		err := fmt.Errorf("%w: %d", vfstree.ErrDuplicateID, e.ID())
		logger.Error().Err(err).Str("name", e.Name()).Msg("Rejected duplicate id")
		return err
	}
	if err := parent.Add(e); err != nil {
		logger.Error().Err(err).Str("name", e.Name()).Msg("Failed to attach node")
		return err
	}
	if _, loaded := fs.registry.LoadOrStore(e.ID(), e); loaded {
		fs.shadowed[e.ID()]++
		logger.Warn().Uint64("id", e.ID()).Str("name", e.Name()).Msg("Duplicate id not registered")
	}
	logger.Debug().
		Str("kind", e.Kind().String()).
		Str("name", e.Name()).
		Uint64("id", e.ID()).
		Uint64("parent", parent.ID()).
		Msg("Added node")
	return nil
}

// onDeleted unregisters the node and forwards the notice to the output
func (fs *FileSystem) onDeleted(n Notice) {
	if e, ok := fs.registry.Load(n.ID); ok && e.node() == n.node {
		fs.registry.Delete(n.ID)
		fs.promote(n.ID)
	} else if fs.shadowed[n.ID] > 0 {
		fs.shadowed[n.ID]--
	}
	fs.logger.Debug().Str("kind", n.Kind.String()).Str("name", n.Name).Uint64("id", n.ID).Msg("Node deleted")
	if !fs.cfg.Quiet {
		fs.out.Deleted(n)
	}
}

// promote registers the first live shadowed node carrying id, if any remain
func (fs *FileSystem) promote(id uint64) {
	if fs.shadowed[id] == 0 {
		return
	}
	var survivor Entity
	fs.root.Walk(func(e Entity) {
		if survivor == nil && e.ID() == id && !e.IsDel() {
			survivor = e
		}
	})
	if survivor == nil {
		return
	}
	fs.shadowed[id]--
	fs.registry.Store(id, survivor)
	fs.logger.Debug().Uint64("id", id).Str("name", survivor.Name()).Msg("Shadowed node registered")
}
