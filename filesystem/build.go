package filesystem

import (
	"fmt"

	"github.com/brettbedarf/vfstree"
	"github.com/hashicorp/go-multierror"
)

type pendingLink struct {
	parent *Folder
	req    *vfstree.LinkCreateRequest
}

// Build attaches a tree definition under the root folder.
//
// Files and folders are created first and links second, so every link target
// exists before a link to it is created. A failed folder skips its subtree;
// the other nodes are still built and every failure is returned together.
// Children are attached to the folder created for their definition and uuid
// targets resolve to the node created for that uuid, so duplicate ids never
// redirect either.
func (fs *FileSystem) Build(tree *vfstree.TreeRequest) error {
	logger := fs.logger.With().Str("op", "Build").Logger()

	requested := 0
	tree.Walk(func(vfstree.NodeRequestor) { requested++ })
	logger.Debug().Int("requests", requested).Msg("Building tree")

	var result *multierror.Error
	byUUID := make(map[string]Entity)
	var links []pendingLink

	var build func(parent *Folder, reqs []vfstree.NodeRequestor)
	build = func(parent *Folder, reqs []vfstree.NodeRequestor) {
		for _, req := range reqs {
			nr := req.GetNodeRequest()
			var created Entity
			switch r := req.(type) {
			case *vfstree.FileCreateRequest:
				file := NewFile(nr.Name, nr.ID)
				if err := fs.attachTo(parent, file); err != nil {
					result = multierror.Append(result, fmt.Errorf("file %q: %w", nr.Name, err))
					continue
				}
				created = file
			case *vfstree.FolderCreateRequest:
				folder := NewFolder(nr.Name, nr.ID)
				if err := fs.attachTo(parent, folder); err != nil {
					result = multierror.Append(result, fmt.Errorf("folder %q: %w", nr.Name, err))
					continue
				}
				build(folder, r.Children)
				created = folder
			case *vfstree.LinkCreateRequest:
				links = append(links, pendingLink{parent: parent, req: r})
				continue
			default:
				result = multierror.Append(result, fmt.Errorf("unknown request type %T for %q", req, nr.Name))
				continue
			}
			if nr.UUID != "" {
				byUUID[nr.UUID] = created
			}
		}
	}
	build(fs.root, tree.Nodes)

	for _, pl := range links {
		nr := pl.req.NodeRequest
		var target Entity
		ref := fmt.Sprintf("id %d", pl.req.TargetID)
		if pl.req.TargetUUID != "" {
			target = byUUID[pl.req.TargetUUID]
			ref = "uuid " + pl.req.TargetUUID
		} else {
			target, _ = fs.registry.Load(pl.req.TargetID)
		}
		if _, err := fs.addLink(pl.parent, nr.Name, nr.ID, target, ref); err != nil {
			result = multierror.Append(result, fmt.Errorf("link %q: %w", nr.Name, err))
		}
	}

	logger.Info().Int("nodes", fs.Len()).Int("links", len(links)).Msg("Built tree")
	return result.ErrorOrNil()
}
