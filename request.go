package vfstree

// NodeRequest has common fields embedded in concrete request types
type NodeRequest struct {
	Name string
	ID   uint64
	Type NodeCreateRequestType
	UUID string // Definition-time handle other requests can link to
}

// NodeCreateRequestType valid types are FileNodeType "file", FolderNodeType "folder",
// LinkNodeType "link"
type NodeCreateRequestType string

const (
	FileNodeType   NodeCreateRequestType = "file"
	FolderNodeType NodeCreateRequestType = "folder"
	LinkNodeType   NodeCreateRequestType = "link"
)

// NodeRequestor is implemented by all node request types
type NodeRequestor interface {
	GetNodeRequest() *NodeRequest
}

type FileCreateRequest struct {
	NodeRequest
}

type FolderCreateRequest struct {
	NodeRequest
	Children []NodeRequestor
}

// LinkCreateRequest targets another request either by its UUID or by node ID.
// TargetUUID takes precedence when both are set.
type LinkCreateRequest struct {
	NodeRequest
	TargetUUID string
	TargetID   uint64
}

// TreeRequest is a full tree definition. Nodes are attached to the root folder
// in order.
type TreeRequest struct {
	Nodes []NodeRequestor
}

func (r *FileCreateRequest) GetNodeRequest() *NodeRequest   { return &r.NodeRequest }
func (r *FolderCreateRequest) GetNodeRequest() *NodeRequest { return &r.NodeRequest }
func (r *LinkCreateRequest) GetNodeRequest() *NodeRequest   { return &r.NodeRequest }

// Walk visits every request depth-first, parents before their children
func (t *TreeRequest) Walk(fn func(req NodeRequestor)) {
	var walk func(reqs []NodeRequestor)
	walk = func(reqs []NodeRequestor) {
		for _, req := range reqs {
			fn(req)
			if folder, ok := req.(*FolderCreateRequest); ok {
				walk(folder.Children)
			}
		}
	}
	walk(t.Nodes)
}
