package requests

import "github.com/brettbedarf/vfstree"

// NodeRequestDTO is the YAML/JSON representation of one tree definition entry.
//
// Ex.
//
//	- type: folder
//	  name: folder2/
//	  id: 3
//	  children:
//	    - {type: file, name: file2, id: 4, uuid: 5b0b7c1e-2f0a-4d6a-9a43-3c9f1d8f2a11}
//	- {type: link, name: latest, id: 7, target: 5b0b7c1e-2f0a-4d6a-9a43-3c9f1d8f2a11}
type NodeRequestDTO struct {
	Type     vfstree.NodeCreateRequestType `json:"type" yaml:"type"`
	Name     string                        `json:"name" yaml:"name"`
	ID       uint64                        `json:"id" yaml:"id"`
	UUID     *string                       `json:"uuid,omitempty" yaml:"uuid,omitempty"`           // Optional UUID to enable linking at request time
	Target   *string                       `json:"target,omitempty" yaml:"target,omitempty"`       // link only: target UUID
	TargetID *uint64                       `json:"target_id,omitempty" yaml:"target_id,omitempty"` // link only: target node id
	Children []NodeRequestDTO              `json:"children,omitempty" yaml:"children,omitempty"`   // folder only
}
