package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/vfstree"
	"github.com/brettbedarf/vfstree/internal/util"
)

// LoadTreeFile reads a tree definition; the format is picked by extension
func LoadTreeFile(path string) (*vfstree.TreeRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalTree(data, filepath.Ext(path))
}

// UnmarshalTree parses a tree definition list. ext is a file extension:
// .yaml, .yml or .json
func UnmarshalTree(data []byte, ext string) (*vfstree.TreeRequest, error) {
	var dtos []NodeRequestDTO

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tree definition: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tree definition: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown tree definition extension: %q", ext)
	}

	c := converter{uuids: make(map[string]string)}
	nodes, err := c.convertAll(dtos)
	if err != nil {
		return nil, err
	}
	return &vfstree.TreeRequest{Nodes: nodes}, nil
}

// converter turns DTOs into core requests, tracking uuids seen so far
type converter struct {
	uuids map[string]string // uuid -> node name
}

func (c *converter) convertAll(dtos []NodeRequestDTO) ([]vfstree.NodeRequestor, error) {
	reqs := make([]vfstree.NodeRequestor, 0, len(dtos))
	for _, dto := range dtos {
		req, err := c.convert(dto)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (c *converter) convert(dto NodeRequestDTO) (vfstree.NodeRequestor, error) {
	if dto.Name == "" {
		return nil, fmt.Errorf("%s node with id %d has no name", dto.Type, dto.ID)
	}
	node, err := c.convertNodeDTO(dto)
	if err != nil {
		return nil, err
	}
	if dto.Type != vfstree.FolderNodeType && len(dto.Children) > 0 {
		return nil, fmt.Errorf("%s %q cannot have children", dto.Type, dto.Name)
	}

	switch dto.Type {
	case vfstree.FileNodeType:
		return &vfstree.FileCreateRequest{NodeRequest: node}, nil

	case vfstree.FolderNodeType:
		children, err := c.convertAll(dto.Children)
		if err != nil {
			return nil, err
		}
		return &vfstree.FolderCreateRequest{NodeRequest: node, Children: children}, nil

	case vfstree.LinkNodeType:
		if dto.Target == nil && dto.TargetID == nil {
			return nil, fmt.Errorf("link %q needs a target or target_id", dto.Name)
		}
		req := &vfstree.LinkCreateRequest{
			NodeRequest: node,
			TargetID:    util.ValueOrDefault(dto.TargetID, 0),
		}
		if dto.Target != nil {
			target, err := uuid.Parse(*dto.Target)
			if err != nil {
				return nil, fmt.Errorf("link %q: invalid target uuid: %w", dto.Name, err)
			}
			req.TargetUUID = target.String()
		}
		return req, nil

	default:
		return nil, fmt.Errorf("unknown node type %q for %q", dto.Type, dto.Name)
	}
}

// convertNodeDTO applies defaults to the common fields; a missing uuid gets a fresh one
func (c *converter) convertNodeDTO(dto NodeRequestDTO) (vfstree.NodeRequest, error) {
	id := uuid.New()
	if dto.UUID != nil {
		parsed, err := uuid.Parse(*dto.UUID)
		if err != nil {
			return vfstree.NodeRequest{}, fmt.Errorf("%q: invalid uuid: %w", dto.Name, err)
		}
		id = parsed
	}
	if prev, dup := c.uuids[id.String()]; dup {
		return vfstree.NodeRequest{}, fmt.Errorf("%q: uuid %s already used by %q", dto.Name, id, prev)
	}
	c.uuids[id.String()] = dto.Name

	return vfstree.NodeRequest{
		Name: dto.Name,
		ID:   dto.ID,
		Type: dto.Type,
		UUID: id.String(),
	}, nil
}
