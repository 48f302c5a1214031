package canvas

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var snapshotValidate = validator.New()

// ValidateSnapshot checks a snapshot's required fields before it is allowed
// to replace the in-memory graph.
func ValidateSnapshot(snap Snapshot) error {
	if err := snapshotValidate.Struct(snap); err != nil {
		return errors.Wrap(ErrInvalidSnapshot, err.Error())
	}
	return nil
}

// ExportSnapshot returns a deep copy of the full graph state. Mutating the
// result never affects the store.
func (s *Store) ExportSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := make([]*Node, len(s.nodes))
	for i, n := range s.nodes {
		nodes[i] = cloneNode(n)
	}
	edges := make([]*Edge, len(s.edges))
	for i, e := range s.edges {
		edges[i] = cloneEdge(e)
	}

	return Snapshot{
		Name: s.name,
		CanvasData: CanvasData{
			Nodes:    nodes,
			Edges:    edges,
			Viewport: s.viewport,
		},
	}
}

// ReplaceSnapshot loads a snapshot as the new graph state. The snapshot is
// validated first; on failure the existing graph is left untouched. Nodes
// whose type is missing from the registry are kept but stay inert.
func (s *Store) ReplaceSnapshot(snap Snapshot) error {
	if err := ValidateSnapshot(snap); err != nil {
		s.log.Warn("rejected malformed snapshot", "name", snap.Name, "error", err)
		return err
	}

	nodes := make([]*Node, len(snap.CanvasData.Nodes))
	for i, n := range snap.CanvasData.Nodes {
		node := cloneNode(n)
		if def, ok := s.registry.Lookup(node.Type); ok {
			node.def = &def
		} else {
			node.def = nil
			s.log.Warn("snapshot references unknown node type", "node", node.ID, "type", node.Type)
		}
		nodes[i] = node
	}
	edges := make([]*Edge, len(snap.CanvasData.Edges))
	for i, e := range snap.CanvasData.Edges {
		edges[i] = cloneEdge(e)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = snap.Name
	s.nodes = nodes
	s.edges = edges
	s.viewport = snap.CanvasData.Viewport
	return nil
}

func cloneNode(n *Node) *Node {
	clone := *n
	clone.def = n.def
	if n.Data.ConfigValues != nil {
		values := make(map[string]any, len(n.Data.ConfigValues))
		for k, v := range n.Data.ConfigValues {
			values[k] = v
		}
		clone.Data.ConfigValues = values
	}
	return &clone
}

func cloneEdge(e *Edge) *Edge {
	clone := *e
	if e.Data.Clips != nil {
		clone.Data.Clips = append([]Clip(nil), e.Data.Clips...)
	}
	return &clone
}
