package canvas

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/chaincanvas/chaincanvas/internal/catalog"
)

const defaultGraphName = "untitled"

// ConnectionPolicy decides whether a candidate edge may be admitted. It is a
// pure function over the current nodes and edges; a non-nil error is a
// rejection reason, never a fatal condition.
type ConnectionPolicy func(nodes []*Node, edges []*Edge, source, sourceHandle, target, targetHandle string) error

// Store is the single mutable owner of one graph. Every operation is
// synchronous and leaves the graph consistent: no mutation can be observed
// with a dangling or unvalidated edge.
type Store struct {
	mu       sync.Mutex
	name     string
	nodes    []*Node
	edges    []*Edge
	viewport Viewport

	registry *catalog.Registry
	policy   ConnectionPolicy
	log      *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithName sets the graph name.
func WithName(name string) StoreOption {
	return func(s *Store) {
		s.name = name
	}
}

// WithPolicy sets the connection admission policy. Without one, every
// candidate edge is admitted.
func WithPolicy(policy ConnectionPolicy) StoreOption {
	return func(s *Store) {
		s.policy = policy
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates an empty store over the given registry.
func NewStore(registry *catalog.Registry, opts ...StoreOption) *Store {
	s := &Store{
		name:     defaultGraphName,
		viewport: Viewport{Zoom: 1},
		registry: registry,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the graph name.
func (s *Store) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetName renames the graph.
func (s *Store) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// Nodes returns the current node instances. The slice is a copy; the nodes
// themselves are shared and must not be mutated by callers.
func (s *Store) Nodes() []*Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Node(nil), s.nodes...)
}

// Edges returns the current edges. The slice is a copy.
func (s *Store) Edges() []*Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Edge(nil), s.edges...)
}

// Viewport returns the current viewport.
func (s *Store) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// SetViewport replaces the viewport. A non-positive zoom is ignored.
func (s *Store) SetViewport(vp Viewport) {
	if vp.Zoom <= 0 {
		s.log.Warn("ignoring viewport with non-positive zoom", "zoom", vp.Zoom)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = vp
}

// Node returns the node with the given id.
func (s *Store) Node(id string) (*Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findNode(id)
}

// Edge returns the edge with the given id.
func (s *Store) Edge(id string) (*Edge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findEdge(id)
}

// AddNode instantiates the given node type at a position. An unknown type id
// is a logged no-op returning ErrUnknownType.
func (s *Store) AddNode(typeID string, pos Position) (*Node, error) {
	def, ok := s.registry.Lookup(typeID)
	if !ok {
		s.log.Warn("placement of unknown node type", "type", typeID)
		return nil, NewMutationError("AddNode", typeID, ErrUnknownType)
	}

	node := &Node{
		ID:       newID(typeID),
		Type:     typeID,
		Position: pos,
		Data: NodeData{
			Label:        def.Label,
			ConfigValues: def.ConfigDefaults(),
		},
		def: &def,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, node)
	return node, nil
}

// RemoveNode removes a node and, in the same operation, every edge whose
// source or target is that node. Callers never observe a dangling edge.
func (s *Store) RemoveNode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, n := range s.nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NewMutationError("RemoveNode", id, ErrNodeNotFound)
	}

	s.nodes = append(s.nodes[:idx], s.nodes[idx+1:]...)

	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.Source == id || e.Target == id {
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept
	return nil
}

// AddEdge admits a candidate connection through the connection policy. On
// rejection no mutation occurs and ok is false; the reason is logged so the
// caller can give non-fatal feedback.
func (s *Store) AddEdge(source, sourceHandle, target, targetHandle string) (*Edge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.policy != nil {
		if err := s.policy(s.nodes, s.edges, source, sourceHandle, target, targetHandle); err != nil {
			s.log.Debug("connection rejected",
				"source", source, "sourceHandle", sourceHandle,
				"target", target, "targetHandle", targetHandle,
				"reason", err)
			return nil, false
		}
	}

	edge := &Edge{
		ID:           newID("edge"),
		Source:       source,
		SourceHandle: sourceHandle,
		Target:       target,
		TargetHandle: targetHandle,
	}
	s.edges = append(s.edges, edge)
	return edge, true
}

// RemoveEdge deletes an edge by id.
func (s *Store) RemoveEdge(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.edges {
		if e.ID == id {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			return nil
		}
	}
	return NewMutationError("RemoveEdge", id, ErrEdgeNotFound)
}

// UpdateNodeConfig sets one configuration value on a node.
func (s *Store) UpdateNodeConfig(id, fieldID string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.findNode(id)
	if !ok {
		return NewMutationError("UpdateNodeConfig", id, ErrNodeNotFound)
	}
	if node.Data.ConfigValues == nil {
		node.Data.ConfigValues = make(map[string]any)
	}
	node.Data.ConfigValues[fieldID] = value
	return nil
}

// UpdateNodeData merges several configuration values into a node in one
// operation. Annotation nodes (note text, color) mutate through this same
// path; there is no side-channel.
func (s *Store) UpdateNodeData(id string, values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.findNode(id)
	if !ok {
		return NewMutationError("UpdateNodeData", id, ErrNodeNotFound)
	}
	if node.Data.ConfigValues == nil {
		node.Data.ConfigValues = make(map[string]any, len(values))
	}
	for k, v := range values {
		node.Data.ConfigValues[k] = v
	}
	return nil
}

// RenameNode sets a node's display label.
func (s *Store) RenameNode(id, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.findNode(id)
	if !ok {
		return NewMutationError("RenameNode", id, ErrNodeNotFound)
	}
	node.Data.Label = label
	return nil
}

// ApplyChangeBatch applies independent position/selection deltas as a single
// replacement. Changed nodes are replaced with fresh copies; untouched nodes
// keep their identity so consumers can cheaply detect "nothing changed here".
func (s *Store) ApplyChangeBatch(changes []Change) {
	if len(changes) == 0 {
		return
	}
	byNode := make(map[string]Change, len(changes))
	for _, c := range changes {
		byNode[c.NodeID] = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*Node, len(s.nodes))
	for i, n := range s.nodes {
		c, ok := byNode[n.ID]
		if !ok {
			next[i] = n
			continue
		}
		updated := *n
		if c.Position != nil {
			updated.Position = *c.Position
		}
		if c.Selected != nil {
			updated.Selected = *c.Selected
		}
		next[i] = &updated
	}
	s.nodes = next
}

// AddClip appends a waypoint to an edge at the given world position.
func (s *Store) AddClip(edgeID string, x, y float64) (Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	edge, ok := s.findEdge(edgeID)
	if !ok {
		return Clip{}, NewMutationError("AddClip", edgeID, ErrEdgeNotFound)
	}
	clip := Clip{ID: newID("clip"), X: x, Y: y}
	edge.Data.Clips = append(edge.Data.Clips, clip)
	return clip, nil
}

// MoveClip repositions a waypoint.
func (s *Store) MoveClip(edgeID, clipID string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edge, ok := s.findEdge(edgeID)
	if !ok {
		return NewMutationError("MoveClip", edgeID, ErrEdgeNotFound)
	}
	for i := range edge.Data.Clips {
		if edge.Data.Clips[i].ID == clipID {
			edge.Data.Clips[i].X = x
			edge.Data.Clips[i].Y = y
			return nil
		}
	}
	return NewMutationError("MoveClip", clipID, ErrClipNotFound)
}

// RemoveClip deletes a waypoint. Deletion is an explicit operation; dragging
// never deletes.
func (s *Store) RemoveClip(edgeID, clipID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edge, ok := s.findEdge(edgeID)
	if !ok {
		return NewMutationError("RemoveClip", edgeID, ErrEdgeNotFound)
	}
	for i := range edge.Data.Clips {
		if edge.Data.Clips[i].ID == clipID {
			edge.Data.Clips = append(edge.Data.Clips[:i], edge.Data.Clips[i+1:]...)
			return nil
		}
	}
	return NewMutationError("RemoveClip", clipID, ErrClipNotFound)
}

func (s *Store) findNode(id string) (*Node, bool) {
	for _, n := range s.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

func (s *Store) findEdge(id string) (*Edge, bool) {
	for _, e := range s.edges {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// newID builds a fresh identifier with a readable prefix, following the
// prefix-plus-uuid convention used for graph ids.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}
