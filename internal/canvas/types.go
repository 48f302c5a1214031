// Package canvas owns the canonical in-memory graph: node instances, edges,
// waypoints and the viewport. All mutation goes through the Store.
package canvas

import "github.com/chaincanvas/chaincanvas/internal/catalog"

// Position is a point in world (canvas) coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the mutable payload of a node instance: its display label and
// the configuration values keyed by config-field id.
type NodeData struct {
	Label        string         `json:"label,omitempty"`
	ConfigValues map[string]any `json:"configValues"`
}

// Node is a placed, configured occurrence of a node type on the canvas.
type Node struct {
	ID       string   `json:"id" validate:"required"`
	Type     string   `json:"type" validate:"required"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
	Selected bool     `json:"selected,omitempty"`

	// def caches the resolved definition. It may be nil for nodes whose
	// type vanished from the registry; such nodes stay inert until the
	// type reappears.
	def *catalog.Definition
}

// Definition returns the cached type definition, if attached.
func (n *Node) Definition() (catalog.Definition, bool) {
	if n.def == nil {
		return catalog.Definition{}, false
	}
	return *n.def, true
}

// Clip is a user-placed waypoint that bends an edge's rendered path without
// altering its logical endpoints.
type Clip struct {
	ID string  `json:"id" validate:"required"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// EdgeData holds the edge's waypoints. Their stored order is insertion
// order; the router re-sorts by distance from the source on every
// recomputation.
type EdgeData struct {
	Clips []Clip `json:"clips,omitempty" validate:"dive"`
}

// Edge is a validated connection from one output pin to one input pin.
type Edge struct {
	ID           string   `json:"id" validate:"required"`
	Source       string   `json:"source" validate:"required"`
	Target       string   `json:"target" validate:"required"`
	SourceHandle string   `json:"sourceHandle" validate:"required"`
	TargetHandle string   `json:"targetHandle" validate:"required"`
	Data         EdgeData `json:"data"`
}

// Viewport is the visible window onto the canvas: pan offset plus zoom.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom" validate:"gt=0"`
}

// CanvasData is the geometry half of a snapshot.
type CanvasData struct {
	Nodes    []*Node  `json:"nodes" validate:"required,dive,required"`
	Edges    []*Edge  `json:"edges" validate:"required,dive,required"`
	Viewport Viewport `json:"viewport"`
}

// Snapshot is the full exportable state of one graph: the unit of
// persistence.
type Snapshot struct {
	Name       string     `json:"name" validate:"required"`
	CanvasData CanvasData `json:"canvas_data" validate:"required"`
}

// Change is one positional or selection delta applied through
// ApplyChangeBatch. Nil fields leave the corresponding attribute untouched.
type Change struct {
	NodeID   string
	Position *Position
	Selected *bool
}
