// Package readiness derives whether a graph may legally run: every required
// input pin of every resolvable node must have an incoming edge.
package readiness

import (
	"github.com/chaincanvas/chaincanvas/internal/canvas"
	"github.com/chaincanvas/chaincanvas/internal/catalog"
)

// Lookup resolves a type id to its definition, normally a registry method.
type Lookup func(typeID string) (catalog.Definition, bool)

// Violation is one unmet required input: the pin on this node has no
// incoming edge.
type Violation struct {
	NodeID string
	PinID  string
}

// Check collects every unmet required input in the graph. Nodes whose type
// cannot be resolved are skipped rather than failed, tolerating transient
// registry gaps mid-refresh. An empty graph yields no violations; use
// CanExecute for the run gate, which treats an empty graph as not ready.
func Check(nodes []*canvas.Node, edges []*canvas.Edge, lookup Lookup) []Violation {
	var violations []Violation
	for _, node := range nodes {
		def, ok := resolve(node, lookup)
		if !ok {
			continue
		}
		for _, pin := range def.Inputs {
			if !pin.Required {
				continue
			}
			if !hasIncoming(edges, node.ID, pin.ID) {
				violations = append(violations, Violation{NodeID: node.ID, PinID: pin.ID})
			}
		}
	}
	return violations
}

// CanExecute is the boolean run gate: false for an empty graph, false on the
// first unmet required input, true otherwise.
func CanExecute(nodes []*canvas.Node, edges []*canvas.Edge, lookup Lookup) bool {
	if len(nodes) == 0 {
		return false
	}
	for _, node := range nodes {
		def, ok := resolve(node, lookup)
		if !ok {
			continue
		}
		for _, pin := range def.Inputs {
			if pin.Required && !hasIncoming(edges, node.ID, pin.ID) {
				return false
			}
		}
	}
	return true
}

func hasIncoming(edges []*canvas.Edge, nodeID, pinID string) bool {
	for _, e := range edges {
		if e.Target == nodeID && e.TargetHandle == pinID {
			return true
		}
	}
	return false
}

func resolve(n *canvas.Node, lookup Lookup) (catalog.Definition, bool) {
	if def, ok := n.Definition(); ok {
		return def, true
	}
	if lookup == nil {
		return catalog.Definition{}, false
	}
	return lookup(n.Type)
}
