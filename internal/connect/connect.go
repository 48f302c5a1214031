// Package connect decides whether a candidate edge may join two pins. It is
// a pure function over a snapshot of the graph and never mutates it.
package connect

import (
	"github.com/pkg/errors"

	"github.com/chaincanvas/chaincanvas/internal/canvas"
	"github.com/chaincanvas/chaincanvas/internal/catalog"
)

// Rejection reasons. All are non-fatal: the store reports them as a boolean
// to the caller and only logs the reason.
var (
	ErrNodeNotFound   = errors.New("endpoint node does not exist")
	ErrTypeNotFound   = errors.New("endpoint node type is not registered")
	ErrPinNotFound    = errors.New("pin does not exist on node type")
	ErrSelfConnection = errors.New("source and target must be different nodes")
	ErrInputOccupied  = errors.New("input pin already has a connection")
	ErrTypeMismatch   = errors.New("pin types are not compatible")
)

// Lookup resolves a type id to its definition, normally a registry method.
type Lookup func(typeID string) (catalog.Definition, bool)

// widenings lists the one-way conversions accepted beyond exact-type and
// wildcard matches. Not reflexive, not symmetric: address feeds a string
// input, a string never feeds an address input.
var widenings = map[catalog.PinType][]catalog.PinType{
	catalog.TypeAddress:     {catalog.TypeString, catalog.TypeAddressList},
	catalog.TypeTransaction: {catalog.TypeString, catalog.TypeTransactionList},
	catalog.TypeNumber:      {catalog.TypeString},
}

// Compatible reports whether an output of type source may feed an input of
// type target.
func Compatible(source, target catalog.PinType) bool {
	if source == target {
		return true
	}
	if source == catalog.TypeAny || target == catalog.TypeAny {
		return true
	}
	for _, t := range widenings[source] {
		if t == target {
			return true
		}
	}
	return false
}

// Check validates a candidate edge and returns the rejection reason, or nil
// if the connection may be admitted.
func Check(nodes []*canvas.Node, edges []*canvas.Edge, source, sourceHandle, target, targetHandle string, lookup Lookup) error {
	if source == target {
		return ErrSelfConnection
	}

	src, ok := findNode(nodes, source)
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "source %q", source)
	}
	dst, ok := findNode(nodes, target)
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "target %q", target)
	}

	srcDef, ok := resolve(src, lookup)
	if !ok {
		return errors.Wrapf(ErrTypeNotFound, "source type %q", src.Type)
	}
	dstDef, ok := resolve(dst, lookup)
	if !ok {
		return errors.Wrapf(ErrTypeNotFound, "target type %q", dst.Type)
	}

	out, ok := srcDef.Output(sourceHandle)
	if !ok {
		return errors.Wrapf(ErrPinNotFound, "output %q on type %q", sourceHandle, src.Type)
	}
	in, ok := dstDef.Input(targetHandle)
	if !ok {
		return errors.Wrapf(ErrPinNotFound, "input %q on type %q", targetHandle, dst.Type)
	}

	// At most one edge per input pin. A new connection to an occupied
	// input is rejected, not rewired, so existing work is never orphaned
	// silently.
	for _, e := range edges {
		if e.Target == target && e.TargetHandle == targetHandle {
			return errors.Wrapf(ErrInputOccupied, "input %q on node %q", targetHandle, target)
		}
	}

	if !Compatible(out.Type, in.Type) {
		return errors.Wrapf(ErrTypeMismatch, "%s -> %s", out.Type, in.Type)
	}
	return nil
}

// Valid is the boolean form of Check.
func Valid(nodes []*canvas.Node, edges []*canvas.Edge, source, sourceHandle, target, targetHandle string, lookup Lookup) bool {
	return Check(nodes, edges, source, sourceHandle, target, targetHandle, lookup) == nil
}

// Policy adapts Check into the store's admission hook.
func Policy(lookup Lookup) canvas.ConnectionPolicy {
	return func(nodes []*canvas.Node, edges []*canvas.Edge, source, sourceHandle, target, targetHandle string) error {
		return Check(nodes, edges, source, sourceHandle, target, targetHandle, lookup)
	}
}

// resolve returns the node's cached definition, falling back to a registry
// lookup by type id.
func resolve(n *canvas.Node, lookup Lookup) (catalog.Definition, bool) {
	if def, ok := n.Definition(); ok {
		return def, true
	}
	if lookup == nil {
		return catalog.Definition{}, false
	}
	return lookup(n.Type)
}

func findNode(nodes []*canvas.Node, id string) (*canvas.Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}
