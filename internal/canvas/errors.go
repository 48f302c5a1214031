package canvas

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when placing a node whose type id is not
	// in the registry. Placement is a no-op.
	ErrUnknownType = errors.New("unknown node type")

	// ErrNodeNotFound is returned when referencing a non-existent node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound is returned when referencing a non-existent edge.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrClipNotFound is returned when referencing a non-existent waypoint.
	ErrClipNotFound = errors.New("clip not found")

	// ErrInvalidSnapshot is returned when a snapshot fails validation on
	// load. The in-memory graph is left untouched.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// MutationError reports a failed store mutation.
type MutationError struct {
	// Op is the mutation that failed.
	Op string
	// Entity is the id of the node, edge or clip involved (if any).
	Entity string
	// Err is the underlying error.
	Err error
}

func (e *MutationError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s: %q: %v", e.Op, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// NewMutationError creates a new MutationError.
func NewMutationError(op, entity string, err error) error {
	return &MutationError{Op: op, Entity: entity, Err: err}
}
