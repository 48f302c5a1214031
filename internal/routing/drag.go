package routing

// ApplyFunc commits a waypoint's new world position. The store's MoveClip is
// the usual implementation; the router never mutates graph state itself.
type ApplyFunc func(edgeID, clipID string, x, y float64) error

// Drag is a pointer capture over one waypoint handle. Between Start and
// Release every pointer move is projected into world coordinates and applied
// immediately, in arrival order. Releasing ends the capture with the last
// applied position standing; there is no rollback, and dragging never
// deletes the waypoint.
type Drag struct {
	edgeID    string
	clipID    string
	transform Transform
	apply     ApplyFunc
	active    bool
}

// StartDrag begins a capture for the given waypoint under the given
// viewport transform.
func StartDrag(edgeID, clipID string, t Transform, apply ApplyFunc) *Drag {
	return &Drag{
		edgeID:    edgeID,
		clipID:    clipID,
		transform: t,
		apply:     apply,
		active:    true,
	}
}

// Active reports whether the capture still holds the pointer.
func (d *Drag) Active() bool {
	return d.active
}

// Move applies one pointer move at a client position. Moves after Release
// are ignored.
func (d *Drag) Move(client Point) error {
	if !d.active {
		return nil
	}
	world := d.transform.ToWorld(client)
	return d.apply(d.edgeID, d.clipID, world.X, world.Y)
}

// Release ends the capture. The last applied position stands.
func (d *Drag) Release() {
	d.active = false
}
