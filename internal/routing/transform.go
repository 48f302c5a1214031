package routing

import "github.com/chaincanvas/chaincanvas/internal/canvas"

// Transform converts between client (pixel) and world (canvas) coordinates
// under a pan/zoom viewport. It is plain arithmetic so geometry code stays
// independent of any rendering surface.
type Transform struct {
	Offset Point
	Zoom   float64
}

// FromViewport builds the transform for the current viewport.
func FromViewport(vp canvas.Viewport) Transform {
	zoom := vp.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return Transform{Offset: Point{vp.X, vp.Y}, Zoom: zoom}
}

// ToWorld maps a client point into world coordinates: subtract the viewport
// origin, divide by zoom.
func (t Transform) ToWorld(client Point) Point {
	return client.Sub(t.Offset).Scale(1 / t.Zoom)
}

// ToClient maps a world point into client coordinates.
func (t Transform) ToClient(world Point) Point {
	return world.Scale(t.Zoom).Add(t.Offset)
}
