// Package routing computes rendered path geometry for edges. It is purely
// presentational and has no effect on graph validity.
package routing

import "math"

// Point is a 2-D point, in world or client coordinates depending on context.
type Point struct {
	X float64
	Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Len returns the vector length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// Norm returns the unit vector of p, or the zero vector if p has no length.
func (p Point) Norm() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Op is a path segment operation.
type Op int

const (
	// MoveTo starts a new subpath at To.
	MoveTo Op = iota
	// LineTo draws a straight segment to To.
	LineTo
	// QuadTo draws a quadratic curve to To with control point Ctrl.
	QuadTo
	// CubicTo draws a cubic curve to To with control points Ctrl and Ctrl2.
	CubicTo
)

// Segment is one stroke instruction of a rendered path.
type Segment struct {
	Op    Op
	To    Point
	Ctrl  Point
	Ctrl2 Point
}

// Path is a sequence of straight and curved segments suitable for stroke
// rendering.
type Path []Segment

// End returns the final point of the path.
func (p Path) End() Point {
	if len(p) == 0 {
		return Point{}
	}
	return p[len(p)-1].To
}
