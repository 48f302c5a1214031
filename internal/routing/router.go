package routing

import (
	"sort"

	"github.com/chaincanvas/chaincanvas/internal/canvas"
)

// Style selects how an edge is routed between its points.
type Style string

const (
	// StyleSmooth draws straight runs with rounded corners at waypoints.
	StyleSmooth Style = "smooth"
	// StyleOrthogonal routes each hop as a horizontal then vertical run.
	StyleOrthogonal Style = "orthogonal"
)

const (
	// maxCornerRadius caps the rounding radius at a waypoint.
	maxCornerRadius = 12.0
	// minSegment is the segment length under which a corner degrades to a
	// sharp bend instead of an ill-formed curve.
	minSegment = 8.0
)

// SortClips returns the clips ordered by ascending distance from the source
// endpoint. The sort runs on every recomputation, so dragging a clip past
// another one swaps their traversal order even though the clip identities
// are unchanged. Ties keep insertion order.
func SortClips(source Point, clips []canvas.Clip) []canvas.Clip {
	sorted := append([]canvas.Clip(nil), clips...)
	sort.SliceStable(sorted, func(i, j int) bool {
		di := source.Dist(Point{sorted[i].X, sorted[i].Y})
		dj := source.Dist(Point{sorted[j].X, sorted[j].Y})
		return di < dj
	})
	return sorted
}

// ComputePath builds the rendered geometry for an edge from its endpoint
// positions and waypoints.
func ComputePath(source, target Point, clips []canvas.Clip, style Style) Path {
	if len(clips) == 0 && style == StyleSmooth {
		return directCurve(source, target)
	}

	pts := make([]Point, 0, len(clips)+2)
	pts = append(pts, source)
	for _, c := range SortClips(source, clips) {
		pts = append(pts, Point{c.X, c.Y})
	}
	pts = append(pts, target)

	if style == StyleOrthogonal {
		pts = orthogonalize(pts)
	}
	return roundCorners(pts)
}

// directCurve is the zero-waypoint default: a cubic with horizontally offset
// control points, the usual flow-editor bezier.
func directCurve(source, target Point) Path {
	midX := (source.X + target.X) / 2
	return Path{
		{Op: MoveTo, To: source},
		{
			Op:    CubicTo,
			Ctrl:  Point{midX, source.Y},
			Ctrl2: Point{midX, target.Y},
			To:    target,
		},
	}
}

// orthogonalize expands a polyline so every hop is a horizontal run followed
// by a vertical run, bending at (next.x, prev.y). Hops already axis-aligned
// pass through unchanged.
func orthogonalize(pts []Point) []Point {
	out := make([]Point, 0, len(pts)*2)
	out = append(out, pts[0])
	for i := 1; i < len(pts); i++ {
		prev, next := pts[i-1], pts[i]
		if prev.X != next.X && prev.Y != next.Y {
			out = append(out, Point{next.X, prev.Y})
		}
		out = append(out, next)
	}
	return out
}

// roundCorners emits the polyline with each interior corner rounded by a
// quadratic through the corner point. The radius is bounded by a fixed cap
// and one third of each adjacent segment; corners on segments shorter than
// the minimum stay sharp.
func roundCorners(pts []Point) Path {
	path := Path{{Op: MoveTo, To: pts[0]}}
	for i := 1; i < len(pts)-1; i++ {
		p := pts[i]
		in := p.Sub(pts[i-1])
		out := pts[i+1].Sub(p)
		lenIn, lenOut := in.Len(), out.Len()

		if lenIn < minSegment || lenOut < minSegment {
			path = append(path, Segment{Op: LineTo, To: p})
			continue
		}

		r := maxCornerRadius
		if lenIn/3 < r {
			r = lenIn / 3
		}
		if lenOut/3 < r {
			r = lenOut / 3
		}

		path = append(path,
			Segment{Op: LineTo, To: p.Sub(in.Norm().Scale(r))},
			Segment{Op: QuadTo, Ctrl: p, To: p.Add(out.Norm().Scale(r))},
		)
	}
	path = append(path, Segment{Op: LineTo, To: pts[len(pts)-1]})
	return path
}
