package routing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chaincanvas/chaincanvas/internal/canvas"
)

// anchors extracts the points a path actually passes through: segment
// endpoints plus the corner points carried as quadratic controls.
func anchors(p Path) []Point {
	var pts []Point
	for _, seg := range p {
		if seg.Op == QuadTo {
			pts = append(pts, seg.Ctrl)
			continue
		}
		pts = append(pts, seg.To)
	}
	return pts
}

func TestSortClips(t *testing.T) {
	t.Parallel()

	source := Point{0, 0}
	clips := []canvas.Clip{
		{ID: "far", X: 300, Y: 0},
		{ID: "near", X: 10, Y: 0},
		{ID: "mid", X: 100, Y: 0},
	}

	sorted := SortClips(source, clips)
	require.Equal(t, []string{"near", "mid", "far"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID},
		"traversal order follows distance from source, not insertion order")

	// The input slice keeps its insertion order.
	require.Equal(t, "far", clips[0].ID)
}

func TestSortClipsReordersAfterDrag(t *testing.T) {
	t.Parallel()

	// Scenario: clips at distances 10 and 30; dragging the closer one out
	// to 50 swaps traversal order on the next recompute.
	source := Point{0, 0}
	clips := []canvas.Clip{
		{ID: "a", X: 10, Y: 0},
		{ID: "b", X: 30, Y: 0},
	}

	sorted := SortClips(source, clips)
	require.Equal(t, "a", sorted[0].ID)

	clips[0].X = 50
	sorted = SortClips(source, clips)
	require.Equal(t, "b", sorted[0].ID)
	require.Equal(t, "a", sorted[1].ID)
}

func TestComputePathDefaultCurve(t *testing.T) {
	t.Parallel()

	source, target := Point{0, 0}, Point{200, 100}
	path := ComputePath(source, target, nil, StyleSmooth)

	require.Len(t, path, 2)
	require.Equal(t, MoveTo, path[0].Op)
	require.Equal(t, source, path[0].To)
	require.Equal(t, CubicTo, path[1].Op)
	require.Equal(t, target, path[1].To)
	require.Equal(t, Point{100, 0}, path[1].Ctrl)
	require.Equal(t, Point{100, 100}, path[1].Ctrl2)
}

func TestComputePathSmoothCorners(t *testing.T) {
	t.Parallel()

	source, target := Point{0, 0}, Point{200, 100}
	clips := []canvas.Clip{{ID: "c", X: 100, Y: 0}}
	path := ComputePath(source, target, clips, StyleSmooth)

	// MoveTo source, LineTo rounding point, QuadTo through the corner,
	// LineTo target.
	require.Len(t, path, 4)
	require.Equal(t, MoveTo, path[0].Op)
	require.Equal(t, LineTo, path[1].Op)
	require.Equal(t, QuadTo, path[2].Op)
	require.Equal(t, Point{100, 0}, path[2].Ctrl, "corner point becomes the curve control")
	require.Equal(t, LineTo, path[3].Op)
	require.Equal(t, target, path.End())

	// The radius is capped, so the rounding point sits maxCornerRadius
	// before the corner along the incoming segment.
	require.InDelta(t, 100-maxCornerRadius, path[1].To.X, 1e-9)
	require.InDelta(t, 0, path[1].To.Y, 1e-9)
}

func TestComputePathShortSegmentsStaySharp(t *testing.T) {
	t.Parallel()

	source, target := Point{0, 0}, Point{10, 5}
	clips := []canvas.Clip{{ID: "c", X: 5, Y: 0}}
	path := ComputePath(source, target, clips, StyleSmooth)

	require.Len(t, path, 3)
	require.Equal(t, MoveTo, path[0].Op)
	require.Equal(t, LineTo, path[1].Op)
	require.Equal(t, Point{5, 0}, path[1].To, "short segments degrade to a sharp corner")
	require.Equal(t, LineTo, path[2].Op)
}

func TestComputePathVisitsSortedClips(t *testing.T) {
	t.Parallel()

	source, target := Point{0, 0}, Point{400, 0}
	clips := []canvas.Clip{
		{ID: "late", X: 300, Y: 40},
		{ID: "early", X: 100, Y: 40},
	}

	for _, style := range []Style{StyleSmooth, StyleOrthogonal} {
		path := ComputePath(source, target, clips, style)
		pts := anchors(path)

		idxEarly, idxLate := -1, -1
		for i, p := range pts {
			if (p == Point{100, 40}) {
				idxEarly = i
			}
			if (p == Point{300, 40}) {
				idxLate = i
			}
		}
		require.GreaterOrEqual(t, idxEarly, 0, "style %s must pass through the nearer clip", style)
		require.GreaterOrEqual(t, idxLate, 0, "style %s must pass through the farther clip", style)
		require.Less(t, idxEarly, idxLate, "style %s visits clips in distance order", style)
		require.Equal(t, source, pts[0])
		require.Equal(t, target, pts[len(pts)-1])
	}
}

func TestComputePathOrthogonal(t *testing.T) {
	t.Parallel()

	source, target := Point{0, 0}, Point{200, 100}
	path := ComputePath(source, target, nil, StyleOrthogonal)
	pts := anchors(path)

	// One bend at (target.x, source.y); every hop is axis-aligned.
	require.Contains(t, pts, Point{200, 0})
	for i := 1; i < len(pts); i++ {
		aligned := pts[i-1].X == pts[i].X || pts[i-1].Y == pts[i].Y
		require.True(t, aligned, "hop %d must be horizontal or vertical", i)
	}
}

func TestOrthogonalizeKeepsAlignedHops(t *testing.T) {
	t.Parallel()

	pts := orthogonalize([]Point{{0, 0}, {100, 0}, {100, 50}})
	require.Equal(t, []Point{{0, 0}, {100, 0}, {100, 50}}, pts)
}
