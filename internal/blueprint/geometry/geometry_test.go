package geometry

import (
	"math"
	"testing"

	"blueprint-editor/internal/blueprint/models"

	"github.com/stretchr/testify/require"
)

func pt(x, z float64) models.Point2 { return models.Point2{X: x, Z: z} }

func TestDistance(t *testing.T) {
	require.InDelta(t, 5.0, Distance(pt(0, 0), pt(3, 4)), 1e-10)
	require.InDelta(t, 0.0, Distance(pt(2, 2), pt(2, 2)), 1e-10)
}

func TestAngleOf(t *testing.T) {
	require.InDelta(t, 0.0, AngleOf(pt(0, 0), pt(10, 0)), 1e-10)
	require.InDelta(t, math.Pi/2, AngleOf(pt(0, 0), pt(0, 3)), 1e-10)
	require.InDelta(t, math.Pi, AngleOf(pt(0, 0), pt(-1, 0)), 1e-10)
	require.InDelta(t, -math.Pi/4, AngleOf(pt(0, 0), pt(1, -1)), 1e-10)
}

func TestSegmentsIntersect(t *testing.T) {
	t.Run("Crossing", func(t *testing.T) {
		require.True(t, SegmentsIntersect(pt(0, 0), pt(10, 10), pt(0, 10), pt(10, 0)))
	})

	t.Run("Touching end", func(t *testing.T) {
		require.True(t, SegmentsIntersect(pt(0, 0), pt(10, 0), pt(10, 0), pt(10, 5)))
	})

	t.Run("Disjoint", func(t *testing.T) {
		require.False(t, SegmentsIntersect(pt(0, 0), pt(1, 1), pt(5, 0), pt(6, -3)))
	})

	t.Run("Parallel", func(t *testing.T) {
		require.False(t, SegmentsIntersect(pt(0, 0), pt(10, 0), pt(0, 1), pt(10, 1)))
	})

	t.Run("Collinear overlap is not detected", func(t *testing.T) {
		require.False(t, SegmentsIntersect(pt(0, 0), pt(10, 0), pt(5, 0), pt(15, 0)))
	})
}

func TestClosestPointOnSegment(t *testing.T) {
	require.Equal(t, pt(5, 0), ClosestPointOnSegment(pt(5, 5), pt(0, 0), pt(10, 0)))
	require.Equal(t, pt(0, 0), ClosestPointOnSegment(pt(-4, 3), pt(0, 0), pt(10, 0)))
	require.Equal(t, pt(10, 0), ClosestPointOnSegment(pt(14, -2), pt(0, 0), pt(10, 0)))
	require.Equal(t, pt(1, 1), ClosestPointOnSegment(pt(4, 5), pt(1, 1), pt(1, 1)))
}

func TestPointToSegmentDistance(t *testing.T) {
	require.InDelta(t, 0.1, PointToSegmentDistance(pt(5, 0.1), pt(0, 0), pt(10, 0)), 1e-10)
	require.InDelta(t, 5.0, PointToSegmentDistance(pt(13, 4), pt(0, 0), pt(10, 0)), 1e-10)
}

func TestNearSegment(t *testing.T) {
	segs := []models.Segment{models.NewSegment(pt(0, 0), pt(10, 0))}

	require.True(t, NearSegment(pt(5, 0.1), segs, NearTolerance))
	require.False(t, NearSegment(pt(5, 0.5), segs, NearTolerance))
	require.False(t, NearSegment(pt(5, 0.1), nil, NearTolerance))
}

func TestBoundsAndCorners(t *testing.T) {
	b := BoundsOf(pt(5, 3), pt(0, 0))
	require.Equal(t, Bounds{MinX: 0, MaxX: 5, MinZ: 0, MaxZ: 3}, b)
	require.Equal(t, 5.0, b.Width())
	require.Equal(t, 3.0, b.Depth())
	require.Equal(t, pt(2.5, 1.5), b.Center())

	corners := RectangleCorners(pt(0, 0), pt(5, 3))
	require.Equal(t, [4]models.Point2{pt(0, 0), pt(5, 0), pt(5, 3), pt(0, 3)}, corners)
}

func TestMidpointAndOffset(t *testing.T) {
	require.Equal(t, pt(5, 1), Midpoint(pt(0, 0), pt(10, 2)))

	p := Offset(pt(1, 1), math.Pi/2, 4)
	require.InDelta(t, 1.0, p.X, 1e-10)
	require.InDelta(t, 5.0, p.Z, 1e-10)
}
