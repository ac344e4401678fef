// Package geometry holds the ground-plane primitives used by the drafting tools.
// All functions are pure; Y is never considered.
package geometry

import (
	"math"

	"blueprint-editor/internal/blueprint/models"

	"gonum.org/v1/gonum/spatial/r2"
)

// NearTolerance is the distance under which a point counts as touching an existing wall.
const NearTolerance = 0.5

func vec(p models.Point2) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Z}
}

func point(v r2.Vec) models.Point2 {
	return models.Point2{X: v.X, Z: v.Y}
}

// Distance returns the Euclidean distance between two ground points.
func Distance(a, b models.Point2) float64 {
	return r2.Norm(r2.Sub(vec(b), vec(a)))
}

// AngleOf returns the heading from one point to another in (-π, π].
func AngleOf(from, to models.Point2) float64 {
	return math.Atan2(to.Z-from.Z, to.X-from.X)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b models.Point2) models.Point2 {
	return point(r2.Scale(0.5, r2.Add(vec(a), vec(b))))
}

// Offset moves origin by length along angle (radians).
func Offset(origin models.Point2, angle, length float64) models.Point2 {
	return models.Point2{
		X: origin.X + length*math.Cos(angle),
		Z: origin.Z + length*math.Sin(angle),
	}
}

// SegmentsIntersect reports whether p1p2 and p3p4 cross.
// Parallel segments, collinear overlaps included, are reported as not intersecting.
func SegmentsIntersect(p1, p2, p3, p4 models.Point2) bool {
	d1 := r2.Sub(vec(p2), vec(p1))
	d2 := r2.Sub(vec(p4), vec(p3))

	det := r2.Cross(d1, d2)
	if det == 0 {
		return false
	}

	w := r2.Sub(vec(p3), vec(p1))
	t := r2.Cross(w, d2) / det
	u := r2.Cross(w, d1) / det

	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// ClosestPointOnSegment projects p onto the segment a-b, clamped to its ends.
func ClosestPointOnSegment(p, a, b models.Point2) models.Point2 {
	ab := r2.Sub(vec(b), vec(a))
	lenSq := r2.Dot(ab, ab)
	if lenSq == 0 {
		return a
	}

	t := r2.Dot(r2.Sub(vec(p), vec(a)), ab) / lenSq
	t = clamp(t, 0, 1)

	return point(r2.Add(vec(a), r2.Scale(t, ab)))
}

// PointToSegmentDistance is the distance from p to the closest point on a-b.
func PointToSegmentDistance(p, a, b models.Point2) float64 {
	return Distance(p, ClosestPointOnSegment(p, a, b))
}

// NearSegment reports whether p lies within tol of any of segs.
func NearSegment(p models.Point2, segs []models.Segment, tol float64) bool {
	for _, seg := range segs {
		if PointToSegmentDistance(p, seg.Start, seg.End) < tol {
			return true
		}
	}
	return false
}

// ============================================================
// Rectangles
// ============================================================

// Bounds is an axis-aligned rectangle on the ground plane.
type Bounds struct {
	MinX float64 `json:"minX" yaml:"min_x"`
	MaxX float64 `json:"maxX" yaml:"max_x"`
	MinZ float64 `json:"minZ" yaml:"min_z"`
	MaxZ float64 `json:"maxZ" yaml:"max_z"`
}

// BoundsOf spans the rectangle between two opposite corners.
func BoundsOf(a, b models.Point2) Bounds {
	return Bounds{
		MinX: math.Min(a.X, b.X),
		MaxX: math.Max(a.X, b.X),
		MinZ: math.Min(a.Z, b.Z),
		MaxZ: math.Max(a.Z, b.Z),
	}
}

func (b Bounds) Width() float64 { return b.MaxX - b.MinX }
func (b Bounds) Depth() float64 { return b.MaxZ - b.MinZ }

func (b Bounds) Center() models.Point2 {
	return models.Point2{X: (b.MinX + b.MaxX) / 2, Z: (b.MinZ + b.MaxZ) / 2}
}

// RectangleCorners returns (x1,z1), (x2,z1), (x2,z2), (x1,z2) for corners a=(x1,z1) and b=(x2,z2).
func RectangleCorners(a, b models.Point2) [4]models.Point2 {
	return [4]models.Point2{
		{X: a.X, Z: a.Z},
		{X: b.X, Z: a.Z},
		{X: b.X, Z: b.Z},
		{X: a.X, Z: b.Z},
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
