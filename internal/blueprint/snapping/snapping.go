// Package snapping confirms wall directions that are drawn close to a multiple of 45°.
//
// Snapping never pulls an arbitrary direction toward the nearest canonical angle: only
// directions already within tolerance are corrected, so a chain of near-straight walls
// lands exactly on its axis without drift.
package snapping

import (
	"math"

	"blueprint-editor/internal/blueprint/geometry"
	"blueprint-editor/internal/blueprint/models"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is the angular tolerance in degrees.
const DefaultTolerance = 0.5

// CanonicalAngles lists the accepted headings in degrees. 360 catches wraparound.
var CanonicalAngles = [...]float64{0, 45, 90, 135, 180, 225, 270, 315, 360}

// Engine carries separate tolerances for the live preview and for committed geometry.
type Engine struct {
	CommitTolerance  float64
	PreviewTolerance float64
}

func NewEngine(commitTol, previewTol float64) Engine {
	if commitTol <= 0 {
		commitTol = DefaultTolerance
	}
	if previewTol <= 0 {
		previewTol = DefaultTolerance
	}
	return Engine{CommitTolerance: commitTol, PreviewTolerance: previewTol}
}

// Default uses DefaultTolerance for both.
func Default() Engine {
	return NewEngine(DefaultTolerance, DefaultTolerance)
}

// SnapEndpoint applies the commit-time snap.
func (e Engine) SnapEndpoint(origin, rawEnd models.Point2) models.Point2 {
	return snapEndpoint(origin, rawEnd, e.CommitTolerance)
}

// PreviewAligned reports whether the live line should be drawn as aligned.
// It does not consult the commit tolerance.
func (e Engine) PreviewAligned(origin, cursor models.Point2) bool {
	return IsAligned(geometry.AngleOf(origin, cursor), e.PreviewTolerance)
}

// ============================================================
// Package-level helpers
// ============================================================

// IsAligned reports whether angle (radians) is within tolDeg of a canonical angle.
func IsAligned(angle, tolDeg float64) bool {
	deg := normalizeDegrees(angle)
	for _, c := range CanonicalAngles {
		if scalar.EqualWithinAbs(deg, c, tolDeg) {
			return true
		}
	}
	return false
}

// ClosestCanonical returns the canonical angle in degrees nearest to angle (radians).
func ClosestCanonical(angle float64) float64 {
	deg := normalizeDegrees(angle)
	best := CanonicalAngles[0]
	bestDiff := math.Abs(deg - best)
	for _, c := range CanonicalAngles[1:] {
		if diff := math.Abs(deg - c); diff < bestDiff {
			best, bestDiff = c, diff
		}
	}
	return best
}

// SnapEndpoint snaps with DefaultTolerance.
func SnapEndpoint(origin, rawEnd models.Point2) models.Point2 {
	return snapEndpoint(origin, rawEnd, DefaultTolerance)
}

func snapEndpoint(origin, rawEnd models.Point2, tolDeg float64) models.Point2 {
	angle := geometry.AngleOf(origin, rawEnd)
	if !IsAligned(angle, tolDeg) {
		return rawEnd
	}

	target := ClosestCanonical(angle) * math.Pi / 180
	return geometry.Offset(origin, target, geometry.Distance(origin, rawEnd))
}

func normalizeDegrees(angle float64) float64 {
	deg := math.Mod(angle*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
