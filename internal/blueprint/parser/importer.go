package parser

import (
	"fmt"
	"io"
	"math"
	"sort"

	"blueprint-editor/internal/blueprint/geometry"
	"blueprint-editor/internal/blueprint/models"
)

// ============================================================
// Plan Importer
// ============================================================

const (
	DefaultUnitsPerMeter  = 100.0 // plans are drawn in centimetres
	DefaultConnectMargin  = 15.0  // how far a wall end may stop short of a crossing wall, in plan units
	DefaultMergeTolerance = 8.0   // endpoints closer than this are welded, in plan units
)

// Plan is the importable content of an SVG plan, in metres.
type Plan struct {
	Walls []models.Segment  `json:"walls"`
	Rooms []geometry.Bounds `json:"rooms"`
}

// Importer turns wall shapes into centerline segments. Walls drawn as thick
// rectangles or closed outlines become one segment along their long axis;
// segments are split where perpendicular walls meet them so every junction is
// an endpoint.
type Importer struct {
	UnitsPerMeter  float64
	ConnectMargin  float64
	MergeTolerance float64
}

func NewImporter() *Importer {
	return &Importer{
		UnitsPerMeter:  DefaultUnitsPerMeter,
		ConnectMargin:  DefaultConnectMargin,
		MergeTolerance: DefaultMergeTolerance,
	}
}

// Import reads an SVG document.
func (im *Importer) Import(r io.Reader) (Plan, error) {
	elements, err := ParseSVG(r)
	if err != nil {
		return Plan{}, err
	}
	return im.FromElements(elements)
}

// FromElements converts already parsed elements.
func (im *Importer) FromElements(elements []models.SVGElement) (Plan, error) {
	var (
		lines []centerline
		plan  Plan
	)

	for _, el := range elements {
		switch el.Type {
		case ElementWall:
			line, ok, err := wallCenterline(el)
			if err != nil {
				return Plan{}, fmt.Errorf("wall %s: %w", el.ID, err)
			}
			if ok {
				lines = append(lines, line)
			}
		case ElementRoom:
			b, ok, err := elementBounds(el)
			if err != nil {
				return Plan{}, fmt.Errorf("room %s: %w", el.ID, err)
			}
			if ok {
				plan.Rooms = append(plan.Rooms, im.scaleBounds(b))
			}
		}
	}

	for _, line := range im.weld(im.split(lines)) {
		plan.Walls = append(plan.Walls, models.NewSegment(im.scale(line.p1), im.scale(line.p2)))
	}
	return plan, nil
}

func (im *Importer) unit() float64 {
	if im.UnitsPerMeter <= 0 {
		return DefaultUnitsPerMeter
	}
	return im.UnitsPerMeter
}

func (im *Importer) scale(p models.Point2) models.Point2 {
	u := im.unit()
	return models.Point2{X: p.X / u, Z: p.Z / u}
}

func (im *Importer) scaleBounds(b geometry.Bounds) geometry.Bounds {
	u := im.unit()
	return geometry.Bounds{MinX: b.MinX / u, MaxX: b.MaxX / u, MinZ: b.MinZ / u, MaxZ: b.MaxZ / u}
}

// ============================================================
// Centerlines
// ============================================================

type centerline struct {
	id     string
	p1, p2 models.Point2
}

func wallCenterline(el models.SVGElement) (centerline, bool, error) {
	b, ok, err := elementBounds(el)
	if err != nil || !ok {
		return centerline{}, ok, err
	}

	width, depth := b.Width(), b.Depth()
	line := centerline{id: el.ID}
	switch {
	case width == 0 && depth == 0:
		return centerline{}, false, nil
	case width >= depth:
		midZ := b.MinZ + depth/2
		line.p1 = models.Point2{X: b.MinX, Z: midZ}
		line.p2 = models.Point2{X: b.MaxX, Z: midZ}
	default:
		midX := b.MinX + width/2
		line.p1 = models.Point2{X: midX, Z: b.MinZ}
		line.p2 = models.Point2{X: midX, Z: b.MaxZ}
	}
	return line, true, nil
}

func elementBounds(el models.SVGElement) (geometry.Bounds, bool, error) {
	switch geom := el.Geometry.(type) {
	case models.RectGeometry:
		return geometry.BoundsOf(
			models.Point2{X: geom.X, Z: geom.Y},
			models.Point2{X: geom.X + geom.Width, Z: geom.Y + geom.Height},
		), true, nil
	case models.PathGeometry:
		points, err := ParsePath(geom.D)
		if err != nil {
			return geometry.Bounds{}, false, err
		}
		if len(points) < 2 {
			return geometry.Bounds{}, false, nil
		}
		b := geometry.BoundsOf(points[0], points[0])
		for _, p := range points[1:] {
			b.MinX = math.Min(b.MinX, p.X)
			b.MaxX = math.Max(b.MaxX, p.X)
			b.MinZ = math.Min(b.MinZ, p.Z)
			b.MaxZ = math.Max(b.MaxZ, p.Z)
		}
		return b, true, nil
	}
	return geometry.Bounds{}, false, nil
}

// ============================================================
// Junctions
// ============================================================

type axisLine struct {
	line        centerline
	horizontal  bool
	start, end  float64
	constant    float64
	splitPoints []float64
}

// split cuts every centerline where a perpendicular one crosses or nearly reaches it.
func (im *Importer) split(lines []centerline) []centerline {
	infos := make([]*axisLine, 0, len(lines))
	for _, l := range lines {
		horizontal := math.Abs(l.p1.Z-l.p2.Z) <= math.Abs(l.p1.X-l.p2.X)
		start, end, constant := l.p1.X, l.p2.X, l.p1.Z
		if !horizontal {
			start, end, constant = l.p1.Z, l.p2.Z, l.p1.X
		}
		if start > end {
			start, end = end, start
		}
		infos = append(infos, &axisLine{
			line:        l,
			horizontal:  horizontal,
			start:       start,
			end:         end,
			constant:    constant,
			splitPoints: []float64{start, end},
		})
	}

	for i := 0; i < len(infos); i++ {
		for j := i + 1; j < len(infos); j++ {
			a, b := infos[i], infos[j]
			if a.horizontal == b.horizontal {
				continue
			}
			h, v := a, b
			if !a.horizontal {
				h, v = b, a
			}
			im.addIntersection(h, v)
		}
	}

	var result []centerline
	for _, info := range infos {
		points := append([]float64{}, info.splitPoints...)
		sort.Float64s(points)
		points = uniquePoints(points)

		parts := len(points) - 1
		for idx := 0; idx < parts; idx++ {
			start, end := points[idx], points[idx+1]
			out := centerline{id: info.line.id}
			if parts > 1 {
				out.id = fmt.Sprintf("%s_%d", info.line.id, idx+1)
			}
			if info.horizontal {
				out.p1 = models.Point2{X: start, Z: info.constant}
				out.p2 = models.Point2{X: end, Z: info.constant}
			} else {
				out.p1 = models.Point2{X: info.constant, Z: start}
				out.p2 = models.Point2{X: info.constant, Z: end}
			}
			result = append(result, out)
		}
	}
	return result
}

func (im *Importer) addIntersection(h, v *axisLine) {
	margin := im.ConnectMargin
	vx, hz := v.constant, h.constant
	if vx < h.start-margin || vx > h.end+margin {
		return
	}
	if hz < v.start-margin || hz > v.end+margin {
		return
	}
	h.splitPoints = append(h.splitPoints, clamp(vx, h.start, h.end))
	v.splitPoints = append(v.splitPoints, clamp(hz, v.start, v.end))
}

// weld snaps endpoints that nearly coincide onto the first one seen, and drops
// segments that collapse as a result.
func (im *Importer) weld(lines []centerline) []centerline {
	var anchors []models.Point2
	snap := func(p models.Point2) models.Point2 {
		for _, a := range anchors {
			if geometry.Distance(a, p) <= im.MergeTolerance {
				return a
			}
		}
		anchors = append(anchors, p)
		return p
	}

	out := lines[:0]
	for _, l := range lines {
		l.p1, l.p2 = snap(l.p1), snap(l.p2)
		if l.p1 == l.p2 {
			continue
		}
		out = append(out, l)
	}
	return out
}

func uniquePoints(points []float64) []float64 {
	if len(points) == 0 {
		return points
	}
	out := points[:1]
	for i := 1; i < len(points); i++ {
		if !almostEqual(points[i], points[i-1]) {
			out = append(out, points[i])
		}
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
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
