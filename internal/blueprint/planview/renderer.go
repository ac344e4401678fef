// Package planview draws the top-down plan of one floor as SVG. Element ids
// follow the naming the plan importer recognises, so an exported plan can be
// imported again.
package planview

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"blueprint-editor/internal/blueprint/models"
)

// ============================================================
// Renderer
// ============================================================

const (
	DefaultUnitsPerMeter = 100.0
	margin               = 50.0
)

var ErrEmptyPlan = errors.New("nothing to render on this floor")

// Scene is what gets drawn: the entities of one floor plus the draft in progress.
type Scene struct {
	Entities []models.Entity3D
	Draft    []models.Segment
	Floor    int
}

type Renderer struct {
	UnitsPerMeter float64
}

func NewRenderer() *Renderer {
	return &Renderer{UnitsPerMeter: DefaultUnitsPerMeter}
}

// Render builds the SVG document.
func (r *Renderer) Render(scene Scene) (string, error) {
	var (
		slabs []models.Entity3D
		walls []models.Entity3D
	)
	for _, e := range scene.Entities {
		if e.FloorIndex != scene.Floor {
			continue
		}
		switch e.Kind {
		case models.KindFloorSlab:
			slabs = append(slabs, e)
		case models.KindWall:
			walls = append(walls, e)
		}
	}
	if len(slabs) == 0 && len(walls) == 0 && len(scene.Draft) == 0 {
		return "", fmt.Errorf("floor %d: %w", scene.Floor, ErrEmptyPlan)
	}

	var (
		elements []string
		box      = newBox()
	)
	for _, e := range slabs {
		elements = append(elements, r.renderSlab(e, box))
	}
	for _, e := range walls {
		elements = append(elements, r.renderWall(e, box))
	}
	for i, seg := range scene.Draft {
		elements = append(elements, r.renderDraft(i, seg, box))
	}

	minX, minY := box.minX-margin, box.minY-margin
	width, height := box.maxX-box.minX+2*margin, box.maxY-box.minY+2*margin

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(minX), formatFloat(minY), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

func (r *Renderer) unit() float64 {
	if r.UnitsPerMeter <= 0 {
		return DefaultUnitsPerMeter
	}
	return r.UnitsPerMeter
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderSlab(e models.Entity3D, box *bbox) string {
	u := r.unit()
	x := (e.Position.X - e.Scale.X/2) * u
	y := (e.Position.Z - e.Scale.Z/2) * u
	w, h := e.Scale.X*u, e.Scale.Z*u
	box.add(point{x, y})
	box.add(point{x + w, y + h})

	return fmt.Sprintf(`<rect id="Room_%s" x="%s" y="%s" width="%s" height="%s" fill="#eee" stroke="#888" />`,
		e.ID, formatFloat(x), formatFloat(y), formatFloat(w), formatFloat(h))
}

// renderWall draws the wall footprint: scale.x along its direction, scale.z across it.
func (r *Renderer) renderWall(e models.Entity3D, box *bbox) string {
	u := r.unit()
	angle := -e.Rotation.Y
	points := rectanglePoints(e.Position.X*u, e.Position.Z*u, e.Scale.X*u, e.Scale.Z*u, angle)
	for _, p := range points {
		box.add(p)
	}

	var path strings.Builder
	path.WriteString(`<path id="Wall_`)
	path.WriteString(e.ID.String())
	path.WriteString(`" d="M `)
	path.WriteString(formatPoint(points[0]))
	for _, p := range points[1:] {
		path.WriteString(" L ")
		path.WriteString(formatPoint(p))
	}
	path.WriteString(` Z" fill="#444" stroke="#000" />`)
	return path.String()
}

func (r *Renderer) renderDraft(i int, seg models.Segment, box *bbox) string {
	u := r.unit()
	a := point{seg.Start.X * u, seg.Start.Z * u}
	b := point{seg.End.X * u, seg.End.Z * u}
	box.add(a)
	box.add(b)

	return fmt.Sprintf(`<line id="Draft_%d" x1="%s" y1="%s" x2="%s" y2="%s" stroke="#1f77b4" stroke-dasharray="8 4" />`,
		i+1, formatFloat(a.x), formatFloat(a.y), formatFloat(b.x), formatFloat(b.y))
}

// ============================================================
// Geometry helpers
// ============================================================

type point struct{ x, y float64 }

type bbox struct {
	minX, minY, maxX, maxY float64
}

func newBox() *bbox {
	return &bbox{
		minX: math.MaxFloat64, minY: math.MaxFloat64,
		maxX: -math.MaxFloat64, maxY: -math.MaxFloat64,
	}
}

func (b *bbox) add(p point) {
	b.minX = math.Min(b.minX, p.x)
	b.minY = math.Min(b.minY, p.y)
	b.maxX = math.Max(b.maxX, p.x)
	b.maxY = math.Max(b.maxY, p.y)
}

// rectanglePoints returns the corners of a width x height rectangle centred on
// (cx, cy) and turned by rad.
func rectanglePoints(cx, cy, width, height, rad float64) []point {
	halfW := width / 2
	halfH := height / 2

	points := []point{
		{cx - halfW, cy - halfH},
		{cx + halfW, cy - halfH},
		{cx + halfW, cy + halfH},
		{cx - halfW, cy + halfH},
	}
	if rad == 0 {
		return points
	}

	sin, cos := math.Sin(rad), math.Cos(rad)
	for i, p := range points {
		dx := p.x - cx
		dy := p.y - cy
		points[i] = point{
			x: cx + dx*cos - dy*sin,
			y: cy + dx*sin + dy*cos,
		}
	}
	return points
}

// Floors lists the floor indexes that have entities, in ascending order.
func Floors(entities []models.Entity3D) []int {
	seen := map[int]bool{}
	var out []int
	for _, e := range entities {
		if !seen[e.FloorIndex] {
			seen[e.FloorIndex] = true
			out = append(out, e.FloorIndex)
		}
	}
	sort.Ints(out)
	return out
}

// ============================================================
// Formatting helpers
// ============================================================

// formatFloat rounds to micro-units so rotations do not leak float noise into the document.
func formatFloat(val float64) string {
	val = math.Round(val*1e6) / 1e6
	if val == 0 {
		val = 0
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p point) string {
	return formatFloat(p.x) + " " + formatFloat(p.y)
}
