package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"blueprint-editor/internal/blueprint/models"
)

// ============================================================
// XML Structures
// ============================================================

type SVG struct {
	XMLName xml.Name `xml:"svg"`
	Rects   []Rect   `xml:"rect"`
	Paths   []Path   `xml:"path"`
	Groups  []Group  `xml:"g"`
}

// Group is an SVG <g>; exported plans often nest their layers.
type Group struct {
	Rects  []Rect  `xml:"rect"`
	Paths  []Path  `xml:"path"`
	Groups []Group `xml:"g"`
}

type Rect struct {
	ID     string  `xml:"id,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type Path struct {
	ID string `xml:"id,attr"`
	D  string `xml:"d,attr"`
}

const (
	ElementWall = "wall"
	ElementRoom = "room"
)

// ============================================================
// Parser
// ============================================================

// ParseSVG extracts the wall and room shapes of a plan, classified by element id.
func ParseSVG(r io.Reader) ([]models.SVGElement, error) {
	var svg SVG
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&svg); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	var elements []models.SVGElement
	collect(&elements, svg.Rects, svg.Paths)
	for _, g := range svg.Groups {
		collectGroup(&elements, g)
	}
	return elements, nil
}

func collectGroup(elements *[]models.SVGElement, g Group) {
	collect(elements, g.Rects, g.Paths)
	for _, child := range g.Groups {
		collectGroup(elements, child)
	}
}

func collect(elements *[]models.SVGElement, rects []Rect, paths []Path) {
	for _, rect := range rects {
		if kind := classifyElementByID(rect.ID); kind != "" {
			*elements = append(*elements, rect.element(kind))
		}
	}
	for _, path := range paths {
		if kind := classifyElementByID(path.ID); kind != "" {
			*elements = append(*elements, path.element(kind))
		}
	}
}

func (r Rect) element(kind string) models.SVGElement {
	return models.SVGElement{
		ID:       r.ID,
		Type:     kind,
		Geometry: models.RectGeometry{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height},
	}
}

func (p Path) element(kind string) models.SVGElement {
	return models.SVGElement{ID: p.ID, Type: kind, Geometry: models.PathGeometry{D: p.D}}
}

// classifyElementByID returns the element kind, or "" for anything that is
// neither a wall nor a room (doors, windows, furniture).
func classifyElementByID(id string) string {
	if strings.HasPrefix(id, "Wall_") {
		return ElementWall
	}
	if strings.HasPrefix(id, "Room_") ||
		strings.HasSuffix(id, "_room") || // Hall_room, Kitchen_room
		strings.HasSuffix(id, "_Room") {
		return ElementRoom
	}
	return ""
}
