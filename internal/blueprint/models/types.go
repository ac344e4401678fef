package models

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ============================================================
// Geometry primitives
// ============================================================

// Point2 is a point on the ground plane. Y is implicit and derived from the floor.
type Point2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

func (p Point2) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Z)
}

// Vec3 is serialized as a [x, y, z] array, the shape the scene objects use.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}

func (v *Vec3) UnmarshalJSON(data []byte) error {
	var arr [3]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("vec3: %w", err)
	}
	v.X, v.Y, v.Z = arr[0], arr[1], arr[2]
	return nil
}

// MaxComponent returns the largest component, used to size focus distances.
func (v Vec3) MaxComponent() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// ============================================================
// Draft structures
// ============================================================

// Segment is an immutable wall edge. Length is computed once at creation.
type Segment struct {
	ID     uuid.UUID `json:"id"`
	Start  Point2    `json:"start"`
	End    Point2    `json:"end"`
	Length float64   `json:"length"`
}

// NewSegment creates a segment and caches its length.
func NewSegment(start, end Point2) Segment {
	return Segment{
		ID:     uuid.New(),
		Start:  start,
		End:    end,
		Length: math.Hypot(end.X-start.X, end.Z-start.Z),
	}
}

type DraftMode int

const (
	ModeIdle DraftMode = iota
	ModeWallChain
	ModeRectangle
)

var draftModeNames = map[DraftMode]string{
	ModeIdle:      "idle",
	ModeWallChain: "wall-chain",
	ModeRectangle: "rectangle",
}

func (m DraftMode) String() string {
	if name, ok := draftModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("DraftMode(%d)", int(m))
}

func (m DraftMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *DraftMode) UnmarshalText(text []byte) error {
	mode, err := ParseDraftMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseDraftMode accepts the names produced by String.
func ParseDraftMode(s string) (DraftMode, error) {
	for mode, name := range draftModeNames {
		if name == s {
			return mode, nil
		}
	}
	return ModeIdle, fmt.Errorf("unknown draft mode %q", s)
}

// ============================================================
// 3D entities
// ============================================================

type EntityKind string

const (
	KindWall      EntityKind = "wall"
	KindFloorSlab EntityKind = "floor"
)

// Face indexes the six faces of a box-shaped entity.
type Face int

const (
	FaceRight Face = iota
	FaceLeft
	FaceTop
	FaceBottom
	FaceFront
	FaceBack
)

var faceNames = [...]string{"right", "left", "top", "bottom", "front", "back"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// FaceMaterials holds one texture reference per face. Empty means the default material.
type FaceMaterials [6]string

// Set returns a copy with the given face replaced.
func (m FaceMaterials) Set(f Face, texture string) FaceMaterials {
	m[f] = texture
	return m
}

// Uniform returns the shared texture when all faces agree.
func (m FaceMaterials) Uniform() (string, bool) {
	for _, t := range m[1:] {
		if t != m[0] {
			return "", false
		}
	}
	return m[0], true
}

// Entity3D is a priced wall or floor slab.
type Entity3D struct {
	ID         uuid.UUID     `json:"id"`
	Kind       EntityKind    `json:"kind"`
	Position   Vec3          `json:"position"`
	Rotation   Vec3          `json:"rotation"`
	Scale      Vec3          `json:"scale"`
	Price      float64       `json:"price"`
	Label      string        `json:"label"`
	FloorIndex int           `json:"floorIndex"`
	Faces      FaceMaterials `json:"faces"`
}

// ============================================================
// Camera
// ============================================================

type CameraMode int

const (
	CameraOrbit CameraMode = iota
	CameraFirstPerson
	CameraObjectFocus
	CameraOrthographic2D
)

var cameraModeNames = map[CameraMode]string{
	CameraOrbit:          "orbit",
	CameraFirstPerson:    "first-person",
	CameraObjectFocus:    "object-focus",
	CameraOrthographic2D: "orthographic-2d",
}

func (m CameraMode) String() string {
	if name, ok := cameraModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("CameraMode(%d)", int(m))
}

func (m CameraMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

type NavigationSubMode int

const (
	SubModeOrbit NavigationSubMode = iota
	SubModePanMove
)

func (m NavigationSubMode) String() string {
	switch m {
	case SubModeOrbit:
		return "orbit"
	case SubModePanMove:
		return "pan-move"
	}
	return fmt.Sprintf("NavigationSubMode(%d)", int(m))
}

func (m NavigationSubMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ============================================================
// SVG plan elements
// ============================================================

type SVGElement struct {
	ID       string
	Type     string // wall, room
	Geometry interface{}
}

type RectGeometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type PathGeometry struct {
	D string
}
