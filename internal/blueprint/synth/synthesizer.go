package synth

import (
	"fmt"

	"blueprint-editor/internal/blueprint/geometry"
	"blueprint-editor/internal/blueprint/models"

	"github.com/google/uuid"
)

// ============================================================
// Pricing
// ============================================================

// DefaultThickness is used for walls and slabs alike.
const DefaultThickness = 0.2

// Pricing holds every rate separately. Walls are priced by length when drawn and by
// area when rescaled; room slabs and standalone floors have their own rates.
type Pricing struct {
	WallPerMeter           float64 `yaml:"wall_per_meter" json:"wallPerMeter"`
	WallPerSquareMeter     float64 `yaml:"wall_per_square_meter" json:"wallPerSquareMeter"`
	RoomSlabPerSquareMeter float64 `yaml:"room_slab_per_square_meter" json:"roomSlabPerSquareMeter"`
	FloorPerSquareMeter    float64 `yaml:"floor_per_square_meter" json:"floorPerSquareMeter"`
}

func DefaultPricing() Pricing {
	return Pricing{
		WallPerMeter:           10,
		WallPerSquareMeter:     120,
		RoomSlabPerSquareMeter: 25,
		FloorPerSquareMeter:    80,
	}
}

// Floors is the part of the floor registry the synthesizer reads.
type Floors interface {
	HeightOf(index int) float64
	StoryHeight() float64
	Describe(index int) string
}

// ============================================================
// Synthesizer
// ============================================================

// Synthesizer turns committed 2D input into priced 3D entities. It keeps no
// reference to anything it returns.
type Synthesizer struct {
	floors    Floors
	pricing   Pricing
	thickness float64
}

func New(floors Floors, pricing Pricing, thickness float64) *Synthesizer {
	if thickness <= 0 {
		thickness = DefaultThickness
	}
	return &Synthesizer{
		floors:    floors,
		pricing:   pricing,
		thickness: thickness,
	}
}

func (s *Synthesizer) Pricing() Pricing {
	return s.pricing
}

// WallFromSegment builds a wall centred on the segment midpoint and vertically
// centred within its story.
func (s *Synthesizer) WallFromSegment(seg models.Segment, floor int) models.Entity3D {
	storyHeight := s.floors.StoryHeight()
	mid := geometry.Midpoint(seg.Start, seg.End)
	angle := geometry.AngleOf(seg.Start, seg.End)

	return models.Entity3D{
		ID:         uuid.New(),
		Kind:       models.KindWall,
		Position:   models.Vec3{X: mid.X, Y: s.floors.HeightOf(floor) + storyHeight/2, Z: mid.Z},
		Rotation:   models.Vec3{X: 0, Y: -angle, Z: 0},
		Scale:      models.Vec3{X: seg.Length, Y: storyHeight, Z: s.thickness},
		Price:      seg.Length * s.pricing.WallPerMeter,
		Label:      fmt.Sprintf("Mur (%s)", s.floors.Describe(floor)),
		FloorIndex: floor,
	}
}

func (s *Synthesizer) WallsFromSegments(segs []models.Segment, floor int) []models.Entity3D {
	walls := make([]models.Entity3D, 0, len(segs))
	for _, seg := range segs {
		walls = append(walls, s.WallFromSegment(seg, floor))
	}
	return walls
}

// FloorSlabFromBounds builds a room slab priced at the room slab rate.
// The slab sits at half the floor's base height.
func (s *Synthesizer) FloorSlabFromBounds(minX, maxX, minZ, maxZ float64, floor int) models.Entity3D {
	b := geometry.Bounds{MinX: minX, MaxX: maxX, MinZ: minZ, MaxZ: maxZ}
	return s.slab(b, floor, s.pricing.RoomSlabPerSquareMeter)
}

// StandaloneFloor builds a floor object priced at the general floor rate.
func (s *Synthesizer) StandaloneFloor(b geometry.Bounds, floor int) models.Entity3D {
	return s.slab(b, floor, s.pricing.FloorPerSquareMeter)
}

func (s *Synthesizer) slab(b geometry.Bounds, floor int, rate float64) models.Entity3D {
	width, depth := b.Width(), b.Depth()
	center := b.Center()

	return models.Entity3D{
		ID:         uuid.New(),
		Kind:       models.KindFloorSlab,
		Position:   models.Vec3{X: center.X, Y: s.floors.HeightOf(floor) / 2, Z: center.Z},
		Scale:      models.Vec3{X: width, Y: s.thickness, Z: depth},
		Price:      width * depth * rate,
		Label:      fmt.Sprintf("Sol (%s)", s.floors.Describe(floor)),
		FloorIndex: floor,
	}
}

// ============================================================
// Rooms
// ============================================================

// Room is the output of a rectangle: one slab and four walls.
type Room struct {
	Slab  models.Entity3D    `json:"slab"`
	Walls [4]models.Entity3D `json:"walls"`
	Edges [4]models.Segment  `json:"edges"`
}

// Entities lists the slab first, then the walls.
func (r Room) Entities() []models.Entity3D {
	out := make([]models.Entity3D, 0, 5)
	out = append(out, r.Slab)
	return append(out, r.Walls[:]...)
}

// RoomEdges returns the front, right, back and left edges of the rectangle.
func RoomEdges(anchor, opposite models.Point2) [4]models.Segment {
	c := geometry.RectangleCorners(anchor, opposite)
	return [4]models.Segment{
		models.NewSegment(c[0], c[1]),
		models.NewSegment(c[1], c[2]),
		models.NewSegment(c[2], c[3]),
		models.NewSegment(c[3], c[0]),
	}
}

// RoomFromRectangle builds a slab and four walls. Zero-area rectangles are not
// rejected; they produce degenerate entities.
func (s *Synthesizer) RoomFromRectangle(anchor, opposite models.Point2, floor int) Room {
	b := geometry.BoundsOf(anchor, opposite)
	room := Room{
		Slab:  s.FloorSlabFromBounds(b.MinX, b.MaxX, b.MinZ, b.MaxZ, floor),
		Edges: RoomEdges(anchor, opposite),
	}
	for i, edge := range room.Edges {
		room.Walls[i] = s.WallFromSegment(edge, floor)
	}
	return room
}

// ============================================================
// Resizing
// ============================================================

// Rescale applies a new scale and reprices by area: walls at the wall area rate,
// slabs at the general floor rate.
func (s *Synthesizer) Rescale(e models.Entity3D, scale models.Vec3) models.Entity3D {
	e.Scale = scale
	switch e.Kind {
	case models.KindWall:
		e.Price = scale.X * scale.Y * s.pricing.WallPerSquareMeter
	case models.KindFloorSlab:
		e.Price = scale.X * scale.Z * s.pricing.FloorPerSquareMeter
	}
	return e
}

// Degenerate reports entities with no extent along their footprint.
func Degenerate(e models.Entity3D) bool {
	if e.Kind == models.KindWall {
		return e.Scale.X == 0
	}
	return e.Scale.X == 0 || e.Scale.Z == 0
}
