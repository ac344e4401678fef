package synth

import (
	"math"
	"testing"

	"blueprint-editor/internal/blueprint/floors"
	"blueprint-editor/internal/blueprint/geometry"
	"blueprint-editor/internal/blueprint/models"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var entityOpts = cmp.Options{
	cmpopts.IgnoreFields(models.Entity3D{}, "ID"),
	cmpopts.EquateApprox(0, 1e-9),
}

func newSynth() (*Synthesizer, *floors.Registry) {
	reg := floors.NewRegistry(floors.DefaultStoryHeight)
	return New(reg, DefaultPricing(), DefaultThickness), reg
}

func TestWallFromSegment(t *testing.T) {
	s, _ := newSynth()

	t.Run("Horizontal wall on ground floor", func(t *testing.T) {
		seg := models.NewSegment(models.Point2{X: 0, Z: 0}, models.Point2{X: 10, Z: 0})
		got := s.WallFromSegment(seg, 0)

		want := models.Entity3D{
			Kind:       models.KindWall,
			Position:   models.Vec3{X: 5, Y: 3, Z: 0},
			Rotation:   models.Vec3{},
			Scale:      models.Vec3{X: 10, Y: 6, Z: 0.2},
			Price:      100,
			Label:      "Mur (Rez-de-chaussée)",
			FloorIndex: 0,
		}
		if diff := cmp.Diff(want, got, entityOpts); diff != "" {
			t.Errorf("WallFromSegment mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Vertical wall on upper floor", func(t *testing.T) {
		seg := models.NewSegment(models.Point2{X: 2, Z: 0}, models.Point2{X: 2, Z: 4})
		got := s.WallFromSegment(seg, 2)

		require.InDelta(t, -math.Pi/2, got.Rotation.Y, 1e-12)
		require.InDelta(t, 15.0, got.Position.Y, 1e-12)
		require.InDelta(t, 2.0, got.Position.Z, 1e-12)
		require.Equal(t, "Mur (Étage 2)", got.Label)
		require.Equal(t, 2, got.FloorIndex)
	})

	t.Run("Each wall has its own id", func(t *testing.T) {
		seg := models.NewSegment(models.Point2{}, models.Point2{X: 1})
		walls := s.WallsFromSegments([]models.Segment{seg, seg}, 0)
		require.Len(t, walls, 2)
		require.NotEqual(t, walls[0].ID, walls[1].ID)
	})
}

func TestFloorSlabs(t *testing.T) {
	s, _ := newSynth()

	slab := s.FloorSlabFromBounds(0, 5, 0, 3, 1)
	require.Equal(t, models.KindFloorSlab, slab.Kind)
	require.Equal(t, models.Vec3{X: 2.5, Y: 3, Z: 1.5}, slab.Position)
	require.Equal(t, models.Vec3{X: 5, Y: 0.2, Z: 3}, slab.Scale)
	require.InDelta(t, 15*25.0, slab.Price, 1e-9)

	standalone := s.StandaloneFloor(geometry.Bounds{MinX: 0, MaxX: 5, MinZ: 0, MaxZ: 3}, 1)
	require.InDelta(t, 15*80.0, standalone.Price, 1e-9)
	require.Equal(t, slab.Position, standalone.Position)
}

func TestRoomFromRectangle(t *testing.T) {
	s, _ := newSynth()

	room := s.RoomFromRectangle(models.Point2{X: 0, Z: 0}, models.Point2{X: 5, Z: 3}, 0)

	var perimeter, wallPrice float64
	for _, w := range room.Walls {
		require.Equal(t, models.KindWall, w.Kind)
		perimeter += w.Scale.X
		wallPrice += w.Price
	}
	require.InDelta(t, 16.0, perimeter, 1e-9)
	require.InDelta(t, 160.0, wallPrice, 1e-9)
	require.InDelta(t, 5*3*s.Pricing().RoomSlabPerSquareMeter, room.Slab.Price, 1e-9)

	entities := room.Entities()
	require.Len(t, entities, 5)
	require.Equal(t, room.Slab.ID, entities[0].ID)

	for i, edge := range room.Edges {
		require.Equal(t, edge.Length, room.Walls[i].Scale.X)
	}
}

func TestRoomFromRectangle_ZeroArea(t *testing.T) {
	s, _ := newSynth()

	p := models.Point2{X: 2, Z: 2}
	room := s.RoomFromRectangle(p, p, 0)

	require.True(t, Degenerate(room.Slab))
	require.Equal(t, 0.0, room.Slab.Price)
	for _, w := range room.Walls {
		require.True(t, Degenerate(w))
	}
}

func TestRescale(t *testing.T) {
	s, _ := newSynth()

	wall := s.WallFromSegment(models.NewSegment(models.Point2{}, models.Point2{X: 4}), 0)
	resized := s.Rescale(wall, models.Vec3{X: 5, Y: 3, Z: 0.2})
	require.InDelta(t, 5*3*120.0, resized.Price, 1e-9)
	require.Equal(t, wall.ID, resized.ID)
	require.InDelta(t, 40.0, wall.Price, 1e-9)

	slab := s.FloorSlabFromBounds(0, 2, 0, 2, 0)
	resizedSlab := s.Rescale(slab, models.Vec3{X: 3, Y: 0.2, Z: 4})
	require.InDelta(t, 12*80.0, resizedSlab.Price, 1e-9)
}
