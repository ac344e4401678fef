package planview

import (
	"math"
	"strings"
	"testing"

	"blueprint-editor/internal/blueprint/floors"
	"blueprint-editor/internal/blueprint/models"
	"blueprint-editor/internal/blueprint/parser"
	"blueprint-editor/internal/blueprint/synth"

	"github.com/stretchr/testify/require"
)

func room(t *testing.T, floor int) []models.Entity3D {
	t.Helper()
	reg := floors.NewRegistry(floors.DefaultStoryHeight)
	s := synth.New(reg, synth.DefaultPricing(), synth.DefaultThickness)
	return s.RoomFromRectangle(models.Point2{}, models.Point2{X: 5, Z: 3}, floor).Entities()
}

func TestRender(t *testing.T) {
	t.Run("Exported plan imports back", func(t *testing.T) {
		svg, err := NewRenderer().Render(Scene{Entities: room(t, 0)})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(svg, `<?xml`))
		require.Equal(t, 4, strings.Count(svg, `id="Wall_`))
		require.Equal(t, 1, strings.Count(svg, `id="Room_`))

		plan, err := parser.NewImporter().Import(strings.NewReader(svg))
		require.NoError(t, err)
		require.Len(t, plan.Walls, 4)

		total := 0.0
		for _, w := range plan.Walls {
			total += w.Length
		}
		require.InDelta(t, 16.0, total, 1e-6)

		require.Len(t, plan.Rooms, 1)
		require.InDelta(t, 5.0, plan.Rooms[0].Width(), 1e-6)
		require.InDelta(t, 3.0, plan.Rooms[0].Depth(), 1e-6)
	})

	t.Run("Only the requested floor is drawn", func(t *testing.T) {
		entities := append(room(t, 0), room(t, 1)[:2]...)
		svg, err := NewRenderer().Render(Scene{Entities: entities, Floor: 1})
		require.NoError(t, err)
		require.Equal(t, 1, strings.Count(svg, `id="Wall_`))
		require.Equal(t, 1, strings.Count(svg, `id="Room_`))

		_, err = NewRenderer().Render(Scene{Entities: entities, Floor: 4})
		require.ErrorIs(t, err, ErrEmptyPlan)
	})

	t.Run("Draft segments are dashed lines", func(t *testing.T) {
		seg := models.NewSegment(models.Point2{}, models.Point2{X: 1, Z: 1})
		svg, err := NewRenderer().Render(Scene{Draft: []models.Segment{seg}})
		require.NoError(t, err)
		require.Contains(t, svg, `<line id="Draft_1" x1="0" y1="0" x2="100" y2="100"`)
		require.Contains(t, svg, `viewBox="-50 -50 200 200"`)
	})
}

func TestRectanglePoints(t *testing.T) {
	pts := rectanglePoints(0, 0, 4, 2, 0)
	require.Equal(t, point{-2, -1}, pts[0])
	require.Equal(t, point{2, 1}, pts[2])

	turned := rectanglePoints(0, 0, 4, 2, math.Pi/2)
	require.InDelta(t, 1.0, turned[0].x, 1e-12)
	require.InDelta(t, -2.0, turned[0].y, 1e-12)
}

func TestFloors(t *testing.T) {
	entities := append(room(t, 2), room(t, 0)...)
	require.Equal(t, []int{0, 2}, Floors(entities))
	require.Empty(t, Floors(nil))
}
