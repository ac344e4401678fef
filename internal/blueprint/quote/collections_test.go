package quote

import (
	"sync"
	"testing"

	"blueprint-editor/internal/blueprint/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func wall(price float64) models.Entity3D {
	return models.Entity3D{
		ID:       uuid.New(),
		Kind:     models.KindWall,
		Position: models.Vec3{X: 5, Y: 3},
		Scale:    models.Vec3{X: 10, Y: 6, Z: 0.2},
		Price:    price,
		Label:    "Mur (Rez-de-chaussée)",
	}
}

func contains(s Snapshot, id uuid.UUID) (bool, bool) {
	inObjects, inQuote := false, false
	for _, o := range s.Objects {
		if o.ID == id {
			inObjects = true
		}
	}
	for _, q := range s.Quote {
		if q.ID == id {
			inQuote = true
		}
	}
	return inObjects, inQuote
}

func TestCollections(t *testing.T) {
	t.Run("Append then remove keeps lists in lockstep", func(t *testing.T) {
		c := NewCollections()
		e := wall(100)
		require.Equal(t, 1, c.Append(e))

		obj, q := contains(c.Snapshot(), e.ID)
		require.True(t, obj)
		require.True(t, q)

		require.True(t, c.Remove(e.ID))
		obj, q = contains(c.Snapshot(), e.ID)
		require.False(t, obj)
		require.False(t, q)
		require.False(t, c.Remove(e.ID))
	})

	t.Run("Duplicate ids are skipped", func(t *testing.T) {
		c := NewCollections()
		e := wall(10)
		require.Equal(t, 1, c.Append(e, e))
		require.Equal(t, 0, c.Append(e))
		require.Equal(t, 1, c.Len())
	})

	t.Run("Total sums prices", func(t *testing.T) {
		c := NewCollections()
		c.Append(wall(100), wall(50))
		require.Equal(t, 150.0, c.Total())
		require.Equal(t, 150.0, c.Snapshot().Total)
	})

	t.Run("Update keeps the id", func(t *testing.T) {
		c := NewCollections()
		e := wall(100)
		c.Append(e)
		got, ok := c.Update(e.ID, func(x models.Entity3D) models.Entity3D {
			x.ID = uuid.New()
			x.Price = 42
			return x
		})
		require.True(t, ok)
		require.Equal(t, e.ID, got.ID)

		stored, ok := c.Get(e.ID)
		require.True(t, ok)
		require.Equal(t, 42.0, stored.Price)

		_, ok = c.Update(uuid.New(), func(x models.Entity3D) models.Entity3D { return x })
		require.False(t, ok)
	})

	t.Run("Entities keep insertion order", func(t *testing.T) {
		c := NewCollections()
		a, b, d := wall(1), wall(2), wall(3)
		c.Append(a, b, d)
		c.Remove(b.ID)
		got := c.Entities()
		require.Len(t, got, 2)
		require.Equal(t, a.ID, got[0].ID)
		require.Equal(t, d.ID, got[1].ID)
	})

	t.Run("Replace swaps content", func(t *testing.T) {
		c := NewCollections()
		c.Append(wall(1))
		e := wall(7)
		c.Replace([]models.Entity3D{e})
		require.Equal(t, 1, c.Len())
		require.Equal(t, 7.0, c.Total())
	})
}

func TestObservers(t *testing.T) {
	t.Run("Observers see both lists updated together", func(t *testing.T) {
		c := NewCollections()
		var seen []Snapshot
		c.Subscribe(func(s Snapshot) {
			require.Equal(t, len(s.Objects), len(s.Quote))
			seen = append(seen, s)
		})

		e := wall(10)
		c.Append(e, wall(20))
		c.Remove(e.ID)
		c.Remove(e.ID)

		require.Len(t, seen, 2)
		require.Len(t, seen[0].Objects, 2)
		require.Len(t, seen[1].Objects, 1)
	})

	t.Run("Concurrent readers never see a half applied commit", func(t *testing.T) {
		c := NewCollections()
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				e := wall(1)
				c.Append(e)
				c.Remove(e.ID)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s := c.Snapshot()
				if len(s.Objects) != len(s.Quote) {
					t.Errorf("objects %d != quote %d", len(s.Objects), len(s.Quote))
					return
				}
			}
		}()
		wg.Wait()
	})
}

func TestMapping(t *testing.T) {
	e := wall(100)
	e.FloorIndex = 2
	e.Faces = e.Faces.Set(models.FaceFront, "brick")

	obj := ObjectOf(e)
	require.Equal(t, "primitive:wall", obj.URL)
	require.Equal(t, e.Label, obj.Details)
	require.Equal(t, models.KindWall, obj.Type)
	require.Empty(t, obj.Texture)

	item := ItemOf(e)
	require.Equal(t, 2, item.FloorIndex)
	require.Equal(t, 100.0, item.Price)

	for f := models.FaceRight; f <= models.FaceBack; f++ {
		e.Faces = e.Faces.Set(f, "plaster")
	}
	require.Equal(t, "plaster", ObjectOf(e).Texture)
}
