package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"blueprint-editor/internal/blueprint/models"
	"blueprint-editor/internal/blueprint/quote"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "editor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := New(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.Init(context.Background()))
	// Init is idempotent.
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func sampleRecord(session uuid.UUID, name string) Record {
	c := quote.NewCollections()
	c.Append(models.Entity3D{
		ID:         uuid.New(),
		Kind:       models.KindWall,
		Position:   models.Vec3{X: 5, Y: 3},
		Rotation:   models.Vec3{},
		Scale:      models.Vec3{X: 10, Y: 6, Z: 0.2},
		Price:      100,
		Label:      "Mur (Rez-de-chaussée)",
		FloorIndex: 0,
	})
	return Record{
		SessionID: session,
		Name:      name,
		Floor:     0,
		Entities:  c.Entities(),
		Quote:     c.Snapshot(),
		SavedAt:   time.UnixMilli(1_700_000_000_000),
	}
}

func TestRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Save then load", func(t *testing.T) {
		repo := newRepo(t)
		rec := sampleRecord(uuid.New(), "draft-1")
		require.NoError(t, repo.Save(ctx, rec))

		got, err := repo.Load(ctx, rec.SessionID, "draft-1")
		require.NoError(t, err)
		require.True(t, rec.SavedAt.Equal(got.SavedAt))
		got.SavedAt = rec.SavedAt
		require.Empty(t, cmp.Diff(rec, *got))
	})

	t.Run("Save replaces by name", func(t *testing.T) {
		repo := newRepo(t)
		session := uuid.New()
		require.NoError(t, repo.Save(ctx, sampleRecord(session, "a")))

		empty := Record{SessionID: session, Name: "a", Floor: 2}
		require.NoError(t, repo.Save(ctx, empty))

		got, err := repo.Load(ctx, session, "a")
		require.NoError(t, err)
		require.Equal(t, 2, got.Floor)
		require.Empty(t, got.Entities)
		require.Empty(t, got.Quote.Objects)
	})

	t.Run("Missing record", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Load(ctx, uuid.New(), "nope")
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, repo.Delete(ctx, uuid.New(), "nope"), ErrNotFound)
	})

	t.Run("List and delete", func(t *testing.T) {
		repo := newRepo(t)
		session := uuid.New()
		older := sampleRecord(session, "older")
		newer := sampleRecord(session, "newer")
		newer.SavedAt = older.SavedAt.Add(time.Minute)
		require.NoError(t, repo.Save(ctx, older))
		require.NoError(t, repo.Save(ctx, newer))
		require.NoError(t, repo.Save(ctx, sampleRecord(uuid.New(), "other")))

		list, err := repo.List(ctx, session)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "newer", list[0].Name)
		require.Equal(t, 1, list[0].Objects)
		require.Equal(t, 100.0, list[0].Total)

		require.NoError(t, repo.Delete(ctx, session, "newer"))
		list, err = repo.List(ctx, session)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("Invalid quote is refused", func(t *testing.T) {
		repo := newRepo(t)
		rec := sampleRecord(uuid.New(), "bad")
		rec.Quote.Total = -5
		require.Error(t, repo.Save(ctx, rec))
	})
}
