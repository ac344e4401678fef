package floors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("Starts on ground floor", func(t *testing.T) {
		r := NewRegistry(0)
		require.Equal(t, 0, r.Current())
		require.Equal(t, DefaultStoryHeight, r.StoryHeight())
		require.Equal(t, 0.0, r.HeightOf(r.Current()))
		require.Equal(t, []Level{{Index: 0, BaseHeight: 0}}, r.Levels())
	})

	t.Run("Height increases by one story per advance", func(t *testing.T) {
		r := NewRegistry(6)
		prev := r.HeightOf(r.Current())
		for i := 1; i <= 5; i++ {
			idx := r.Advance()
			require.Equal(t, i, idx)
			h := r.HeightOf(idx)
			require.Equal(t, prev+6, h)
			require.Equal(t, h, r.WallYPosition(idx))
			prev = h
		}
		require.Len(t, r.Levels(), 6)
		require.Equal(t, Level{Index: 5, BaseHeight: 30}, r.Levels()[5])
	})

	t.Run("Levels is a copy", func(t *testing.T) {
		r := NewRegistry(3)
		levels := r.Levels()
		levels[0].BaseHeight = 99
		require.Equal(t, 0.0, r.Levels()[0].BaseHeight)
	})
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "Rez-de-chaussée", Describe(0))
	require.Equal(t, "Étage 2", NewRegistry(6).Describe(2))
}
