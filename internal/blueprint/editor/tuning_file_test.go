package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTuning(t *testing.T) {
	t.Run("Empty path gives defaults", func(t *testing.T) {
		got, err := LoadTuning("")
		require.NoError(t, err)
		require.Equal(t, DefaultTuning(), got)
	})

	t.Run("Partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
story_height: 3
pricing:
  wall_per_meter: 12.5
camera:
  fov: 60
`), 0o644))

		got, err := LoadTuning(path)
		require.NoError(t, err)

		want := DefaultTuning()
		want.StoryHeight = 3
		want.Pricing.WallPerMeter = 12.5
		want.Camera.FOV = 60
		require.Equal(t, want, got)
	})

	t.Run("Empty document", func(t *testing.T) {
		got, err := ParseTuning(nil)
		require.NoError(t, err)
		require.Equal(t, DefaultTuning(), got)
	})

	t.Run("Rejects unknown fields and bad values", func(t *testing.T) {
		_, err := ParseTuning([]byte("story_hieght: 3\n"))
		require.Error(t, err)

		_, err = ParseTuning([]byte("thickness: 0\n"))
		require.ErrorContains(t, err, "thickness")

		_, err = ParseTuning([]byte("pricing:\n  floor_per_square_meter: -1\n"))
		require.ErrorContains(t, err, "floor_per_square_meter")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
