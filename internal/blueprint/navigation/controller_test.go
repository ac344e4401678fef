package navigation

import (
	"math"
	"testing"

	"blueprint-editor/internal/blueprint/models"

	"github.com/stretchr/testify/require"
)

func dist(a, b models.Vec3) float64 {
	return math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y) + (a.Z-b.Z)*(a.Z-b.Z))
}

func TestModeTransitions(t *testing.T) {
	t.Run("Starts in orbit", func(t *testing.T) {
		c := NewController(DefaultSettings())
		require.Equal(t, models.CameraOrbit, c.Mode())
		require.Equal(t, models.SubModeOrbit, c.SubMode())
		require.False(t, c.AllowsDrafting())
	})

	t.Run("v toggles first person", func(t *testing.T) {
		c := NewController(DefaultSettings())
		require.True(t, c.HandleKey("v"))
		require.Equal(t, models.CameraFirstPerson, c.Mode())
		require.True(t, c.HandleKey("V"))
		require.Equal(t, models.CameraOrbit, c.Mode())
	})

	t.Run("n toggles sub mode only in orbit", func(t *testing.T) {
		c := NewController(DefaultSettings())
		require.True(t, c.HandleKey("N"))
		require.Equal(t, models.SubModePanMove, c.SubMode())

		c.EnterOrthographic2D()
		require.False(t, c.HandleKey("n"))
		require.Equal(t, models.SubModePanMove, c.SubMode())
	})

	t.Run("Unknown keys are ignored", func(t *testing.T) {
		c := NewController(DefaultSettings())
		require.False(t, c.HandleKey("x"))
		require.Equal(t, models.CameraOrbit, c.Mode())
	})

	t.Run("Entering 2D drops first person", func(t *testing.T) {
		c := NewController(DefaultSettings())
		c.ToggleFirstPerson()
		c.EnterOrthographic2D()
		require.Equal(t, models.CameraOrthographic2D, c.Mode())
		require.False(t, c.FirstPerson())
		require.True(t, c.AllowsDrafting())

		require.False(t, c.ToggleFirstPerson())
		require.Equal(t, models.CameraOrthographic2D, c.Mode())

		require.True(t, c.ExitOrthographic2D())
		require.Equal(t, models.CameraOrbit, c.Mode())
		require.False(t, c.ExitOrthographic2D())
	})

	t.Run("Focus drops first person", func(t *testing.T) {
		c := NewController(DefaultSettings())
		c.ToggleFirstPerson()
		c.EnterObjectFocus(models.Vec3{X: 1, Y: 3, Z: 2}, models.Vec3{X: 4, Y: 6, Z: 0.2})
		require.Equal(t, models.CameraObjectFocus, c.Mode())
		require.False(t, c.ToggleFirstPerson())
		require.False(t, c.AllowsDrafting())
		require.True(t, c.ExitObjectFocus())
		require.Equal(t, models.CameraOrbit, c.Mode())
	})
}

func TestCameraPlacement(t *testing.T) {
	t.Run("Orbit keeps its distance while rotating", func(t *testing.T) {
		c := NewController(DefaultSettings())
		before := c.Camera()
		require.InDelta(t, 30.0, dist(before.Position, before.Target), 1e-9)

		require.True(t, c.Apply(RotateLeft))
		after := c.Camera()
		require.InDelta(t, 30.0, dist(after.Position, after.Target), 1e-9)
		require.NotEqual(t, before.Position, after.Position)
	})

	t.Run("Orbit elevation is clamped", func(t *testing.T) {
		c := NewController(DefaultSettings())
		for i := 0; i < 100; i++ {
			c.Apply(Up)
		}
		cam := c.Camera()
		require.InDelta(t, 30*math.Sin(math.Pi/2-0.1), cam.Position.Y, 1e-9)
	})

	t.Run("Orbit zoom respects minimum distance", func(t *testing.T) {
		c := NewController(DefaultSettings())
		for i := 0; i < 200; i++ {
			c.Apply(ZoomIn)
		}
		cam := c.Camera()
		require.InDelta(t, 0.5, dist(cam.Position, cam.Target), 1e-9)
	})

	t.Run("Pan moves the target", func(t *testing.T) {
		c := NewController(DefaultSettings())
		c.ToggleSubMode()
		require.True(t, c.Apply(Up))
		require.InDelta(t, 1.0, c.Camera().Target.Y, 1e-9)
	})

	t.Run("Focus distance follows largest scale component", func(t *testing.T) {
		c := NewController(DefaultSettings())
		center := models.Vec3{X: 1, Y: 3, Z: 2}
		c.EnterObjectFocus(center, models.Vec3{X: 4, Y: 6, Z: 0.2})
		require.InDelta(t, 15.0, c.FocusDistance(), 1e-9)

		cam := c.Camera()
		require.Equal(t, center, cam.Target)
		require.InDelta(t, 15.0, dist(cam.Position, cam.Target), 1e-9)
	})

	t.Run("Focus distance has a floor", func(t *testing.T) {
		c := NewController(DefaultSettings())
		c.EnterObjectFocus(models.Vec3{}, models.Vec3{X: 0.01, Y: 0.01, Z: 0.01})
		require.InDelta(t, 0.5, c.FocusDistance(), 1e-9)
	})

	t.Run("First person eye sits above the active floor", func(t *testing.T) {
		c := NewController(DefaultSettings())
		c.SetFloorHeight(6)
		c.ToggleFirstPerson()
		cam := c.Camera()
		require.InDelta(t, 7.7, cam.Position.Y, 1e-9)

		require.True(t, c.Apply(Forward))
		moved := c.Camera()
		require.InDelta(t, 1.0, dist(cam.Position, moved.Position), 1e-9)
		require.InDelta(t, 7.7, moved.Position.Y, 1e-9)
		require.False(t, c.Apply(ZoomIn))
	})

	t.Run("2D is top down with zoom dependent fov", func(t *testing.T) {
		c := NewController(DefaultSettings())
		c.EnterOrthographic2D()
		cam := c.Camera()
		require.Equal(t, 20.0, cam.FOV)
		require.Equal(t, cam.Position.X, cam.Target.X)
		require.Equal(t, cam.Position.Z, cam.Target.Z)
		require.InDelta(t, 100.0, cam.Position.Y-cam.Target.Y, 1e-9)

		for i := 0; i < 100; i++ {
			c.Apply(ZoomIn)
		}
		cam = c.Camera()
		require.Equal(t, 10.0, cam.Zoom)
		require.InDelta(t, 2.0, cam.FOV, 1e-9)

		for i := 0; i < 200; i++ {
			c.Apply(ZoomOut)
		}
		require.Equal(t, 0.25, c.Camera().Zoom)
	})

	t.Run("2D pans the view centre", func(t *testing.T) {
		c := NewController(DefaultSettings())
		c.EnterOrthographic2D()
		require.True(t, c.Apply(Right))
		require.InDelta(t, 1.0, c.Camera().Target.X, 1e-9)
		require.False(t, c.Apply(RotateLeft))
	})
}

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand("Zoom-In")
	require.NoError(t, err)
	require.Equal(t, ZoomIn, cmd)

	_, err = ParseCommand("jump")
	require.Error(t, err)
}
