// Package navigation selects how the camera behaves and which pointer interactions
// are live. Exactly one CameraMode is active; drafting is only possible in the
// orthographic top-down view.
package navigation

import (
	"math"

	"blueprint-editor/internal/blueprint/models"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is the placement the renderer should apply.
type Camera struct {
	Position models.Vec3 `json:"position"`
	Target   models.Vec3 `json:"target"`
	Up       models.Vec3 `json:"up"`
	FOV      float64     `json:"fov"`
	Zoom     float64     `json:"zoom"`
}

// orbit is a camera circling a target, as spherical coordinates.
type orbit struct {
	target    r3.Vec
	distance  float64
	azimuth   float64
	elevation float64
}

func (o orbit) position() r3.Vec {
	offset := r3.Vec{
		X: o.distance * math.Cos(o.elevation) * math.Sin(o.azimuth),
		Y: o.distance * math.Sin(o.elevation),
		Z: o.distance * math.Cos(o.elevation) * math.Cos(o.azimuth),
	}
	return r3.Add(o.target, offset)
}

// Controller is the camera mode state machine.
type Controller struct {
	settings Settings

	mode models.CameraMode
	sub  models.NavigationSubMode

	view  orbit
	focus orbit

	eye     r3.Vec
	heading float64

	center      models.Point2
	zoom        float64
	floorHeight float64
}

func NewController(settings Settings) *Controller {
	s := settings.withDefaults()
	return &Controller{
		settings: s,
		mode:     models.CameraOrbit,
		sub:      models.SubModeOrbit,
		view: orbit{
			distance:  s.OrbitDistance,
			azimuth:   radians(s.OrbitAzimuth),
			elevation: radians(s.OrbitElevation),
		},
		zoom: 1,
	}
}

func (c *Controller) Mode() models.CameraMode           { return c.mode }
func (c *Controller) SubMode() models.NavigationSubMode { return c.sub }
func (c *Controller) FirstPerson() bool                 { return c.mode == models.CameraFirstPerson }

// AllowsDrafting reports whether blueprint clicks should reach the draft.
func (c *Controller) AllowsDrafting() bool {
	return c.mode == models.CameraOrthographic2D
}

// SetFloorHeight moves the first-person eye level to the active floor.
func (c *Controller) SetFloorHeight(h float64) {
	c.floorHeight = h
	c.eye.Y = h + c.settings.EyeHeight
}

// ============================================================
// Mode transitions
// ============================================================

// ToggleFirstPerson switches between Orbit and FirstPerson. It does nothing while
// an object is focused or the 2D view is active.
func (c *Controller) ToggleFirstPerson() bool {
	switch c.mode {
	case models.CameraOrbit:
		c.eye = r3.Vec{X: c.view.target.X, Y: c.floorHeight + c.settings.EyeHeight, Z: c.view.target.Z}
		c.heading = math.Atan2(-math.Cos(c.view.azimuth), -math.Sin(c.view.azimuth))
		c.mode = models.CameraFirstPerson
		return true
	case models.CameraFirstPerson:
		c.mode = models.CameraOrbit
		return true
	}
	return false
}

// ToggleSubMode switches orbit and pan-move navigation. Only meaningful in Orbit.
func (c *Controller) ToggleSubMode() bool {
	if c.mode != models.CameraOrbit {
		return false
	}
	if c.sub == models.SubModeOrbit {
		c.sub = models.SubModePanMove
	} else {
		c.sub = models.SubModeOrbit
	}
	return true
}

// EnterObjectFocus aims the camera at an entity. First-person is dropped immediately.
func (c *Controller) EnterObjectFocus(center, scale models.Vec3) {
	distance := scale.MaxComponent() * c.settings.FocusDistanceMult
	if distance < c.settings.MinDistance {
		distance = c.settings.MinDistance
	}
	c.focus = orbit{
		target:    r3.Vec{X: center.X, Y: center.Y, Z: center.Z},
		distance:  distance,
		azimuth:   c.view.azimuth,
		elevation: c.view.elevation,
	}
	c.mode = models.CameraObjectFocus
}

func (c *Controller) ExitObjectFocus() bool {
	if c.mode != models.CameraObjectFocus {
		return false
	}
	c.mode = models.CameraOrbit
	return true
}

// EnterOrthographic2D switches to the top-down blueprint view. First-person is dropped immediately.
func (c *Controller) EnterOrthographic2D() {
	if c.mode != models.CameraOrthographic2D {
		c.center = models.Point2{X: c.view.target.X, Z: c.view.target.Z}
	}
	c.mode = models.CameraOrthographic2D
}

func (c *Controller) ExitOrthographic2D() bool {
	if c.mode != models.CameraOrthographic2D {
		return false
	}
	c.mode = models.CameraOrbit
	return true
}

// HandleKey maps v/V to first-person and n/N to the navigation sub-mode.
// It reports whether a transition happened.
func (c *Controller) HandleKey(key string) bool {
	switch key {
	case "v", "V":
		return c.ToggleFirstPerson()
	case "n", "N":
		return c.ToggleSubMode()
	}
	return false
}

// ============================================================
// Commands
// ============================================================

// Apply moves the camera according to the active mode. It reports whether the
// command means anything in that mode.
func (c *Controller) Apply(cmd Command) bool {
	switch c.mode {
	case models.CameraOrthographic2D:
		return c.apply2D(cmd)
	case models.CameraFirstPerson:
		return c.applyFirstPerson(cmd)
	case models.CameraObjectFocus:
		return c.applyOrbit(&c.focus, cmd)
	}
	if c.sub == models.SubModePanMove {
		return c.applyPan(cmd)
	}
	return c.applyOrbit(&c.view, cmd)
}

func (c *Controller) applyOrbit(o *orbit, cmd Command) bool {
	step := radians(c.settings.RotateStep)
	switch cmd {
	case Left, RotateLeft:
		o.azimuth -= step
	case Right, RotateRight:
		o.azimuth += step
	case Up, Forward:
		o.elevation = clampElevation(o.elevation + step)
	case Down, Backward:
		o.elevation = clampElevation(o.elevation - step)
	case ZoomIn:
		o.distance = math.Max(o.distance*(1-c.settings.ZoomStep), c.settings.MinDistance)
	case ZoomOut:
		o.distance *= 1 + c.settings.ZoomStep
	default:
		return false
	}
	return true
}

func (c *Controller) applyPan(cmd Command) bool {
	forward, right := groundAxes(c.view.azimuth)
	step := c.settings.MoveStep
	switch cmd {
	case Forward:
		c.view.target = r3.Add(c.view.target, r3.Scale(step, forward))
	case Backward:
		c.view.target = r3.Sub(c.view.target, r3.Scale(step, forward))
	case Right:
		c.view.target = r3.Add(c.view.target, r3.Scale(step, right))
	case Left:
		c.view.target = r3.Sub(c.view.target, r3.Scale(step, right))
	case Up:
		c.view.target.Y += step
	case Down:
		c.view.target.Y -= step
	default:
		return c.applyOrbit(&c.view, cmd)
	}
	return true
}

func (c *Controller) applyFirstPerson(cmd Command) bool {
	forward := r3.Vec{X: math.Cos(c.heading), Z: math.Sin(c.heading)}
	right := r3.Vec{X: -forward.Z, Z: forward.X}
	step := c.settings.MoveStep
	switch cmd {
	case Forward:
		c.eye = r3.Add(c.eye, r3.Scale(step, forward))
	case Backward:
		c.eye = r3.Sub(c.eye, r3.Scale(step, forward))
	case Right:
		c.eye = r3.Add(c.eye, r3.Scale(step, right))
	case Left:
		c.eye = r3.Sub(c.eye, r3.Scale(step, right))
	case RotateLeft:
		c.heading -= radians(c.settings.RotateStep)
	case RotateRight:
		c.heading += radians(c.settings.RotateStep)
	default:
		return false
	}
	return true
}

func (c *Controller) apply2D(cmd Command) bool {
	step := c.settings.MoveStep / c.zoom
	switch cmd {
	case Forward:
		c.center.Z -= step
	case Backward:
		c.center.Z += step
	case Left:
		c.center.X -= step
	case Right:
		c.center.X += step
	case ZoomIn:
		c.zoom = math.Min(c.zoom*(1+c.settings.ZoomStep), c.settings.MaxZoom)
	case ZoomOut:
		c.zoom = math.Max(c.zoom/(1+c.settings.ZoomStep), c.settings.MinZoom)
	default:
		return false
	}
	return true
}

// ============================================================
// Placement
// ============================================================

// Camera returns the placement for the active mode.
func (c *Controller) Camera() Camera {
	up := models.Vec3{Y: 1}
	switch c.mode {
	case models.CameraOrthographic2D:
		return Camera{
			Position: models.Vec3{X: c.center.X, Y: c.floorHeight + c.settings.TopDownHeight, Z: c.center.Z},
			Target:   models.Vec3{X: c.center.X, Y: c.floorHeight, Z: c.center.Z},
			Up:       models.Vec3{Z: -1},
			FOV:      c.settings.TopDownFOV / c.zoom,
			Zoom:     c.zoom,
		}
	case models.CameraFirstPerson:
		look := r3.Add(c.eye, r3.Vec{X: math.Cos(c.heading), Z: math.Sin(c.heading)})
		return Camera{Position: toVec3(c.eye), Target: toVec3(look), Up: up, FOV: c.settings.FOV, Zoom: 1}
	case models.CameraObjectFocus:
		return Camera{Position: toVec3(c.focus.position()), Target: toVec3(c.focus.target), Up: up, FOV: c.settings.FOV, Zoom: 1}
	}
	return Camera{Position: toVec3(c.view.position()), Target: toVec3(c.view.target), Up: up, FOV: c.settings.FOV, Zoom: 1}
}

// FocusDistance is the distance between the camera and the focused object.
func (c *Controller) FocusDistance() float64 {
	return c.focus.distance
}

// groundAxes returns the forward (camera to target) and right directions on the ground.
func groundAxes(azimuth float64) (forward, right r3.Vec) {
	forward = r3.Vec{X: -math.Sin(azimuth), Z: -math.Cos(azimuth)}
	right = r3.Vec{X: -forward.Z, Z: forward.X}
	return forward, right
}

func clampElevation(e float64) float64 {
	maxAngle := math.Pi/2 - 0.1
	return math.Max(-maxAngle, math.Min(maxAngle, e))
}

func toVec3(v r3.Vec) models.Vec3 {
	return models.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
