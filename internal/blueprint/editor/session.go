// Package editor wires the drafting core into one editing session: the floor
// registry, the synthesizer, the camera controller, the draft and the collections.
//
// Drafting only exists while the camera is in the 2D blueprint view. A click or a
// move outside of it, or one that missed the ground plane, is ignored.
package editor

import (
	"errors"
	"fmt"
	"math"

	"blueprint-editor/internal/blueprint/draft"
	"blueprint-editor/internal/blueprint/floors"
	"blueprint-editor/internal/blueprint/geometry"
	"blueprint-editor/internal/blueprint/models"
	"blueprint-editor/internal/blueprint/navigation"
	"blueprint-editor/internal/blueprint/quote"
	"blueprint-editor/internal/blueprint/snapping"
	"blueprint-editor/internal/blueprint/synth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEntityNotFound   = errors.New("entity not found")
	ErrDraftingDisabled = errors.New("drafting is only available in the blueprint view")
	ErrOutOfRange       = errors.New("value out of range")
)

// Session is one editing workspace. It is not safe for concurrent use.
type Session struct {
	ID uuid.UUID

	log     *zap.Logger
	tuning  Tuning
	floors  *floors.Registry
	synth   *synth.Synthesizer
	nav     *navigation.Controller
	objects *quote.Collections
	preview *PreviewLayer

	draft *draft.Machine
	tool  models.DraftMode
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithRenderFactory(f RenderFactory) Option {
	return func(s *Session) {
		s.preview = NewPreviewLayer(f, s.synth)
	}
}

func WithID(id uuid.UUID) Option {
	return func(s *Session) {
		s.ID = id
	}
}

func NewSession(tuning Tuning, opts ...Option) *Session {
	reg := floors.NewRegistry(tuning.StoryHeight)
	syn := synth.New(reg, tuning.Pricing, tuning.Thickness)

	s := &Session{
		ID:      uuid.New(),
		log:     zap.NewNop(),
		tuning:  tuning,
		floors:  reg,
		synth:   syn,
		nav:     navigation.NewController(tuning.Camera),
		objects: quote.NewCollections(),
		preview: NewPreviewLayer(nil, syn),
		tool:    models.ModeWallChain,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("session", s.ID.String()))
	return s
}

func (s *Session) Tuning() Tuning                     { return s.tuning }
func (s *Session) Objects() *quote.Collections        { return s.objects }
func (s *Session) Navigation() *navigation.Controller { return s.nav }
func (s *Session) Floors() *floors.Registry           { return s.floors }
func (s *Session) Synthesizer() *synth.Synthesizer    { return s.synth }
func (s *Session) PreviewLayer() *PreviewLayer        { return s.preview }

// ============================================================
// Blueprint view
// ============================================================

// EnterBlueprint switches the camera to the top-down view and starts an empty draft.
func (s *Session) EnterBlueprint() {
	s.nav.EnterOrthographic2D()
	if s.draft != nil {
		return
	}
	s.draft = draft.New(s.synth, s.floors,
		draft.WithSnapping(snapping.NewEngine(s.tuning.CommitTolerance, s.tuning.PreviewTolerance)),
		draft.WithNearTolerance(s.tuning.NearTolerance),
	)
	if s.tool != models.ModeWallChain {
		_ = s.draft.SetMode(s.tool)
	}
	s.log.Debug("blueprint view entered", zap.Stringer("tool", s.tool))
}

// ExitBlueprint discards the draft and returns to the orbit camera.
func (s *Session) ExitBlueprint() {
	if s.draft != nil {
		s.draft.Cancel()
		s.draft = nil
	}
	s.preview.Clear()
	s.nav.ExitOrthographic2D()
	s.log.Debug("blueprint view left")
}

// SetTool selects the wall-chain or rectangle tool.
func (s *Session) SetTool(tool models.DraftMode) error {
	if s.draft == nil {
		return ErrDraftingDisabled
	}
	if err := s.draft.SetMode(tool); err != nil {
		return err
	}
	s.tool = tool
	s.preview.Clear()
	return nil
}

// Click forwards a ground-plane hit to the draft. A nil point is a raycast miss.
func (s *Session) Click(p *models.Point2) draft.Result {
	if p == nil || !s.drafting() {
		return draft.Result{Outcome: draft.OutcomeIgnored}
	}
	res := s.draft.OnClick(*p)
	s.commit(res)
	s.refreshPreview()
	return res
}

// Move updates the live preview.
func (s *Session) Move(p *models.Point2) bool {
	if p == nil || !s.drafting() {
		return false
	}
	s.draft.OnMove(*p)
	s.refreshPreview()
	return true
}

// Finish turns the committed chain into walls.
func (s *Session) Finish() draft.Result {
	if !s.drafting() {
		return draft.Result{Outcome: draft.OutcomeIgnored}
	}
	res := s.draft.OnFinish()
	s.commit(res)
	s.refreshPreview()
	return res
}

func (s *Session) EndChain() draft.Result {
	if !s.drafting() {
		return draft.Result{Outcome: draft.OutcomeIgnored}
	}
	res := s.draft.EndChain()
	s.refreshPreview()
	return res
}

func (s *Session) Cancel() draft.Result {
	if !s.drafting() {
		return draft.Result{Outcome: draft.OutcomeIgnored}
	}
	res := s.draft.Cancel()
	s.preview.Clear()
	return res
}

// Draft returns the current draft. Outside the blueprint view it is empty.
func (s *Session) Draft() draft.State {
	if s.draft == nil {
		return draft.State{Tool: s.tool, Mode: models.ModeIdle}
	}
	return s.draft.State()
}

func (s *Session) Preview() draft.Preview {
	if s.draft == nil {
		return draft.Preview{}
	}
	return s.draft.Preview()
}

func (s *Session) drafting() bool {
	return s.draft != nil && s.nav.AllowsDrafting()
}

func (s *Session) refreshPreview() {
	s.preview.Refresh(s.draft.Preview(), s.floors.Current())
}

// commit hands produced entities to the collections in one step.
func (s *Session) commit(res draft.Result) {
	if len(res.Entities) == 0 {
		return
	}
	for _, e := range res.Entities {
		if synth.Degenerate(e) {
			s.log.Warn("degenerate entity synthesized",
				zap.String("id", e.ID.String()),
				zap.String("kind", string(e.Kind)),
			)
		}
	}
	s.objects.Append(res.Entities...)
	s.log.Info("entities committed",
		zap.Stringer("outcome", res.Outcome),
		zap.Int("count", len(res.Entities)),
		zap.Int("floor", s.floors.Current()),
	)
}

// ============================================================
// Camera
// ============================================================

// HandleKey forwards a key press to the camera controller.
func (s *Session) HandleKey(key string) bool {
	return s.nav.HandleKey(key)
}

func (s *Session) Navigate(cmd navigation.Command) bool {
	return s.nav.Apply(cmd)
}

func (s *Session) Camera() navigation.Camera {
	return s.nav.Camera()
}

// Focus aims the camera at an entity. Leaving the blueprint view drops the draft.
func (s *Session) Focus(id uuid.UUID) error {
	e, ok := s.objects.Get(id)
	if !ok {
		return fmt.Errorf("focus %s: %w", id, ErrEntityNotFound)
	}
	if s.draft != nil {
		s.draft.Cancel()
		s.draft = nil
		s.preview.Clear()
	}
	s.nav.EnterObjectFocus(e.Position, e.Scale)
	return nil
}

func (s *Session) Unfocus() bool {
	return s.nav.ExitObjectFocus()
}

// AdvanceFloor moves drafting one story up, up to floors.MaxFloors stories.
func (s *Session) AdvanceFloor() (int, error) {
	if s.floors.Current()+1 >= floors.MaxFloors {
		return s.floors.Current(), fmt.Errorf("advance floor: %d floors max: %w", floors.MaxFloors, ErrOutOfRange)
	}
	idx := s.floors.Advance()
	s.nav.SetFloorHeight(s.floors.HeightOf(idx))
	s.log.Info("floor advanced", zap.Int("floor", idx))
	return idx, nil
}

// ============================================================
// Collections
// ============================================================

func (s *Session) Remove(id uuid.UUID) error {
	if !s.objects.Remove(id) {
		return fmt.Errorf("remove %s: %w", id, ErrEntityNotFound)
	}
	return nil
}

// Rescale changes an entity's size and reprices it. Scale components must be
// finite and non-negative, and the new price must stay finite.
func (s *Session) Rescale(id uuid.UUID, scale models.Vec3) (models.Entity3D, error) {
	for _, v := range [...]float64{scale.X, scale.Y, scale.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return models.Entity3D{}, fmt.Errorf("rescale %s: scale %v: %w", id, v, ErrOutOfRange)
		}
	}
	current, ok := s.objects.Get(id)
	if !ok {
		return models.Entity3D{}, fmt.Errorf("rescale %s: %w", id, ErrEntityNotFound)
	}
	if price := s.synth.Rescale(current, scale).Price; !finite(price) {
		return models.Entity3D{}, fmt.Errorf("rescale %s: price overflows: %w", id, ErrOutOfRange)
	}

	e, ok := s.objects.Update(id, func(e models.Entity3D) models.Entity3D {
		return s.synth.Rescale(e, scale)
	})
	if !ok {
		return models.Entity3D{}, fmt.Errorf("rescale %s: %w", id, ErrEntityNotFound)
	}
	return e, nil
}

// AddFloor places a standalone floor covering the rectangle a-b on the current floor.
func (s *Session) AddFloor(a, b models.Point2) (models.Entity3D, error) {
	e := s.synth.StandaloneFloor(geometry.BoundsOf(a, b), s.floors.Current())
	if !finite(e.Price) || !finite(e.Position.X) || !finite(e.Position.Z) {
		return models.Entity3D{}, fmt.Errorf("add floor %s-%s: %w", a, b, ErrOutOfRange)
	}
	s.objects.Append(e)
	return e, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ImportPlan builds walls from imported centerlines and a slab for each room
// outline, all on the current floor.
func (s *Session) ImportPlan(walls []models.Segment, rooms []geometry.Bounds) []models.Entity3D {
	floor := s.floors.Current()
	entities := make([]models.Entity3D, 0, len(rooms)+len(walls))
	for _, b := range rooms {
		entities = append(entities, s.synth.FloorSlabFromBounds(b.MinX, b.MaxX, b.MinZ, b.MaxZ, floor))
	}
	entities = append(entities, s.synth.WallsFromSegments(walls, floor)...)
	s.commit(draft.Result{Outcome: draft.OutcomeWallsBuilt, Segments: walls, Entities: entities})
	return entities
}

// Restore replaces the session content with previously saved entities. The floor
// registry is advanced so every restored floor exists. Snapshots referencing a
// floor outside [0, floors.MaxFloors) are rejected and leave the session untouched.
func (s *Session) Restore(entities []models.Entity3D, currentFloor int) error {
	top := currentFloor
	for _, e := range entities {
		if e.FloorIndex < 0 {
			return fmt.Errorf("restore: entity %s on floor %d: %w", e.ID, e.FloorIndex, ErrOutOfRange)
		}
		if e.FloorIndex > top {
			top = e.FloorIndex
		}
	}
	if currentFloor < 0 || top >= floors.MaxFloors {
		return fmt.Errorf("restore: floor %d: %w", top, ErrOutOfRange)
	}

	for s.floors.Current() < top {
		s.floors.Advance()
	}
	s.objects.Replace(entities)
	s.nav.SetFloorHeight(s.floors.HeightOf(s.floors.Current()))
	return nil
}
