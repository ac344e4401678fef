// Package draft is the point-and-click sketching state machine of the blueprint view.
//
// A wall chain accumulates points; every click after the first commits one segment,
// snapped when its direction is close to a multiple of 45°. A rectangle takes two
// clicks and is turned into a room right away. Committed chain segments are only
// turned into walls by Finish.
package draft

import (
	"fmt"

	"blueprint-editor/internal/blueprint/geometry"
	"blueprint-editor/internal/blueprint/models"
	"blueprint-editor/internal/blueprint/snapping"
	"blueprint-editor/internal/blueprint/synth"
)

// Builder is the synthesizer surface used on commit.
type Builder interface {
	WallsFromSegments(segs []models.Segment, floor int) []models.Entity3D
	RoomFromRectangle(anchor, opposite models.Point2, floor int) synth.Room
}

// FloorSource gives the floor new entities belong to.
type FloorSource interface {
	Current() int
}

// ============================================================
// Outcomes
// ============================================================

type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeChainStarted
	OutcomeSegmentCommitted
	OutcomeChainTerminated
	OutcomeAnchorSet
	OutcomeRoomBuilt
	OutcomeWallsBuilt
	OutcomeCancelled
)

var outcomeNames = [...]string{
	"ignored",
	"chain-started",
	"segment-committed",
	"chain-terminated",
	"anchor-set",
	"room-built",
	"walls-built",
	"cancelled",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result describes what one operation did. Entities are only set when 3D
// geometry was produced and must be handed to the collections by the caller.
type Result struct {
	Outcome  Outcome           `json:"outcome"`
	Segments []models.Segment  `json:"segments,omitempty"`
	Entities []models.Entity3D `json:"entities,omitempty"`
}

// ============================================================
// State
// ============================================================

// State is a read-only copy of the draft.
type State struct {
	Tool              models.DraftMode `json:"tool"`
	Mode              models.DraftMode `json:"mode"`
	Points            []models.Point2  `json:"points"`
	CommittedSegments []models.Segment `json:"committedSegments"`
	TempPoint         *models.Point2   `json:"tempPoint,omitempty"`
	RectangleAnchor   *models.Point2   `json:"rectangleAnchor,omitempty"`
}

// Machine holds the in-progress sketch.
type Machine struct {
	snap    snapping.Engine
	builder Builder
	floors  FloorSource
	nearTol float64

	tool     models.DraftMode
	mode     models.DraftMode
	points   []models.Point2
	segments []models.Segment
	temp     *models.Point2
	anchor   *models.Point2
}

type Option func(*Machine)

// WithNearTolerance overrides the distance under which a click joins an existing wall.
func WithNearTolerance(tol float64) Option {
	return func(m *Machine) {
		if tol > 0 {
			m.nearTol = tol
		}
	}
}

func WithSnapping(e snapping.Engine) Option {
	return func(m *Machine) {
		m.snap = e
	}
}

func New(builder Builder, floors FloorSource, opts ...Option) *Machine {
	m := &Machine{
		snap:    snapping.Default(),
		builder: builder,
		floors:  floors,
		nearTol: geometry.NearTolerance,
		tool:    models.ModeWallChain,
		mode:    models.ModeIdle,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) Mode() models.DraftMode { return m.mode }
func (m *Machine) Tool() models.DraftMode { return m.tool }

func (m *Machine) State() State {
	s := State{
		Tool:              m.tool,
		Mode:              m.mode,
		Points:            append([]models.Point2{}, m.points...),
		CommittedSegments: append([]models.Segment{}, m.segments...),
	}
	if m.temp != nil {
		p := *m.temp
		s.TempPoint = &p
	}
	if m.anchor != nil {
		p := *m.anchor
		s.RectangleAnchor = &p
	}
	return s
}

// ============================================================
// Transitions
// ============================================================

// SetMode selects the wall-chain or rectangle tool and clears the draft.
func (m *Machine) SetMode(tool models.DraftMode) error {
	if tool != models.ModeWallChain && tool != models.ModeRectangle {
		return fmt.Errorf("draft: %s is not a drawing tool", tool)
	}
	m.reset()
	m.tool = tool
	if tool == models.ModeRectangle {
		m.mode = models.ModeRectangle
	}
	return nil
}

// OnClick handles a click on the ground plane.
func (m *Machine) OnClick(p models.Point2) Result {
	if m.mode == models.ModeRectangle || (m.mode == models.ModeIdle && m.tool == models.ModeRectangle) {
		return m.clickRectangle(p)
	}
	return m.clickChain(p)
}

func (m *Machine) clickRectangle(p models.Point2) Result {
	if m.anchor == nil {
		m.mode = models.ModeRectangle
		m.anchor = &p
		return Result{Outcome: OutcomeAnchorSet}
	}

	room := m.builder.RoomFromRectangle(*m.anchor, p, m.floors.Current())
	m.reset()

	return Result{
		Outcome:  OutcomeRoomBuilt,
		Segments: room.Edges[:],
		Entities: room.Entities(),
	}
}

func (m *Machine) clickChain(p models.Point2) Result {
	if len(m.points) == 0 {
		m.points = []models.Point2{p}
		m.mode = models.ModeWallChain
		return Result{Outcome: OutcomeChainStarted}
	}

	last := m.points[len(m.points)-1]

	// Landing on an existing wall closes the chain there; no new chain starts from the junction.
	if geometry.NearSegment(p, m.segments, m.nearTol) {
		seg := m.commit(last, p)
		m.points = nil
		m.mode = models.ModeIdle
		return Result{Outcome: OutcomeChainTerminated, Segments: []models.Segment{seg}}
	}

	end := m.snap.SnapEndpoint(last, p)
	seg := m.commit(last, end)
	return Result{Outcome: OutcomeSegmentCommitted, Segments: []models.Segment{seg}}
}

func (m *Machine) commit(from, to models.Point2) models.Segment {
	seg := models.NewSegment(from, to)
	m.segments = append(m.segments, seg)
	m.points = append(m.points, to)
	return seg
}

// OnMove records the cursor for the live preview.
func (m *Machine) OnMove(p models.Point2) {
	m.temp = &p
}

// EndChain stops the chain in progress and keeps what was committed.
func (m *Machine) EndChain() Result {
	if m.mode != models.ModeWallChain {
		return Result{Outcome: OutcomeIgnored}
	}
	m.points = nil
	m.temp = nil
	m.mode = models.ModeIdle
	return Result{Outcome: OutcomeChainTerminated}
}

// OnFinish turns every committed segment into walls and clears the draft.
// Rectangles complete on their second click, so finishing one is a no-op.
func (m *Machine) OnFinish() Result {
	if m.mode == models.ModeRectangle {
		return Result{Outcome: OutcomeIgnored}
	}

	segs := m.segments
	m.reset()
	if len(segs) == 0 {
		return Result{Outcome: OutcomeIgnored}
	}

	return Result{
		Outcome:  OutcomeWallsBuilt,
		Segments: segs,
		Entities: m.builder.WallsFromSegments(segs, m.floors.Current()),
	}
}

// Cancel drops the draft without producing anything.
func (m *Machine) Cancel() Result {
	m.reset()
	return Result{Outcome: OutcomeCancelled}
}

// reset clears the draft. The selected tool is kept, so the next click re-arms it.
func (m *Machine) reset() {
	m.clear()
	m.mode = models.ModeIdle
}

func (m *Machine) clear() {
	m.points = nil
	m.segments = nil
	m.temp = nil
	m.anchor = nil
}
