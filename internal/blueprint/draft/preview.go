package draft

import (
	"blueprint-editor/internal/blueprint/geometry"
	"blueprint-editor/internal/blueprint/models"
)

// Preview is what the blueprint view draws under the cursor.
//
// Aligned colours the live line and uses the preview tolerance. SnappedTo is where
// a click would actually commit; the two can disagree when the tolerances differ.
type Preview struct {
	Active    bool              `json:"active"`
	Mode      models.DraftMode  `json:"mode"`
	From      models.Point2     `json:"from"`
	To        models.Point2     `json:"to"`
	SnappedTo models.Point2     `json:"snappedTo"`
	Length    float64           `json:"length"`
	Aligned   bool              `json:"aligned"`
	Corners   *[4]models.Point2 `json:"corners,omitempty"`
}

func (m *Machine) Preview() Preview {
	if m.temp == nil {
		return Preview{Mode: m.mode}
	}
	cursor := *m.temp

	switch {
	case m.mode == models.ModeRectangle && m.anchor != nil:
		corners := geometry.RectangleCorners(*m.anchor, cursor)
		return Preview{
			Active:    true,
			Mode:      m.mode,
			From:      *m.anchor,
			To:        cursor,
			SnappedTo: cursor,
			Length:    geometry.Distance(*m.anchor, cursor),
			Corners:   &corners,
		}

	case m.mode == models.ModeWallChain && len(m.points) > 0:
		last := m.points[len(m.points)-1]
		return Preview{
			Active:    true,
			Mode:      m.mode,
			From:      last,
			To:        cursor,
			SnappedTo: m.snap.SnapEndpoint(last, cursor),
			Length:    geometry.Distance(last, cursor),
			Aligned:   m.snap.PreviewAligned(last, cursor),
		}
	}

	return Preview{Mode: m.mode, To: cursor, SnappedTo: cursor}
}
