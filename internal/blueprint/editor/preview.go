package editor

import (
	"sync/atomic"

	"blueprint-editor/internal/blueprint/draft"
	"blueprint-editor/internal/blueprint/models"
)

// RenderHandle identifies a primitive created by a RenderFactory.
type RenderHandle uint64

// RenderFactory turns entity descriptors into renderable primitives.
type RenderFactory interface {
	Create(e models.Entity3D) RenderHandle
	Dispose(h RenderHandle)
}

// NopFactory hands out handles without rendering anything.
type NopFactory struct {
	next atomic.Uint64
}

func (f *NopFactory) Create(models.Entity3D) RenderHandle {
	return RenderHandle(f.next.Add(1))
}

func (f *NopFactory) Dispose(RenderHandle) {}

// wallBuilder is the synthesizer surface the preview uses for ghost geometry.
type wallBuilder interface {
	WallFromSegment(seg models.Segment, floor int) models.Entity3D
}

// PreviewLayer owns the transient primitives drawn under the cursor. Every
// refresh disposes what the previous one created, and nothing else.
type PreviewLayer struct {
	factory RenderFactory
	builder wallBuilder
	handles []RenderHandle
}

func NewPreviewLayer(factory RenderFactory, builder wallBuilder) *PreviewLayer {
	if factory == nil {
		factory = &NopFactory{}
	}
	return &PreviewLayer{factory: factory, builder: builder}
}

// Refresh replaces the ghost geometry with the one matching p.
func (l *PreviewLayer) Refresh(p draft.Preview, floor int) {
	l.Clear()
	if !p.Active {
		return
	}

	if p.Corners != nil {
		c := p.Corners
		for i := range c {
			l.create(models.NewSegment(c[i], c[(i+1)%len(c)]), floor)
		}
		return
	}
	l.create(models.NewSegment(p.From, p.SnappedTo), floor)
}

// Clear disposes every handle the layer created.
func (l *PreviewLayer) Clear() {
	for _, h := range l.handles {
		l.factory.Dispose(h)
	}
	l.handles = l.handles[:0]
}

// Handles returns the live handles.
func (l *PreviewLayer) Handles() []RenderHandle {
	return append([]RenderHandle(nil), l.handles...)
}

func (l *PreviewLayer) create(seg models.Segment, floor int) {
	ghost := l.builder.WallFromSegment(seg, floor)
	ghost.Price = 0
	l.handles = append(l.handles, l.factory.Create(ghost))
}
