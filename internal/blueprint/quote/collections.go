// Package quote keeps the scene object list and the quote line items in lockstep.
package quote

import (
	"sync"

	"blueprint-editor/internal/blueprint/models"

	"github.com/google/uuid"
)

// SceneObject is one renderable entry of the scene list.
type SceneObject struct {
	ID       uuid.UUID         `json:"id"`
	URL      string            `json:"url"`
	Price    float64           `json:"price"`
	Details  string            `json:"details"`
	Position models.Vec3       `json:"position"`
	Scale    models.Vec3       `json:"scale"`
	Rotation models.Vec3       `json:"rotation"`
	Texture  string            `json:"texture,omitempty"`
	Type     models.EntityKind `json:"type,omitempty"`
}

// Item is one priced line of the quote.
type Item struct {
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	Price      float64   `json:"price"`
	Details    string    `json:"details"`
	FloorIndex int       `json:"floorIndex"`
}

// Snapshot is a consistent view of both lists.
type Snapshot struct {
	Objects []SceneObject `json:"objects"`
	Quote   []Item        `json:"quote"`
	Total   float64       `json:"total"`
}

// Normalized replaces nil lists with empty ones so both encode as arrays.
func (s Snapshot) Normalized() Snapshot {
	if s.Objects == nil {
		s.Objects = []SceneObject{}
	}
	if s.Quote == nil {
		s.Quote = []Item{}
	}
	return s
}

// Observer receives a snapshot after every committed change.
type Observer func(Snapshot)

// Collections owns every emitted entity. Both lists are derived from the same
// ordered entity set, so a reader never sees one list without the other.
type Collections struct {
	mu        sync.RWMutex
	order     []uuid.UUID
	entities  map[uuid.UUID]models.Entity3D
	observers []Observer
}

func NewCollections() *Collections {
	return &Collections{entities: make(map[uuid.UUID]models.Entity3D)}
}

// Append adds entities as one unit. Entities whose id is already present are skipped.
// It returns the number added.
func (c *Collections) Append(entities ...models.Entity3D) int {
	c.mu.Lock()
	added := 0
	for _, e := range entities {
		if _, exists := c.entities[e.ID]; exists {
			continue
		}
		c.entities[e.ID] = e
		c.order = append(c.order, e.ID)
		added++
	}
	snap, observers := c.commitLocked(added > 0)
	c.mu.Unlock()

	notify(observers, snap)
	return added
}

// Remove drops the entity from both lists.
func (c *Collections) Remove(id uuid.UUID) bool {
	c.mu.Lock()
	_, ok := c.entities[id]
	if ok {
		delete(c.entities, id)
		for i, oid := range c.order {
			if oid == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	snap, observers := c.commitLocked(ok)
	c.mu.Unlock()

	notify(observers, snap)
	return ok
}

// Update replaces the entity with fn's result. The id is preserved.
func (c *Collections) Update(id uuid.UUID, fn func(models.Entity3D) models.Entity3D) (models.Entity3D, bool) {
	c.mu.Lock()
	current, ok := c.entities[id]
	if ok {
		current = fn(current)
		current.ID = id
		c.entities[id] = current
	}
	snap, observers := c.commitLocked(ok)
	c.mu.Unlock()

	notify(observers, snap)
	return current, ok
}

// Replace swaps the whole content, used when a saved session is loaded.
func (c *Collections) Replace(entities []models.Entity3D) {
	c.mu.Lock()
	c.entities = make(map[uuid.UUID]models.Entity3D, len(entities))
	c.order = c.order[:0]
	for _, e := range entities {
		if _, exists := c.entities[e.ID]; exists {
			continue
		}
		c.entities[e.ID] = e
		c.order = append(c.order, e.ID)
	}
	snap, observers := c.commitLocked(true)
	c.mu.Unlock()

	notify(observers, snap)
}

func (c *Collections) Get(id uuid.UUID) (models.Entity3D, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entities[id]
	return e, ok
}

// Entities returns the entities in insertion order.
func (c *Collections) Entities() []models.Entity3D {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Entity3D, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entities[id])
	}
	return out
}

func (c *Collections) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func (c *Collections) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Collections) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0.0
	for _, id := range c.order {
		total += c.entities[id].Price
	}
	return total
}

// Subscribe registers an observer called after each change, outside the lock.
func (c *Collections) Subscribe(o Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, o)
	c.mu.Unlock()
}

// ============================================================
// Internal
// ============================================================

func (c *Collections) commitLocked(changed bool) (Snapshot, []Observer) {
	if !changed || len(c.observers) == 0 {
		return Snapshot{}, nil
	}
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	return c.snapshotLocked(), observers
}

func (c *Collections) snapshotLocked() Snapshot {
	snap := Snapshot{
		Objects: make([]SceneObject, 0, len(c.order)),
		Quote:   make([]Item, 0, len(c.order)),
	}
	for _, id := range c.order {
		e := c.entities[id]
		snap.Objects = append(snap.Objects, ObjectOf(e))
		snap.Quote = append(snap.Quote, ItemOf(e))
		snap.Total += e.Price
	}
	return snap
}

func notify(observers []Observer, snap Snapshot) {
	for _, o := range observers {
		o(snap)
	}
}

// ObjectOf maps an entity to its scene list entry.
func ObjectOf(e models.Entity3D) SceneObject {
	obj := SceneObject{
		ID:       e.ID,
		URL:      "primitive:" + string(e.Kind),
		Price:    e.Price,
		Details:  e.Label,
		Position: e.Position,
		Scale:    e.Scale,
		Rotation: e.Rotation,
		Type:     e.Kind,
	}
	if tex, ok := e.Faces.Uniform(); ok {
		obj.Texture = tex
	}
	return obj
}

// ItemOf maps an entity to its quote line.
func ItemOf(e models.Entity3D) Item {
	return Item{
		ID:         e.ID,
		Label:      e.Label,
		Price:      e.Price,
		Details:    string(e.Kind),
		FloorIndex: e.FloorIndex,
	}
}
