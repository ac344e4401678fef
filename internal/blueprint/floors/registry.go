package floors

import "fmt"

// DefaultStoryHeight is the height of one story in scene units.
const DefaultStoryHeight = 6.0

// MaxFloors bounds the floor indexes accepted from stored snapshots.
const MaxFloors = 200

// Level is one story of the building.
type Level struct {
	Index      int     `json:"index"`
	BaseHeight float64 `json:"baseHeight"`
}

// Registry tracks the active floor. Floors are append-only: the index never goes back.
type Registry struct {
	storyHeight float64
	current     int
	levels      []Level
}

func NewRegistry(storyHeight float64) *Registry {
	if storyHeight <= 0 {
		storyHeight = DefaultStoryHeight
	}
	r := &Registry{storyHeight: storyHeight}
	r.levels = []Level{r.level(0)}
	return r
}

func (r *Registry) StoryHeight() float64 {
	return r.storyHeight
}

func (r *Registry) Current() int {
	return r.current
}

// Advance creates the next floor, makes it current and returns its index.
func (r *Registry) Advance() int {
	r.current++
	r.levels = append(r.levels, r.level(r.current))
	return r.current
}

// HeightOf returns the base height of a floor.
func (r *Registry) HeightOf(index int) float64 {
	return float64(index) * r.storyHeight
}

// WallYPosition is the Y the walls of a floor are built from.
func (r *Registry) WallYPosition(index int) float64 {
	return r.HeightOf(index)
}

// Levels returns a copy of every floor created so far.
func (r *Registry) Levels() []Level {
	out := make([]Level, len(r.levels))
	copy(out, r.levels)
	return out
}

// Describe returns the floor descriptor used in entity labels.
func (r *Registry) Describe(index int) string {
	return Describe(index)
}

func Describe(index int) string {
	if index == 0 {
		return "Rez-de-chaussée"
	}
	return fmt.Sprintf("Étage %d", index)
}

func (r *Registry) level(index int) Level {
	return Level{Index: index, BaseHeight: r.HeightOf(index)}
}
