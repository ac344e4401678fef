package editor

import (
	"blueprint-editor/internal/blueprint/floors"
	"blueprint-editor/internal/blueprint/geometry"
	"blueprint-editor/internal/blueprint/navigation"
	"blueprint-editor/internal/blueprint/snapping"
	"blueprint-editor/internal/blueprint/synth"
)

// Tuning groups every editor constant that can be overridden from the tuning file.
type Tuning struct {
	StoryHeight      float64             `yaml:"story_height" json:"storyHeight"`
	Thickness        float64             `yaml:"thickness" json:"thickness"`
	CommitTolerance  float64             `yaml:"commit_tolerance" json:"commitTolerance"`
	PreviewTolerance float64             `yaml:"preview_tolerance" json:"previewTolerance"`
	NearTolerance    float64             `yaml:"near_tolerance" json:"nearTolerance"`
	Pricing          synth.Pricing       `yaml:"pricing" json:"pricing"`
	Camera           navigation.Settings `yaml:"camera" json:"camera"`
}

func DefaultTuning() Tuning {
	return Tuning{
		StoryHeight:      floors.DefaultStoryHeight,
		Thickness:        synth.DefaultThickness,
		CommitTolerance:  snapping.DefaultTolerance,
		PreviewTolerance: snapping.DefaultTolerance,
		NearTolerance:    geometry.NearTolerance,
		Pricing:          synth.DefaultPricing(),
		Camera:           navigation.DefaultSettings(),
	}
}
