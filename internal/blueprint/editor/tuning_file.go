package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Tuning file
// ============================================================

// LoadTuning reads the tuning file at path. An empty path yields the defaults;
// fields missing from the file keep their default value.
func LoadTuning(path string) (Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	return ParseTuning(data)
}

func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	if err := validateTuning(t); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func validateTuning(t Tuning) error {
	positive := map[string]float64{
		"story_height":      t.StoryHeight,
		"thickness":         t.Thickness,
		"commit_tolerance":  t.CommitTolerance,
		"preview_tolerance": t.PreviewTolerance,
		"near_tolerance":    t.NearTolerance,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("tuning: %s must be positive, got %g", name, v)
		}
	}

	rates := map[string]float64{
		"pricing.wall_per_meter":             t.Pricing.WallPerMeter,
		"pricing.wall_per_square_meter":      t.Pricing.WallPerSquareMeter,
		"pricing.room_slab_per_square_meter": t.Pricing.RoomSlabPerSquareMeter,
		"pricing.floor_per_square_meter":     t.Pricing.FloorPerSquareMeter,
	}
	for name, v := range rates {
		if v < 0 {
			return fmt.Errorf("tuning: %s must not be negative, got %g", name, v)
		}
	}
	return nil
}
