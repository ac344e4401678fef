// Package script replays recorded editing sessions described in YAML.
//
//	steps:
//	  - view: 2d
//	  - tool: rectangle
//	  - click: {x: 0, z: 0}
//	  - click: {x: 5, z: 3}
//	  - miss: true
//	  - finish: true
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"blueprint-editor/internal/blueprint/draft"
	"blueprint-editor/internal/blueprint/editor"
	"blueprint-editor/internal/blueprint/models"
	"blueprint-editor/internal/blueprint/navigation"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Script format
// ============================================================

type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	View         string         `yaml:"view,omitempty"`
	Tool         string         `yaml:"tool,omitempty"`
	Click        *models.Point2 `yaml:"click,omitempty"`
	Miss         bool           `yaml:"miss,omitempty"`
	Move         *models.Point2 `yaml:"move,omitempty"`
	Finish       bool           `yaml:"finish,omitempty"`
	EndChain     bool           `yaml:"end_chain,omitempty"`
	Cancel       bool           `yaml:"cancel,omitempty"`
	Key          string         `yaml:"key,omitempty"`
	Navigate     string         `yaml:"navigate,omitempty"`
	AdvanceFloor bool           `yaml:"advance_floor,omitempty"`
	Floor        *FloorStep     `yaml:"floor,omitempty"`
	Focus        *int           `yaml:"focus,omitempty"`
	Rescale      *RescaleStep   `yaml:"rescale,omitempty"`
}

// FloorStep places a standalone floor between two corners.
type FloorStep struct {
	From models.Point2 `yaml:"from"`
	To   models.Point2 `yaml:"to"`
}

// RescaleStep targets an object by its position in the object list.
type RescaleStep struct {
	Object int        `yaml:"object"`
	Scale  [3]float64 `yaml:"scale"`
}

var ErrInvalidStep = errors.New("invalid step")

func Parse(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, nil
		}
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	for i, step := range s.Steps {
		if n := step.actions(); n != 1 {
			return Script{}, fmt.Errorf("step %d: %w: %d actions", i+1, ErrInvalidStep, n)
		}
	}
	return s, nil
}

func Load(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.View != "", s.Tool != "", s.Click != nil, s.Miss, s.Move != nil,
		s.Finish, s.EndChain, s.Cancel, s.Key != "", s.Navigate != "",
		s.AdvanceFloor, s.Floor != nil, s.Focus != nil, s.Rescale != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// ============================================================
// Replay
// ============================================================

// StepResult reports what a step did.
type StepResult struct {
	Step    int    `json:"step"`
	Action  string `json:"action"`
	Outcome string `json:"outcome"`
}

// Run applies every step to the session in order and stops at the first error.
func Run(s *editor.Session, sc Script) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		action, outcome, err := apply(s, step)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, action, err)
		}
		results = append(results, StepResult{Step: i + 1, Action: action, Outcome: outcome})
	}
	return results, nil
}

func apply(s *editor.Session, step Step) (string, string, error) {
	switch {
	case step.View != "":
		switch step.View {
		case "2d":
			s.EnterBlueprint()
		case "3d":
			s.ExitBlueprint()
		default:
			return "view", "", fmt.Errorf("%w: unknown view %q", ErrInvalidStep, step.View)
		}
		return "view", s.Navigation().Mode().String(), nil

	case step.Tool != "":
		tool, err := models.ParseDraftMode(step.Tool)
		if err != nil {
			return "tool", "", err
		}
		if err := s.SetTool(tool); err != nil {
			return "tool", "", err
		}
		return "tool", tool.String(), nil

	case step.Click != nil:
		return "click", outcome(s.Click(step.Click)), nil

	case step.Miss:
		return "click", s.Click(nil).Outcome.String(), nil

	case step.Move != nil:
		return "move", fmt.Sprint(s.Move(step.Move)), nil

	case step.Finish:
		return "finish", outcome(s.Finish()), nil

	case step.EndChain:
		return "end-chain", outcome(s.EndChain()), nil

	case step.Cancel:
		return "cancel", outcome(s.Cancel()), nil

	case step.Key != "":
		s.HandleKey(step.Key)
		return "key", s.Navigation().Mode().String(), nil

	case step.Navigate != "":
		cmd, err := navigation.ParseCommand(step.Navigate)
		if err != nil {
			return "navigate", "", err
		}
		return "navigate", fmt.Sprint(s.Navigate(cmd)), nil

	case step.AdvanceFloor:
		floor, err := s.AdvanceFloor()
		if err != nil {
			return "advance-floor", "", err
		}
		return "advance-floor", fmt.Sprint(floor), nil

	case step.Floor != nil:
		e, err := s.AddFloor(step.Floor.From, step.Floor.To)
		if err != nil {
			return "floor", "", err
		}
		return "floor", e.Label, nil

	case step.Focus != nil:
		e, err := objectAt(s, *step.Focus)
		if err != nil {
			return "focus", "", err
		}
		if err := s.Focus(e.ID); err != nil {
			return "focus", "", err
		}
		return "focus", e.Label, nil

	case step.Rescale != nil:
		e, err := objectAt(s, step.Rescale.Object)
		if err != nil {
			return "rescale", "", err
		}
		sc := step.Rescale.Scale
		got, err := s.Rescale(e.ID, models.Vec3{X: sc[0], Y: sc[1], Z: sc[2]})
		if err != nil {
			return "rescale", "", err
		}
		return "rescale", fmt.Sprintf("%.2f", got.Price), nil
	}
	return "", "", ErrInvalidStep
}

func outcome(r draft.Result) string {
	if len(r.Entities) == 0 {
		return r.Outcome.String()
	}
	return fmt.Sprintf("%s (%d entities)", r.Outcome, len(r.Entities))
}

func objectAt(s *editor.Session, index int) (models.Entity3D, error) {
	entities := s.Objects().Entities()
	if index < 0 || index >= len(entities) {
		return models.Entity3D{}, fmt.Errorf("object %d: %w", index, editor.ErrEntityNotFound)
	}
	return entities[index], nil
}
