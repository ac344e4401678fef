package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"blueprint-editor/internal/blueprint/editor"
	"blueprint-editor/internal/blueprint/models"
	"blueprint-editor/internal/blueprint/planview"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Plan Import / Export
// ============================================================

// ImportPlan reads an SVG plan, either as the "file" field of a multipart form
// or as the raw body, and adds its walls and rooms to the current floor.
// ?units= overrides the plan units per metre.
func (h *EditorHandler) ImportPlan(c fiber.Ctx) error {
	data, err := readPlan(c)
	if err != nil {
		return h.fail(c, err)
	}
	h.log.Info("plan received", zap.Int("bytes", len(data)))

	im := *h.importer
	if raw := c.Query("units"); raw != "" {
		units, err := strconv.ParseFloat(raw, 64)
		if err != nil || units <= 0 {
			return h.fail(c, badRequest("invalid units %q", raw))
		}
		im.UnitsPerMeter = units
	}

	plan, err := im.Import(bytes.NewReader(data))
	if err != nil {
		return h.fail(c, badRequest("%v", err))
	}

	var entities []models.Entity3D
	if err := h.withSession(c, func(s *editor.Session) error {
		entities = s.ImportPlan(plan.Walls, plan.Rooms)
		return nil
	}); err != nil {
		return h.fail(c, err)
	}

	h.log.Info("plan imported", zap.Int("walls", len(plan.Walls)), zap.Int("rooms", len(plan.Rooms)))
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"walls":    len(plan.Walls),
		"rooms":    len(plan.Rooms),
		"entities": entities,
	})
}

func readPlan(c fiber.Ctx) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	if len(c.Body()) == 0 {
		return nil, badRequest("svg required as body or multipart file")
	}
	return append([]byte(nil), c.Body()...), nil
}

// ExportPlan renders one floor as SVG. ?floor= selects it, the current floor by default.
func (h *EditorHandler) ExportPlan(c fiber.Ctx) error {
	var scene planview.Scene
	if err := h.withSession(c, func(s *editor.Session) error {
		scene.Floor = s.Floors().Current()
		if raw := c.Query("floor"); raw != "" {
			floor, err := strconv.Atoi(raw)
			if err != nil || floor < 0 {
				return badRequest("invalid floor %q", raw)
			}
			scene.Floor = floor
		}
		scene.Entities = s.Objects().Entities()
		if scene.Floor == s.Floors().Current() {
			scene.Draft = s.Draft().CommittedSegments
		}
		return nil
	}); err != nil {
		return h.fail(c, err)
	}

	svg, err := h.renderer.Render(scene)
	if err != nil {
		return h.fail(c, err)
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}
