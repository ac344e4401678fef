package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"blueprint-editor/internal/blueprint/editor"
	"blueprint-editor/internal/blueprint/repository"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ============================================================
// Save / Load
// ============================================================

var errNoRepository = errors.New("snapshot storage is not configured")

const storageTimeout = 5 * time.Second

type saveRequest struct {
	Name string `json:"name"`
	// Session selects whose save to load; defaults to the target session.
	Session *uuid.UUID `json:"session,omitempty"`
}

func (h *EditorHandler) Save(c fiber.Ctx) error {
	if h.repo == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": errNoRepository.Error()})
	}
	var req saveRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	if req.Name == "" {
		return h.fail(c, badRequest("name required"))
	}

	var rec repository.Record
	if err := h.withSession(c, func(s *editor.Session) error {
		rec = repository.Record{
			SessionID: s.ID,
			Name:      req.Name,
			Floor:     s.Floors().Current(),
			Entities:  s.Objects().Entities(),
			Quote:     s.Objects().Snapshot(),
		}
		return nil
	}); err != nil {
		return h.fail(c, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := h.repo.Save(ctx, rec); err != nil {
		return h.fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"name":    rec.Name,
		"objects": len(rec.Entities),
		"total":   rec.Quote.Total,
	})
}

func (h *EditorHandler) Load(c fiber.Ctx) error {
	if h.repo == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": errNoRepository.Error()})
	}
	var req saveRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	from := id
	if req.Session != nil {
		from = *req.Session
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	rec, err := h.repo.Load(ctx, from, req.Name)
	if err != nil {
		return h.fail(c, err)
	}

	var resp sessionResponse
	if err := h.sessions.With(id, func(s *editor.Session) error {
		if err := s.Restore(rec.Entities, rec.Floor); err != nil {
			return err
		}
		s.ExitBlueprint()
		resp = describe(s)
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

func (h *EditorHandler) ListSaves(c fiber.Ctx) error {
	if h.repo == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": errNoRepository.Error()})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	list, err := h.repo.List(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"saves": list})
}
