package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"blueprint-editor/internal/blueprint/draft"
	"blueprint-editor/internal/blueprint/editor"
	"blueprint-editor/internal/blueprint/models"
	"blueprint-editor/internal/blueprint/navigation"
	"blueprint-editor/internal/blueprint/parser"
	"blueprint-editor/internal/blueprint/planview"
	"blueprint-editor/internal/blueprint/repository"
	"blueprint-editor/internal/blueprint/service"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Editor Handler
// ============================================================

type EditorHandler struct {
	sessions *service.SessionManager
	repo     *repository.Repository
	importer *parser.Importer
	renderer *planview.Renderer
	log      *zap.Logger
}

// NewEditorHandler wires the HTTP surface. repo may be nil, in which case save and load answer 503.
func NewEditorHandler(sessions *service.SessionManager, repo *repository.Repository, log *zap.Logger) *EditorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &EditorHandler{
		sessions: sessions,
		repo:     repo,
		importer: parser.NewImporter(),
		renderer: planview.NewRenderer(),
		log:      log,
	}
}

// Register mounts every session route on r.
func (h *EditorHandler) Register(r fiber.Router) {
	r.Post("/", h.CreateSession)
	r.Get("/:id", h.GetSession)
	r.Delete("/:id", h.CloseSession)

	r.Post("/:id/click", h.Click)
	r.Post("/:id/move", h.Move)
	r.Post("/:id/finish", h.Finish)
	r.Post("/:id/cancel", h.Cancel)
	r.Post("/:id/end-chain", h.EndChain)
	r.Post("/:id/tool", h.SetTool)
	r.Get("/:id/draft", h.GetDraft)

	r.Post("/:id/keys", h.Key)
	r.Post("/:id/navigate", h.Navigate)
	r.Post("/:id/view/2d", h.EnterBlueprint)
	r.Post("/:id/view/3d", h.ExitBlueprint)
	r.Post("/:id/focus/:oid", h.Focus)
	r.Delete("/:id/focus", h.Unfocus)
	r.Get("/:id/camera", h.GetCamera)
	r.Post("/:id/floors/advance", h.AdvanceFloor)

	r.Get("/:id/objects", h.GetObjects)
	r.Post("/:id/objects/floor", h.AddFloor)
	r.Delete("/:id/objects/:oid", h.RemoveObject)
	r.Patch("/:id/objects/:oid/scale", h.RescaleObject)
	r.Get("/:id/quote", h.GetQuote)

	r.Post("/:id/import", h.ImportPlan)
	r.Get("/:id/plan.svg", h.ExportPlan)

	r.Post("/:id/save", h.Save)
	r.Post("/:id/load", h.Load)
	r.Get("/:id/saves", h.ListSaves)
}

// ============================================================
// Requests & errors
// ============================================================

type pointRequest struct {
	Point *models.Point2 `json:"point"`
}

type toolRequest struct {
	Tool models.DraftMode `json:"tool"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type navigateRequest struct {
	Command navigation.Command `json:"command"`
}

type scaleRequest struct {
	Scale *models.Vec3 `json:"scale"`
}

type floorRequest struct {
	From models.Point2 `json:"from"`
	To   models.Point2 `json:"to"`
}

type resultResponse struct {
	Result draft.Result `json:"result"`
	Draft  draft.State  `json:"draft"`
}

type sessionResponse struct {
	ID          string                   `json:"id"`
	Camera      models.CameraMode        `json:"camera"`
	SubMode     models.NavigationSubMode `json:"subMode"`
	Floor       int                      `json:"floor"`
	StoryHeight float64                  `json:"storyHeight"`
	Draft       draft.State              `json:"draft"`
	Objects     int                      `json:"objects"`
	Total       float64                  `json:"total"`
}

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func (h *EditorHandler) fail(c fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, editor.ErrOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, editor.ErrEntityNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, planview.ErrEmptyPlan):
		status = http.StatusNotFound
	case errors.Is(err, editor.ErrDraftingDisabled):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func decode(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return badRequest("empty body")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return badRequest("invalid json: %v", err)
	}
	return nil
}

func parseID(c fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, badRequest("invalid %s", param)
	}
	return id, nil
}

// withSession resolves :id and runs fn under the session lock.
func (h *EditorHandler) withSession(c fiber.Ctx, fn func(*editor.Session) error) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	return h.sessions.With(id, fn)
}

// ============================================================
// Sessions
// ============================================================

func (h *EditorHandler) CreateSession(c fiber.Ctx) error {
	id := h.sessions.Create()
	var resp sessionResponse
	if err := h.sessions.With(id, func(s *editor.Session) error {
		resp = describe(s)
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(resp)
}

func (h *EditorHandler) GetSession(c fiber.Ctx) error {
	var resp sessionResponse
	if err := h.withSession(c, func(s *editor.Session) error {
		resp = describe(s)
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

func (h *EditorHandler) CloseSession(c fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.sessions.Close(id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func describe(s *editor.Session) sessionResponse {
	nav := s.Navigation()
	return sessionResponse{
		ID:          s.ID.String(),
		Camera:      nav.Mode(),
		SubMode:     nav.SubMode(),
		Floor:       s.Floors().Current(),
		StoryHeight: s.Floors().StoryHeight(),
		Draft:       s.Draft(),
		Objects:     s.Objects().Len(),
		Total:       s.Objects().Total(),
	}
}

// ============================================================
// Drafting
// ============================================================

// Click accepts {"point": {"x":..,"z":..}}. A missing or null point is a raycast miss.
func (h *EditorHandler) Click(c fiber.Ctx) error {
	var req pointRequest
	if len(c.Body()) > 0 {
		if err := decode(c, &req); err != nil {
			return h.fail(c, err)
		}
	}
	return h.draftOp(c, func(s *editor.Session) draft.Result {
		return s.Click(req.Point)
	})
}

func (h *EditorHandler) Move(c fiber.Ctx) error {
	var req pointRequest
	if len(c.Body()) > 0 {
		if err := decode(c, &req); err != nil {
			return h.fail(c, err)
		}
	}
	var (
		moved   bool
		preview draft.Preview
	)
	if err := h.withSession(c, func(s *editor.Session) error {
		moved = s.Move(req.Point)
		preview = s.Preview()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"moved": moved, "preview": preview})
}

func (h *EditorHandler) Finish(c fiber.Ctx) error {
	return h.draftOp(c, (*editor.Session).Finish)
}

func (h *EditorHandler) Cancel(c fiber.Ctx) error {
	return h.draftOp(c, (*editor.Session).Cancel)
}

func (h *EditorHandler) EndChain(c fiber.Ctx) error {
	return h.draftOp(c, (*editor.Session).EndChain)
}

func (h *EditorHandler) draftOp(c fiber.Ctx, op func(*editor.Session) draft.Result) error {
	var resp resultResponse
	if err := h.withSession(c, func(s *editor.Session) error {
		resp.Result = op(s)
		resp.Draft = s.Draft()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

func (h *EditorHandler) SetTool(c fiber.Ctx) error {
	var req toolRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	var state draft.State
	if err := h.withSession(c, func(s *editor.Session) error {
		if err := s.SetTool(req.Tool); err != nil {
			if errors.Is(err, editor.ErrDraftingDisabled) {
				return err
			}
			return badRequest("%v", err)
		}
		state = s.Draft()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(state)
}

func (h *EditorHandler) GetDraft(c fiber.Ctx) error {
	var resp fiber.Map
	if err := h.withSession(c, func(s *editor.Session) error {
		resp = fiber.Map{"draft": s.Draft(), "preview": s.Preview()}
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

// ============================================================
// Camera
// ============================================================

func (h *EditorHandler) Key(c fiber.Ctx) error {
	var req keyRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.cameraOp(c, func(s *editor.Session) bool {
		return s.HandleKey(req.Key)
	})
}

func (h *EditorHandler) Navigate(c fiber.Ctx) error {
	var req navigateRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.cameraOp(c, func(s *editor.Session) bool {
		return s.Navigate(req.Command)
	})
}

func (h *EditorHandler) EnterBlueprint(c fiber.Ctx) error {
	return h.cameraOp(c, func(s *editor.Session) bool {
		s.EnterBlueprint()
		return true
	})
}

func (h *EditorHandler) ExitBlueprint(c fiber.Ctx) error {
	return h.cameraOp(c, func(s *editor.Session) bool {
		s.ExitBlueprint()
		return true
	})
}

func (h *EditorHandler) Focus(c fiber.Ctx) error {
	oid, err := parseID(c, "oid")
	if err != nil {
		return h.fail(c, err)
	}
	var cam navigation.Camera
	if err := h.withSession(c, func(s *editor.Session) error {
		if err := s.Focus(oid); err != nil {
			return err
		}
		cam = s.Camera()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"handled": true, "mode": models.CameraObjectFocus, "camera": cam})
}

func (h *EditorHandler) Unfocus(c fiber.Ctx) error {
	return h.cameraOp(c, (*editor.Session).Unfocus)
}

func (h *EditorHandler) GetCamera(c fiber.Ctx) error {
	return h.cameraOp(c, func(*editor.Session) bool { return true })
}

func (h *EditorHandler) cameraOp(c fiber.Ctx, op func(*editor.Session) bool) error {
	var resp fiber.Map
	if err := h.withSession(c, func(s *editor.Session) error {
		handled := op(s)
		nav := s.Navigation()
		resp = fiber.Map{
			"handled": handled,
			"mode":    nav.Mode(),
			"subMode": nav.SubMode(),
			"camera":  s.Camera(),
		}
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

func (h *EditorHandler) AdvanceFloor(c fiber.Ctx) error {
	var floor int
	if err := h.withSession(c, func(s *editor.Session) error {
		var err error
		floor, err = s.AdvanceFloor()
		return err
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"floor": floor})
}

// ============================================================
// Objects & quote
// ============================================================

func (h *EditorHandler) GetObjects(c fiber.Ctx) error {
	var entities []models.Entity3D
	if err := h.withSession(c, func(s *editor.Session) error {
		entities = s.Objects().Entities()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"objects": entities})
}

func (h *EditorHandler) GetQuote(c fiber.Ctx) error {
	var resp any
	if err := h.withSession(c, func(s *editor.Session) error {
		resp = s.Objects().Snapshot()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

func (h *EditorHandler) AddFloor(c fiber.Ctx) error {
	var req floorRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	var e models.Entity3D
	if err := h.withSession(c, func(s *editor.Session) error {
		var err error
		e, err = s.AddFloor(req.From, req.To)
		return err
	}); err != nil {
		return h.fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(e)
}

func (h *EditorHandler) RemoveObject(c fiber.Ctx) error {
	oid, err := parseID(c, "oid")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.withSession(c, func(s *editor.Session) error {
		return s.Remove(oid)
	}); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *EditorHandler) RescaleObject(c fiber.Ctx) error {
	oid, err := parseID(c, "oid")
	if err != nil {
		return h.fail(c, err)
	}
	var req scaleRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	if req.Scale == nil {
		return h.fail(c, badRequest("scale required"))
	}

	var e models.Entity3D
	if err := h.withSession(c, func(s *editor.Session) error {
		var err error
		e, err = s.Rescale(oid, *req.Scale)
		return err
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(e)
}
