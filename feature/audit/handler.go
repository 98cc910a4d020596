package audit

import (
	"errors"

	"asset-audit/core/logger"
	"asset-audit/feature/audit/models"
	"asset-audit/feature/audit/scan"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the audit session over HTTP.
type Handler struct {
	manager *Manager
	log     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(manager *Manager, log *zap.Logger) *Handler {
	return &Handler{manager: manager, log: log}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audit")
	group.Post("/session", h.HandleStart)
	group.Get("/session", h.HandleSnapshot)
	group.Post("/session/scan", h.HandleScan)
	group.Post("/session/keys", h.HandleKeys)
	group.Put("/session/method", h.HandleSetMethod)
	group.Post("/session/stop", h.HandleStop)
	group.Post("/session/cancel", h.HandleCancel)
	group.Get("/session/events", h.HandleEvents)
	group.Get("/archive/:room", h.HandleListArchive)
}

type startRequest struct {
	RoomID string `json:"room_id"`
	Method string `json:"method"`
}

// HandleStart begins an audit session.
// @Summary Start Audit
// @Description Start an audit session for a room, loading its expected assets.
// @Tags audit
// @Accept json
// @Produce json
// @Param request body startRequest true "Room and input method"
// @Success 200 {object} models.Snapshot "Session Snapshot"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 409 {object} map[string]string "Audit Already Active"
// @Router /audit/session [post]
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	var req startRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	method := models.Method(req.Method)
	if req.Method != "" && !method.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown audit method"})
	}

	if err := h.manager.Start(c.Context(), req.RoomID, method); err != nil {
		switch {
		case errors.Is(err, ErrNoRoomSelected):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrAuditActive):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			l.Error("Audit start failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(h.manager.Snapshot())
}

// HandleSnapshot returns the current session view.
// @Summary Get Audit Snapshot
// @Description Get the current audit session state, roster, and scanned records.
// @Tags audit
// @Produce json
// @Success 200 {object} models.Snapshot "Session Snapshot"
// @Router /audit/session [get]
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	return c.JSON(h.manager.Snapshot())
}

type scanRequest struct {
	Identifier string `json:"identifier"`
}

// HandleScan submits one manually entered identifier.
// @Summary Submit Scan
// @Description Submit one asset identifier to the active audit session.
// @Tags audit
// @Accept json
// @Produce json
// @Param request body scanRequest true "Asset identifier"
// @Success 202 {object} map[string]string "Accepted"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 409 {object} map[string]string "No Active Audit"
// @Router /audit/session/scan [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.manager.Scan(req.Identifier); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, scan.ErrInactive) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}

type keysRequest struct {
	Text string `json:"text"`
}

// HandleKeys feeds a keystroke chunk to the barcode wedge.
// @Summary Submit Keystrokes
// @Description Feed scanner keystrokes to the barcode input adapter.
// @Tags audit
// @Accept json
// @Produce json
// @Param request body keysRequest true "Keystroke text"
// @Success 202 {object} map[string]string "Accepted"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /audit/session/keys [post]
func (h *Handler) HandleKeys(c *fiber.Ctx) error {
	var req keysRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	h.manager.PressKeys(req.Text)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}

type methodRequest struct {
	Method string `json:"method"`
}

// HandleSetMethod switches the audit input method.
// @Summary Set Audit Method
// @Description Switch the input modality of the running session without losing progress.
// @Tags audit
// @Accept json
// @Produce json
// @Param request body methodRequest true "Audit method"
// @Success 200 {object} models.Snapshot "Session Snapshot"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /audit/session/method [put]
func (h *Handler) HandleSetMethod(c *fiber.Ctx) error {
	var req methodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.manager.SetMethod(models.Method(req.Method)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.manager.Snapshot())
}

type stopRequest struct {
	MarkMissing *bool `json:"mark_missing"`
}

// HandleStop finalizes the audit.
// @Summary Stop Audit
// @Description Finalize the session; unfound expected assets are reported missing unless mark_missing is false.
// @Tags audit
// @Accept json
// @Produce json
// @Param request body stopRequest false "Finalization options"
// @Success 200 {object} models.Summary "Audit Summary"
// @Failure 409 {object} map[string]string "No Active Audit"
// @Router /audit/session/stop [post]
func (h *Handler) HandleStop(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	markMissing := true
	var req stopRequest
	if err := c.BodyParser(&req); err == nil && req.MarkMissing != nil {
		markMissing = *req.MarkMissing
	}

	summary, err := h.manager.Stop(c.Context(), markMissing)
	if err != nil {
		if errors.Is(err, ErrNotActive) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Audit stop failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

// HandleCancel discards the audit without touching the inventory.
// @Summary Cancel Audit
// @Description Discard the session; no asset statuses or locations change.
// @Tags audit
// @Produce json
// @Success 200 {object} models.Summary "Audit Summary"
// @Failure 409 {object} map[string]string "No Active Audit"
// @Router /audit/session/cancel [post]
func (h *Handler) HandleCancel(c *fiber.Ctx) error {
	summary, err := h.manager.Cancel()
	if err != nil {
		if errors.Is(err, ErrNotActive) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

// HandleEvents returns the recorded session notifications.
// @Summary Get Audit Events
// @Description Get the session notification history, oldest first.
// @Tags audit
// @Produce json
// @Success 200 {array} Event "Events"
// @Router /audit/session/events [get]
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	events := h.manager.Events()
	if events == nil {
		events = []Event{}
	}
	return c.JSON(events)
}

// HandleListArchive lists archived audit summaries for a room.
// @Summary List Archived Audits
// @Description List stored audit summaries for a room, newest first.
// @Tags audit
// @Produce json
// @Param room path string true "Room Identifier"
// @Success 200 {array} string "Object Names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audit/archive/{room} [get]
func (h *Handler) HandleListArchive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	if h.manager.archiver == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "archiving is disabled"})
	}

	names, err := h.manager.archiver.List(c.Context(), c.Params("room"))
	if err != nil {
		l.Error("Archive listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(names)
}
