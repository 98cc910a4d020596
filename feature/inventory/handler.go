package inventory

import (
	"errors"

	"asset-audit/core/logger"
	"asset-audit/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the inventory.
type Handler struct {
	service *Service
	log     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/rooms", h.HandleListRooms)
	group.Get("/assets/:room", h.HandleRoomAssets)
	group.Get("/asset/:id", h.HandleGetAsset)
	group.Get("/asset/:id/history", h.HandleAssetHistory)
	group.Post("/update-asset-location", h.HandleUpdateLocation)
	group.Post("/mark-assets-missing", h.HandleMarkMissing)

	disc := group.Group("/discrepancies")
	disc.Get("/", h.HandleDiscrepancies)
	disc.Post("/mark-lost", h.HandleMarkLost)
	disc.Post("/mark-found", h.HandleMarkFound)
	disc.Post("/relocate", h.HandleRelocate)
	disc.Post("/bulk-mark-found", h.HandleBulkMarkFound)
	disc.Post("/bulk-relocate", h.HandleBulkRelocate)
}

// HandleListRooms returns all rooms.
// @Summary List Rooms
// @Description List every room available for audit.
// @Tags inventory
// @Produce json
// @Success 200 {array} models.Room "Rooms"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/rooms [get]
func (h *Handler) HandleListRooms(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	rooms, err := h.service.Rooms(c.Context())
	if err != nil {
		l.Error("Room listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rooms)
}

// HandleRoomAssets returns the assets assigned to a room.
// @Summary Get Room Assets
// @Description List every asset assigned to the given room.
// @Tags inventory
// @Produce json
// @Param room path string true "Room Identifier"
// @Success 200 {array} models.Asset "Assets"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/assets/{room} [get]
func (h *Handler) HandleRoomAssets(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	assets, err := h.service.RoomAssets(c.Context(), c.Params("room"))
	if err != nil {
		l.Error("Room asset listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(assets)
}

// HandleGetAsset returns one asset by tag.
// @Summary Get Asset
// @Description Get one asset by its tag.
// @Tags inventory
// @Produce json
// @Param id path string true "Asset Tag"
// @Success 200 {object} models.Asset "Asset"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /inventory/asset/{id} [get]
func (h *Handler) HandleGetAsset(c *fiber.Ctx) error {
	asset, err := h.service.Asset(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(asset)
}

// HandleAssetHistory returns the scan history of one asset.
// @Summary Get Asset History
// @Description Get the scan events of an asset, newest first.
// @Tags inventory
// @Produce json
// @Param id path string true "Asset Tag"
// @Param limit query int false "Maximum events"
// @Success 200 {array} models.ScanEvent "Scan Events"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/asset/{id}/history [get]
func (h *Handler) HandleAssetHistory(c *fiber.Ctx) error {
	events, err := h.service.History(c.Context(), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if events == nil {
		events = []models.ScanEvent{}
	}
	return c.JSON(events)
}

type updateLocationRequest struct {
	AssetID string `json:"asset_id"`
	RoomID  string `json:"room_id"`
}

// HandleUpdateLocation records an asset sighting.
// @Summary Update Asset Location
// @Description Record that an asset was seen in a room; sets Good or Misplaced accordingly.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body updateLocationRequest true "Asset and room"
// @Success 200 {object} models.Asset "Updated Asset"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /inventory/update-asset-location [post]
func (h *Handler) HandleUpdateLocation(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	var req updateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.AssetID == "" || req.RoomID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "asset_id and room_id are required"})
	}

	asset, err := h.service.UpdateAssetLocation(c.Context(), req.AssetID, req.RoomID)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Location update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(asset)
}

type markMissingRequest struct {
	AssetIDs []string `json:"asset_ids"`
}

// HandleMarkMissing marks assets missing in one batch.
// @Summary Mark Assets Missing
// @Description Mark the given assets missing; lost and recently-sighted misplaced assets are skipped.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body markMissingRequest true "Asset tags"
// @Success 200 {object} models.BulkResult "Bulk Outcome"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /inventory/mark-assets-missing [post]
func (h *Handler) HandleMarkMissing(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	var req markMissingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.MarkAssetsMissing(c.Context(), req.AssetIDs)
	if err != nil {
		l.Error("Mark-missing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleDiscrepancies lists assets needing attention.
// @Summary List Discrepancies
// @Description List every missing, misplaced, or lost asset.
// @Tags inventory
// @Produce json
// @Success 200 {array} models.Asset "Assets"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/discrepancies [get]
func (h *Handler) HandleDiscrepancies(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	assets, err := h.service.Discrepancies(c.Context())
	if err != nil {
		l.Error("Discrepancy listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return c.JSON(assets)
}

type assetActionRequest struct {
	AssetID      string `json:"asset_id"`
	RoomID       string `json:"room_id"`
	ReturnToRoom bool   `json:"return_to_room"`
	Notes        string `json:"notes"`
}

// HandleMarkLost writes an asset off.
// @Summary Mark Asset Lost
// @Description Write one asset off as lost.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body assetActionRequest true "Asset and notes"
// @Success 200 {object} map[string]string "OK"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /inventory/discrepancies/mark-lost [post]
func (h *Handler) HandleMarkLost(c *fiber.Ctx) error {
	var req assetActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.service.MarkAssetLost(c.Context(), req.AssetID, req.Notes); err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleMarkFound recovers a discrepant asset.
// @Summary Mark Asset Found
// @Description Recover an asset; return_to_room selects which room keeps it.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body assetActionRequest true "Asset, destination, and notes"
// @Success 200 {object} map[string]string "OK"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /inventory/discrepancies/mark-found [post]
func (h *Handler) HandleMarkFound(c *fiber.Ctx) error {
	var req assetActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.service.MarkAssetFound(c.Context(), req.AssetID, req.ReturnToRoom, req.Notes); err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleRelocate reassigns an asset to a new room.
// @Summary Relocate Asset
// @Description Reassign an asset to a new room and record it as present there.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body assetActionRequest true "Asset, room, and notes"
// @Success 200 {object} map[string]string "OK"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /inventory/discrepancies/relocate [post]
func (h *Handler) HandleRelocate(c *fiber.Ctx) error {
	var req assetActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.RoomID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "room_id is required"})
	}

	if err := h.service.RelocateAsset(c.Context(), req.AssetID, req.RoomID, req.Notes); err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

type bulkActionRequest struct {
	AssetIDs []string `json:"asset_ids"`
	RoomID   string   `json:"room_id"`
	Notes    string   `json:"notes"`
}

// HandleBulkMarkFound recovers several assets at once.
// @Summary Bulk Mark Found
// @Description Recover several assets in their assigned rooms.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body bulkActionRequest true "Asset tags and notes"
// @Success 200 {object} models.BulkResult "Bulk Outcome"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /inventory/discrepancies/bulk-mark-found [post]
func (h *Handler) HandleBulkMarkFound(c *fiber.Ctx) error {
	var req bulkActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.BulkMarkFound(c.Context(), req.AssetIDs, req.Notes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleBulkRelocate reassigns several assets at once.
// @Summary Bulk Relocate
// @Description Reassign several assets to one room.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body bulkActionRequest true "Asset tags, room, and notes"
// @Success 200 {object} models.BulkResult "Bulk Outcome"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /inventory/discrepancies/bulk-relocate [post]
func (h *Handler) HandleBulkRelocate(c *fiber.Ctx) error {
	var req bulkActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.RoomID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "room_id is required"})
	}

	result, err := h.service.BulkRelocate(c.Context(), req.AssetIDs, req.RoomID, req.Notes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
