package inventory

import (
	"errors"

	"hotel-inventory/core/logger"
	"hotel-inventory/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for room types and the event log.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	rooms := app.Group("/rooms")
	rooms.Get("/", h.HandleListRooms)
	rooms.Get("/:code", h.HandleGetRoom)
	rooms.Put("/:code", h.HandleUpdateRoom)

	app.Get("/events", h.HandleListEvents)
	app.Get("/health", h.HandleHealth)
}

// HandleListRooms returns every room type.
// @Summary List Room Types
// @Description List the cached availability of every room type.
// @Tags rooms
// @Produce json
// @Success 200 {array} models.RoomType "Room types"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rooms [get]
func (h *Handler) HandleListRooms(c *fiber.Ctx) error {
	rooms, err := h.service.ListRooms(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("List room types failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rooms)
}

// HandleGetRoom returns one room type.
// @Summary Get Room Type
// @Tags rooms
// @Produce json
// @Param code path string true "Room type code (e.g. 'NSQ')"
// @Success 200 {object} reconcile.Room "Room type"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rooms/{code} [get]
func (h *Handler) HandleGetRoom(c *fiber.Ctx) error {
	room, err := h.service.GetRoom(c.Context(), c.Params("code"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(room)
}

// HandleUpdateRoom overrides count, rate, name or capacity of a room type.
// @Summary Update Room Type
// @Description Administrative override. Creates the room type when it does not exist.
// @Tags rooms
// @Accept json
// @Produce json
// @Param code path string true "Room type code"
// @Param body body RoomUpdate true "Fields to change"
// @Success 200 {object} models.RoomType "Updated room type"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rooms/{code} [put]
func (h *Handler) HandleUpdateRoom(c *fiber.Ctx) error {
	var update RoomUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body: " + err.Error()})
	}

	room, err := h.service.UpdateRoom(c.Context(), c.Params("code"), update)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(room)
}

// HandleListEvents returns the newest processed event log entries.
// @Summary List Processed Events
// @Tags events
// @Produce json
// @Param token query string false "Receipt token"
// @Param outcome query string false "Outcome (applied, skipped, duplicate, apply_failed, ack_failed)"
// @Param cycle query string false "Cycle id"
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {array} models.ProcessedEventLog "Entries"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /events [get]
func (h *Handler) HandleListEvents(c *fiber.Ctx) error {
	filter := EventFilter{
		ReceiptToken: c.Query("token"),
		Outcome:      c.Query("outcome"),
		CycleID:      c.Query("cycle"),
		Limit:        c.QueryInt("limit", defaultEventLimit),
	}

	entries, err := h.service.ListEvents(c.Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entries)
}

// HandleHealth reports database and schema status.
// @Summary Health
// @Tags health
// @Produce json
// @Success 200 {object} HealthReport "Healthy"
// @Failure 503 {object} HealthReport "Degraded"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Health(c.Context())
	if report.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, reconcile.ErrRoomTypeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidRoom):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Inventory request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
