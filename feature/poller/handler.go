package poller

import (
	"errors"

	"hotel-inventory/core/logger"
	"hotel-inventory/core/upstream"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for poll cycles.
type Handler struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(scheduler *Scheduler, logger *zap.Logger) *Handler {
	return &Handler{scheduler: scheduler, logger: logger}
}

// RegisterRoutes registers the poller routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/poll")
	group.Post("/", h.HandlePoll)
	group.Get("/last", h.HandleLast)
}

// HandlePoll runs one poll cycle now.
// @Summary Run Poll Cycle
// @Description Poll the upstream stream once and reconcile the batch. With dry_run=true the batch is only classified and nothing is acknowledged.
// @Tags poll
// @Produce json
// @Param dry_run query bool false "Classify only"
// @Success 200 {object} reconcile.Summary "Cycle summary"
// @Failure 409 {object} map[string]string "Cycle already running"
// @Failure 502 {object} map[string]string "Upstream unavailable or malformed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /poll [post]
func (h *Handler) HandlePoll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if c.QueryBool("dry_run", false) {
		plan, err := h.scheduler.Preview(c.Context())
		if err != nil {
			return h.fail(c, l, err)
		}
		return c.JSON(plan)
	}

	summary, err := h.scheduler.Trigger(c.Context())
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(summary)
}

// HandleLast returns the outcome of the most recent cycle.
// @Summary Last Poll Cycle
// @Tags poll
// @Produce json
// @Success 200 {object} Status "Scheduler status"
// @Router /poll/last [get]
func (h *Handler) HandleLast(c *fiber.Ctx) error {
	return c.JSON(h.scheduler.Status())
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrCycleRunning):
		status = fiber.StatusConflict
	case errors.Is(err, upstream.ErrUnavailable), errors.Is(err, upstream.ErrMalformed):
		status = fiber.StatusBadGateway
	}
	if status != fiber.StatusConflict {
		l.Error("Manual poll failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
