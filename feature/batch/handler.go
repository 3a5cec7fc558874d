package batch

import (
	"asset-loader/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for batch runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the batch routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/batches")
	group.Post("/", h.HandleSubmit)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
}

// HandleSubmit starts a new batch run from the request body.
func (h *Handler) HandleSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	st, err := h.service.Submit(req)
	if err != nil {
		l.Warn("batch rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("batch accepted", zap.String("batch", st.ID))
	return c.Status(fiber.StatusAccepted).JSON(st)
}

// HandleList returns every known batch run.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

// HandleGet returns the status of a single batch run.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	st, ok := h.service.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "batch not found"})
	}
	return c.JSON(st)
}
