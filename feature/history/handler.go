package history

import (
	"errors"

	"asset-loader/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the load history.
type Handler struct {
	store *Store
	log   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
}

// HandleList returns the most recent batches.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	batches, err := h.store.ListBatches(c.Context(), c.QueryInt("limit"))
	if err != nil {
		l.Error("failed to list history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(batches)
}

// HandleGet returns one batch with its resource outcomes.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	b, resources, err := h.store.GetBatch(c.Context(), c.Params("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "batch not found"})
	}
	if err != nil {
		l.Error("failed to load batch history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"batch":     b,
		"resources": resources,
	})
}
