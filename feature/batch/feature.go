package batch

import (
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
)

// Feature implements the registry.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new batch feature.
func NewFeature(newLoader LoaderFactory, defaultParallel bool, logger *zap.Logger, recorder Recorder) *Feature {
	svc := NewService(newLoader, defaultParallel, logger, recorder)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "batch"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
