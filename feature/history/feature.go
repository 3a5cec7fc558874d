package history

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the registry.Feature interface.
type Feature struct {
	store   *Store
	handler *Handler
	enabled bool
}

// NewFeature creates the history feature. With a nil database the feature
// stays disabled and Store returns nil.
func NewFeature(db *gorm.DB, logger *zap.Logger) *Feature {
	if db == nil {
		return &Feature{}
	}
	store := NewStore(db)
	return &Feature{
		store:   store,
		handler: NewHandler(store, logger),
		enabled: true,
	}
}

// Store returns the underlying store, or nil when the feature is disabled.
// It is used to wire the store as the batch feature's recorder.
func (f *Feature) Store() *Store {
	return f.store
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "history"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes after ensuring the tables exist.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.store.Migrate(); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}
