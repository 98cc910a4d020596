package audit

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cfg     Config
	manager *Manager
	handler *Handler
}

// NewFeature creates the audit feature around an already-wired manager.
func NewFeature(cfg Config, manager *Manager, log *zap.Logger) *Feature {
	return &Feature{
		cfg:     cfg,
		manager: manager,
		handler: NewHandler(manager, log),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "audit"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.cfg.Enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
