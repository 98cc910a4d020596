package inventory

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cfg     Config
	service *Service
	handler *Handler
}

// NewFeature creates the inventory feature.
func NewFeature(cfg Config, db *gorm.DB, log *zap.Logger) *Feature {
	svc := NewService(db, log, cfg)
	return &Feature{
		cfg:     cfg,
		service: svc,
		handler: NewHandler(svc, log),
	}
}

// Service exposes the feature's service for in-process consumers.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "inventory"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.cfg.Enabled
}

// Load migrates the schema and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if f.cfg.Migrate {
		if err := f.service.Migrate(); err != nil {
			return err
		}
	}
	f.handler.RegisterRoutes(app)
	return nil
}
