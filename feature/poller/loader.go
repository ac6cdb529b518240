package poller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	scheduler *Scheduler
	handler   *Handler
}

// NewFeature creates a new poller feature. A nil scheduler disables it.
func NewFeature(scheduler *Scheduler, logger *zap.Logger) *Feature {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feature{scheduler: scheduler, handler: NewHandler(scheduler, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "poller"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.scheduler != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
