// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which names it, says whether
// it is enabled and registers its routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry. Register() adds features and LoadAll()
// loads the enabled ones in registration order, so 'inventory', 'poller'
// and future modules stay isolated and testable on their own.
package loader
