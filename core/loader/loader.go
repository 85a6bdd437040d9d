package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Feature defines the lifecycle of a pluggable application feature.
type Feature interface {
	// Name returns the unique name of the feature.
	Name() string

	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool

	// Load registers the feature's routes on the given router.
	Load(app fiber.Router) error
}

// Manager holds the registry of available features.
type Manager struct {
	features []Feature
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a feature to the registry.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll initializes every enabled feature, in registration order.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}
		if err := f.Load(app); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
	}
	return nil
}
