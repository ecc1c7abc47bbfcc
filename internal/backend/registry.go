package backend

import (
	"sync"
	"time"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/config"
)

// Factory builds an engine from the model configuration.
type Factory func(cfg config.ModelConfig, timeout time.Duration) (Engine, error)

// Registry maps engine names to factories.
type Registry struct {
	factories map[config.EngineName]Factory
	mu        sync.RWMutex
}

// NewRegistry creates a new engine registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[config.EngineName]Factory),
	}
}

// Register adds an engine factory to the registry.
func (r *Registry) Register(name config.EngineName, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[name] = factory
}

// Get retrieves an engine factory by name.
func (r *Registry) Get(name config.EngineName) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	return factory, ok
}
