// Package registry maps algorithm names to factories so pipelines can be
// assembled from configuration.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/debeat/essentia/pkg/streaming"
)

// ErrNotRegistered is returned when no factory exists for a name.
var ErrNotRegistered = errors.New("algorithm not registered")

// ErrDuplicate is returned when a name is registered twice.
var ErrDuplicate = errors.New("algorithm already registered")

// Factory creates a fresh, unconfigured algorithm instance.
type Factory func() streaming.Algorithm

type entry struct {
	description string
	factory     Factory
}

// Registry manages the available streaming algorithms.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a factory under the given name.
func (r *Registry) Register(name, description string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.entries[name] = entry{description: description, factory: factory}
	return nil
}

// Create instantiates and configures a registered algorithm.
func (r *Registry) Create(name string) (streaming.Algorithm, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return e.factory(), nil
}

// Describe returns the registered description for a name.
func (r *Registry) Describe(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return e.description, nil
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
