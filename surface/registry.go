// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"sort"
	"sync"
)

// Factory creates a new Surface of the given size.
type Factory func(width, height int) (Surface, error)

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry maps format names to surface factories.
//
// Example registration:
//
//	func init() {
//	    surface.Register("bgra", newBGRA)
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Factory
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and NewByName.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Factory)}
}

// Register adds a format to the global registry.
// Registering a name that already exists replaces the previous entry.
func Register(name string, factory Factory) {
	globalRegistry.Register(name, factory)
}

// Formats returns all registered format names in lexical order.
func Formats() []string {
	return globalRegistry.Formats()
}

// NewByName creates a surface of the named format from the global registry.
func NewByName(name string, width, height int) (Surface, error) {
	return globalRegistry.NewByName(name, width, height)
}

// Register adds a format to this registry.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = factory
}

// Formats returns the registered format names in lexical order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewByName creates a surface of the named format.
func (r *Registry) NewByName(name string, width, height int) (Surface, error) {
	r.mu.RLock()
	factory, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &FormatNotFoundError{Name: name}
	}
	return factory(width, height)
}

// FormatNotFoundError indicates a named format is not registered.
type FormatNotFoundError struct {
	Name string
}

func (e *FormatNotFoundError) Error() string {
	return "surface: format not found: " + e.Name
}

// init registers the built-in formats.
func init() {
	Register("rgba", func(w, h int) (Surface, error) {
		s, err := NewRGBA(w, h)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	Register("gray", func(w, h int) (Surface, error) {
		s, err := NewGray(w, h)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
