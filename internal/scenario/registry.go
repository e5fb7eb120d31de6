package scenario

import (
	"errors"
	"fmt"
)

// Registry holds loaded scenario definitions in presentation order.
type Registry struct {
	byID map[string]*Definition
	all  []Definition
}

// NewRegistry creates a registry from loaded definitions.
// Duplicate ids are rejected.
func NewRegistry(defs []Definition) (*Registry, error) {
	registry := &Registry{
		byID: make(map[string]*Definition, len(defs)),
		all:  make([]Definition, len(defs)),
	}
	copy(registry.all, defs)
	for i := range registry.all {
		id := registry.all[i].ID
		if _, exists := registry.byID[id]; exists {
			return nil, fmt.Errorf("duplicate scenario id: %s", id)
		}
		registry.byID[id] = &registry.all[i]
	}
	return registry, nil
}

// LoadRegistry builds a registry from the built-in scenarios plus any
// scenario files found in dir. An empty dir loads the built-ins only.
func LoadRegistry(dir string) (*Registry, error) {
	defs, err := LoadBuiltins()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		extra, err := LoadDir(dir)
		if err != nil {
			return nil, err
		}
		defs = append(defs, extra...)
	}
	if len(defs) == 0 {
		return nil, errors.New("no scenarios loaded")
	}
	return NewRegistry(defs)
}

// MustLoadRegistry loads the built-in registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry("")
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the definition with the given ID, or nil if not found.
func (r *Registry) GetByID(id string) *Definition {
	return r.byID[id]
}

// All returns all definitions.
func (r *Registry) All() []Definition {
	return r.all
}

// IDs returns the scenario ids in presentation order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.all))
	for i := range r.all {
		ids[i] = r.all[i].ID
	}
	return ids
}

// Count returns the number of scenarios in the registry.
func (r *Registry) Count() int {
	return len(r.all)
}
