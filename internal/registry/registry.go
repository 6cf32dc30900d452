// Package registry holds the step definitions for a single application
// instance. Step modules register themselves against a Registry at startup;
// after registration the set is validated once and treated as immutable.
package registry

import (
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/step"
)

// Module is the interface all step packages implement to be registered.
// The manifest is passed so modules can bind their paths and commands at
// registration time.
type Module interface {
	Register(r *Registry, manifest *config.Manifest)
}

// Registry holds all registered steps, preserving registration order.
type Registry struct {
	steps map[string]*step.Step
	order []string
	// duplicates collects IDs registered more than once, surfaced by
	// Validate rather than at registration time.
	duplicates []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{steps: make(map[string]*step.Step)}
}

// Add registers a step definition. Re-registering an ID is recorded and
// rejected during validation.
func (r *Registry) Add(s *step.Step) {
	if _, exists := r.steps[s.ID]; exists {
		r.duplicates = append(r.duplicates, s.ID)
		return
	}
	r.steps[s.ID] = s
	r.order = append(r.order, s.ID)
}

// Step returns the step with the given ID.
func (r *Registry) Step(id string) (*step.Step, bool) {
	s, ok := r.steps[id]
	return s, ok
}

// Steps returns all registered steps in registration order.
func (r *Registry) Steps() []*step.Step {
	out := make([]*step.Step, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.steps[id])
	}
	return out
}
