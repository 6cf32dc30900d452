// Package submodules registers the step that materializes every pinned
// nested source tree before anything that builds out of one runs.
package submodules

import (
	"context"

	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/internal/step"
)

// ID is the step identifier.
const ID = "submodules"

// Module implements registry.Module for this package.
type Module struct{}

// Register registers the submodule step.
func (m *Module) Register(r *registry.Registry, manifest *config.Manifest) {
	r.Add(&step.Step{
		ID:      ID,
		Summary: "materialize pinned submodule trees",
		// Stale iff any declared tree is missing its marker. The
		// resolver re-checks per tree, so a run with everything present
		// performs no network operation at all.
		Stale: func(env *step.Env) (bool, error) {
			return !env.Submodules.AllMaterialized(), nil
		},
		Run: func(ctx context.Context, env *step.Env) error {
			return env.Submodules.EnsureAll(ctx)
		},
	})
}
