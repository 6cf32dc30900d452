// Package outerdeps registers the top-level dependency install step. It
// must complete before the nested web project's own install runs.
package outerdeps

import (
	"context"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/internal/step"
	"github.com/vk/bundleforge/internal/store"
)

// ID is the step identifier.
const ID = "outer-deps"

// Module implements registry.Module for this package.
type Module struct{}

// Register registers the outer install step.
func (m *Module) Register(r *registry.Registry, manifest *config.Manifest) {
	outDir := manifest.Web.OuterModulesDir
	npm := manifest.Tools.NPM

	r.Add(&step.Step{
		ID:      ID,
		Summary: "install top-level dependencies",
		Outputs: []string{outDir},
		Stale:   step.FromStore(store.DirMissing(outDir)),
		Run: func(ctx context.Context, env *step.Env) error {
			cmd := command.Command{
				Name: npm,
				Args: []string{"install"},
				Dir:  env.Store.Root(),
			}
			_, err := env.Runner.Run(ctx, cmd)
			return err
		},
	})
}
