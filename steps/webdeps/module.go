// Package webdeps registers the nested web project's dependency install
// step. It runs after the submodule tree holding the web project exists
// and after the top-level install completed; the two install phases are
// order-sensitive.
package webdeps

import (
	"context"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/internal/step"
	"github.com/vk/bundleforge/internal/store"
	"github.com/vk/bundleforge/steps/outerdeps"
	"github.com/vk/bundleforge/steps/submodules"
)

// ID is the step identifier.
const ID = "web-deps"

// Module implements registry.Module for this package.
type Module struct{}

// Register registers the nested install step.
func (m *Module) Register(r *registry.Registry, manifest *config.Manifest) {
	webDir := manifest.Web.Dir
	modulesDir := manifest.Web.ModulesDir
	npm := manifest.Tools.NPM

	r.Add(&step.Step{
		ID:      ID,
		Summary: "install web front-end dependencies",
		Needs:   []string{submodules.ID, outerdeps.ID},
		Outputs: []string{modulesDir},
		Stale:   step.FromStore(store.DirMissing(modulesDir)),
		Run: func(ctx context.Context, env *step.Env) error {
			cmd := command.Command{
				Name: npm,
				Args: []string{"install"},
				Dir:  env.Store.Path(webDir),
			}
			_, err := env.Runner.Run(ctx, cmd)
			return err
		},
	})
}
