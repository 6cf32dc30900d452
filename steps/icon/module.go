// Package icon registers the icon-generation step. One source image in,
// one generated icon asset out; no platform variance.
package icon

import (
	"context"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/internal/step"
	"github.com/vk/bundleforge/internal/store"
)

// ID is the step identifier.
const ID = "icon"

// Module implements registry.Module for this package.
type Module struct{}

// Register registers the icon-generation step.
func (m *Module) Register(r *registry.Registry, manifest *config.Manifest) {
	source := manifest.Icon.Source
	output := manifest.Icon.Output
	tool := manifest.Tools.Icon

	r.Add(&step.Step{
		ID:      ID,
		Summary: "generate icon assets",
		Outputs: []string{output},
		Stale:   step.FromStore(store.FileMissing(output)),
		Run: func(ctx context.Context, env *step.Env) error {
			cmd := command.FromArgv(tool, env.Store.Path(source))
			cmd.Dir = env.Store.Root()
			_, err := env.Runner.Run(ctx, cmd)
			return err
		},
	})
}
