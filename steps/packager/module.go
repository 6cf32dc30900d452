// Package packager registers the final platform-conditional packaging
// step, handing the assembled tree to the external bundling tool.
package packager

import (
	"context"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/platform"
	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/internal/step"
	"github.com/vk/bundleforge/steps/backend"
	"github.com/vk/bundleforge/steps/icon"
	"github.com/vk/bundleforge/steps/webui"
)

// ID is the step identifier.
const ID = "package"

// StripOverride is the environment flag injected on Linux hosts. It works
// around a binary-stripping failure in the Linux bundling sub-tool; it is
// a workaround, not a guaranteed fix, and there is no fallback if the
// underlying bug surfaces anyway.
const StripOverride = "NO_STRIP=true"

// Module implements registry.Module for this package.
type Module struct{}

// Register registers the packaging step. It has no staleness gate: the
// packaging tool owns its own output management.
func (m *Module) Register(r *registry.Registry, manifest *config.Manifest) {
	tool := manifest.Tools.Packager

	r.Add(&step.Step{
		ID:      ID,
		Summary: "package application bundle",
		Needs:   []string{webui.ID, icon.ID, backend.ID},
		Run: func(ctx context.Context, env *step.Env) error {
			cmd := command.FromArgv(tool, "build")
			cmd.Dir = env.Store.Root()
			if env.Platform == platform.Linux {
				cmd.Env = append(cmd.Env, StripOverride)
			}
			_, err := env.Runner.Run(ctx, cmd)
			return err
		},
	})
}
