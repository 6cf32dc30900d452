// Package devserver registers the dev target's terminal step: launch the
// application in interactive hot-reload mode. The process is opaque and
// long-running; the step completes when it exits.
package devserver

import (
	"context"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/internal/step"
	"github.com/vk/bundleforge/steps/backend"
	"github.com/vk/bundleforge/steps/icon"
	"github.com/vk/bundleforge/steps/webui"
)

// ID is the step identifier.
const ID = "dev"

// Module implements registry.Module for this package.
type Module struct{}

// Register registers the dev-mode step.
func (m *Module) Register(r *registry.Registry, manifest *config.Manifest) {
	tool := manifest.Tools.Packager

	r.Add(&step.Step{
		ID:      ID,
		Summary: "run application in dev mode",
		Needs:   []string{webui.ID, icon.ID, backend.ID},
		Run: func(ctx context.Context, env *step.Env) error {
			cmd := command.FromArgv(tool, "dev")
			cmd.Dir = env.Store.Root()
			_, err := env.Runner.Run(ctx, cmd)
			return err
		},
	})
}
