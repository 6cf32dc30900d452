package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/ctxlog"
	"github.com/vk/bundleforge/internal/registry"
)

// App encapsulates the orchestrator's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	manifest *config.Manifest
	registry *registry.Registry
	runner   command.Runner
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger and a validated step
// registry. A nil runner selects the real system runner. Startup
// misconfiguration is a fatal error and panics; the entrypoint recovers
// and turns it into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, runner command.Runner, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	manifest, err := loader.Load(ctx, appConfig.ManifestPath)
	if err != nil {
		panic(fmt.Errorf("failed to load manifest: %w", err))
	}
	logger.Debug("Manifest loaded.", "project", manifest.Project.Name, "root", manifest.Project.Root)

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg, manifest)
	}
	logger.Debug("All step modules registered.", "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		// A broken step set is a programmer error, not a user error.
		panic(err)
	}

	if runner == nil {
		runner = command.NewSystemRunner(nil, nil)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		manifest: manifest,
		registry: reg,
		runner:   runner,
	}
}

// Registry returns the application's step registry. Primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Manifest returns the loaded manifest. Primarily for testing.
func (a *App) Manifest() *config.Manifest {
	return a.manifest
}
