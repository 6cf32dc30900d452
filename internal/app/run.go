package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/ctxlog"
	"github.com/vk/bundleforge/internal/dag"
	"github.com/vk/bundleforge/internal/platform"
	"github.com/vk/bundleforge/internal/step"
	"github.com/vk/bundleforge/internal/store"
	"github.com/vk/bundleforge/internal/submodule"
	"github.com/vk/bundleforge/steps/devserver"
	"github.com/vk/bundleforge/steps/packager"
)

// Run executes the configured target. Every run is tagged with a fresh
// run ID so interleaved logs from concurrent invocations stay separable.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With("runID", uuid.NewString(), "target", a.config.Target)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run started.")

	switch a.config.Target {
	case TargetPrebuild:
		return a.runGraph(ctx, prebuildSteps())
	case TargetBuild:
		return a.runGraph(ctx, append(prebuildSteps(), packager.ID))
	case TargetDev:
		return a.runGraph(ctx, append(prebuildSteps(), devserver.ID))
	case TargetFormat:
		return a.maintenance(ctx, a.manifest.Tools.Formatter)
	case TargetCheck:
		return a.maintenance(ctx, a.manifest.Tools.Linter)
	case TargetClean:
		return a.clean(ctx)
	default:
		return fmt.Errorf("unknown target %q", a.config.Target)
	}
}

// runGraph builds the dependency graph for the given target steps and
// executes it against a freshly wired environment.
func (a *App) runGraph(ctx context.Context, targets []string) error {
	logger := ctxlog.FromContext(ctx)

	env, err := a.buildEnv(ctx)
	if err != nil {
		return err
	}

	graph, err := dag.Build(ctx, a.registry, targets)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	logger.Info("🚀 Starting execution.", "steps", graph.Len(), "workers", a.config.WorkerCount, "dryRun", a.config.DryRun)
	exec := dag.NewExecutor(graph, env, a.config.WorkerCount, a.config.DryRun)
	runErr := exec.Run(ctx)
	a.printSummary(exec.Results())
	if runErr != nil {
		return runErr
	}
	logger.Info("🏁 Execution finished.")
	return nil
}

// buildEnv wires the shared step environment: the artifact store rooted
// at the project, the submodule resolver, and the host identity. A dry
// run must not invoke any external command, so it derives the target
// triple from the runtime instead of querying the toolchain.
func (a *App) buildEnv(ctx context.Context) (*step.Env, error) {
	st := store.New(a.manifest.Project.Root)

	lock, err := submodule.LoadLock(st.Path(a.manifest.Submodules.LockFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", submodule.ErrSourceUnavailable, err)
	}
	resolver := submodule.NewResolver(st.Root(), a.manifest.Tools.Git, a.runner, lock)

	var triple string
	if a.config.DryRun {
		triple = platform.FallbackTriple(runtime.GOOS, runtime.GOARCH)
	} else {
		triple = platform.HostTriple(ctx, a.runner)
	}

	return &step.Env{
		Manifest:   a.manifest,
		Store:      st,
		Platform:   platform.Detect(),
		Triple:     triple,
		Runner:     a.runner,
		Submodules: resolver,
	}, nil
}

// maintenance runs a formatting or lint tool over the backend source
// tree. These targets are independent of the artifact graph; a violation
// surfaces through the exit code but never blocks a build target.
func (a *App) maintenance(ctx context.Context, argv []string) error {
	st := store.New(a.manifest.Project.Root)
	cmd := command.FromArgv(argv)
	cmd.Dir = st.Path(a.manifest.Backend.Dir)
	_, err := a.runner.Run(ctx, cmd)
	return err
}

// clean removes every declared step output from the artifact store. It is
// the only path that deletes artifacts; submodule trees are not outputs
// and are left alone.
func (a *App) clean(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	st := store.New(a.manifest.Project.Root)

	for _, s := range a.registry.Steps() {
		for _, out := range s.Outputs {
			logger.Info("Removing artifact.", "step", s.ID, "path", out)
			if err := st.Remove(out); err != nil {
				return err
			}
		}
	}
	return nil
}

// printSummary writes the per-step outcome table to the output writer.
func (a *App) printSummary(results []*step.Result) {
	for _, res := range results {
		switch res.Status {
		case step.StatusRan:
			fmt.Fprintf(a.outW, "%-12s %s (%s)\n", res.StepID, res.Status, res.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(a.outW, "%-12s %s\n", res.StepID, res.Status)
		}
	}
}
