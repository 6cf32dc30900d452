// Package step defines the unit of build work. A Step declares its
// identity, its prerequisite steps, the artifacts it produces, a staleness
// predicate gating re-execution, and the handler that does the work. The
// step set is fixed at wiring time and immutable while the graph runs.
package step

import (
	"context"
	"errors"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/platform"
	"github.com/vk/bundleforge/internal/store"
	"github.com/vk/bundleforge/internal/submodule"
)

// ErrSubBuildFailure marks a nested project's own build procedure exiting
// non-zero. Fatal: no partial-success bundling.
var ErrSubBuildFailure = errors.New("nested build failed")

// StalenessFunc reports whether the step must run. A nil StalenessFunc on
// a Step means the step is always stale.
type StalenessFunc func(env *Env) (bool, error)

// FromStore adapts an artifact-store predicate into a StalenessFunc.
func FromStore(p store.Predicate) StalenessFunc {
	return func(env *Env) (bool, error) { return p(env.Store) }
}

// Step is a single unit of build work.
type Step struct {
	// ID is the unique step identifier used in the dependency graph.
	ID string
	// Summary is a one-line description for logs and dry-run plans.
	Summary string
	// Needs lists prerequisite step IDs. Order is preserved.
	Needs []string
	// Outputs lists store-relative artifact paths the step produces.
	// Informational for most of the pipeline; the clean target removes
	// exactly these.
	Outputs []string
	// Stale gates execution. Nil means always run.
	Stale StalenessFunc
	// Run performs the work. Only invoked when Stale reports true.
	Run func(ctx context.Context, env *Env) error
}

// IsStale evaluates the step's staleness predicate.
func (s *Step) IsStale(env *Env) (bool, error) {
	if s.Stale == nil {
		return true, nil
	}
	return s.Stale(env)
}

// Env is the shared execution environment handed to every step handler.
// The store is the only shared mutable resource in it; each step writes
// only its own declared outputs.
type Env struct {
	Manifest   *config.Manifest
	Store      *store.Store
	Platform   platform.Platform
	Triple     string
	Runner     command.Runner
	Submodules *submodule.Resolver
}
