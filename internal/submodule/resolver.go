package submodule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/ctxlog"
)

// ErrSourceUnavailable marks a submodule tree that could not be
// materialized: the fetch failed, or it completed without producing the
// expected marker. Fatal, never retried.
var ErrSourceUnavailable = errors.New("submodule source unavailable")

// Resolver ensures declared submodule trees are present at their pinned
// revisions. The underlying operation is always "initialize and update
// everything recursively": asking for one tree materializes all of them.
type Resolver struct {
	// Root is the top-level repository directory.
	Root string
	// Git is the git executable name.
	Git string
	// Runner executes the checkout command.
	Runner command.Runner
	// Lock is the parsed pin declarations.
	Lock *Lock
}

// NewResolver wires a resolver for the given repository root.
func NewResolver(root, git string, runner command.Runner, lock *Lock) *Resolver {
	return &Resolver{Root: root, Git: git, Runner: runner, Lock: lock}
}

// Materialized reports whether the pin's marker exists inside its tree.
func (r *Resolver) Materialized(pin Pin) bool {
	_, err := os.Stat(filepath.Join(r.Root, pin.Path, pin.Marker))
	return err == nil
}

// Ensure makes the submodule at path available. A second call with the
// marker already present performs no work and no network access.
func (r *Resolver) Ensure(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	pin, ok := r.Lock.Pin(path)
	if !ok {
		return fmt.Errorf("%w: %s is not a declared submodule", ErrSourceUnavailable, path)
	}

	if r.Materialized(pin) {
		logger.Debug("Submodule already materialized.", "path", path)
		return nil
	}

	logger.Info("Materializing submodules.", "path", path, "revision", pin.Revision)
	cmd := command.Command{
		Name: r.Git,
		Args: []string{"submodule", "update", "--init", "--recursive"},
		Dir:  r.Root,
	}
	if _, err := r.Runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	if !r.Materialized(pin) {
		return fmt.Errorf("%w: %s has no %s after checkout", ErrSourceUnavailable, path, pin.Marker)
	}
	return nil
}

// EnsureAll materializes every declared submodule.
func (r *Resolver) EnsureAll(ctx context.Context) error {
	for _, pin := range r.Lock.Submodules {
		if err := r.Ensure(ctx, pin.Path); err != nil {
			return err
		}
	}
	return nil
}

// AllMaterialized reports whether every declared tree has its marker.
func (r *Resolver) AllMaterialized() bool {
	for _, pin := range r.Lock.Submodules {
		if !r.Materialized(pin) {
			return false
		}
	}
	return true
}
