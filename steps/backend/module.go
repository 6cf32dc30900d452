// Package backend registers the sidecar executable build step: run the
// nested backend project's own build, then move the produced executable
// into the artifact store under a target-triple-suffixed name so builds
// for different hosts coexist without collision.
package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/internal/step"
	"github.com/vk/bundleforge/internal/store"
	"github.com/vk/bundleforge/steps/submodules"
)

// ID is the step identifier.
const ID = "backend"

// Module implements registry.Module for this package.
type Module struct{}

// ArtifactPath returns the store-relative path of the renamed executable
// for the given target triple.
func ArtifactPath(manifest *config.Manifest, triple string) string {
	return filepath.Join(manifest.Backend.BinariesDir, manifest.Backend.BinaryName+"-"+triple)
}

// Register registers the backend build step.
func (m *Module) Register(r *registry.Registry, manifest *config.Manifest) {
	backendDir := manifest.Backend.Dir
	binariesDir := manifest.Backend.BinariesDir
	buildArgv := manifest.Backend.Build
	producedRel := manifest.Backend.Output

	r.Add(&step.Step{
		ID:      ID,
		Summary: "build backend executable",
		Needs:   []string{submodules.ID},
		Outputs: []string{binariesDir},
		Stale:   staleness(manifest),
		Run: func(ctx context.Context, env *step.Env) error {
			if err := env.Store.MkdirAll(binariesDir); err != nil {
				return err
			}

			build := command.FromArgv(buildArgv)
			build.Dir = env.Store.Path(backendDir)
			if _, err := env.Runner.Run(ctx, build); err != nil {
				return fmt.Errorf("%w: %w", step.ErrSubBuildFailure, err)
			}

			produced := env.Store.Path(filepath.Join(backendDir, producedRel))
			dest := env.Store.Path(ArtifactPath(env.Manifest, env.Triple))
			if err := os.Rename(produced, dest); err != nil {
				return fmt.Errorf("moving backend executable into store: %w", err)
			}
			return nil
		},
	})
}

// staleness selects the rebuild gate from the manifest. The directory
// policy is the historical behavior: the presence of the binaries
// directory, not of the triple-named file, gates re-execution, so a
// partially populated directory silently prevents a retry. The file
// policy checks the exact artifact instead.
func staleness(manifest *config.Manifest) step.StalenessFunc {
	if manifest.Backend.Staleness == config.StalenessFile {
		return func(env *step.Env) (bool, error) {
			return store.FileMissing(ArtifactPath(env.Manifest, env.Triple))(env.Store)
		}
	}
	return step.FromStore(store.DirMissing(manifest.Backend.BinariesDir))
}
