package backend_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/internal/step"
	"github.com/vk/bundleforge/internal/store"
	"github.com/vk/bundleforge/internal/testutil"
	"github.com/vk/bundleforge/steps/backend"
	"github.com/vk/bundleforge/steps/submodules"
)

const triple = "x86_64-unknown-linux-gnu"

func testManifest(staleness string) *config.Manifest {
	return &config.Manifest{
		Backend: config.Backend{
			Dir:         "core",
			Build:       []string{"make", "server"},
			Output:      "dist/demo-server",
			BinariesDir: "binaries",
			BinaryName:  "demo-server",
			Staleness:   staleness,
		},
	}
}

func registeredStep(t *testing.T, manifest *config.Manifest) *step.Step {
	t.Helper()
	r := registry.New()
	(&backend.Module{}).Register(r, manifest)
	s, ok := r.Step(backend.ID)
	require.True(t, ok)
	return s
}

func testEnv(t *testing.T, manifest *config.Manifest, runner command.Runner) *step.Env {
	t.Helper()
	return &step.Env{
		Manifest: manifest,
		Store:    store.New(t.TempDir()),
		Triple:   triple,
		Runner:   runner,
	}
}

func TestArtifactPath(t *testing.T) {
	m := testManifest("")
	assert.Equal(t, filepath.Join("binaries", "demo-server-"+triple), backend.ArtifactPath(m, triple))

	m.Backend.BinariesDir = "out/bin"
	assert.Equal(t, filepath.Join("out/bin", "demo-server-"+triple), backend.ArtifactPath(m, triple))
}

func TestRegistration(t *testing.T) {
	s := registeredStep(t, testManifest(""))
	assert.Equal(t, []string{submodules.ID}, s.Needs)
	assert.Equal(t, []string{"binaries"}, s.Outputs)
}

func TestRunBuildsAndRenames(t *testing.T) {
	manifest := testManifest("")
	s := registeredStep(t, manifest)
	runner := &testutil.FakeRunner{}
	env := testEnv(t, manifest, runner)
	runner.OnRun = testutil.Simulate(env.Store.Root())

	require.NoError(t, s.Run(context.Background(), env))

	// The nested build ran in the backend tree.
	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "make server", calls[0].String())
	assert.Equal(t, env.Store.Path("core"), calls[0].Dir)

	// The produced executable moved into the store under its triple name.
	assert.True(t, env.Store.FileExists(backend.ArtifactPath(manifest, triple)))
	assert.False(t, env.Store.FileExists("core/dist/demo-server"))
}

func TestRunWrapsBuildFailure(t *testing.T) {
	manifest := testManifest("")
	s := registeredStep(t, manifest)
	runner := &testutil.FakeRunner{OnRun: func(cmd command.Command) (*command.Result, error) {
		return &command.Result{ExitCode: 2}, assert.AnError
	}}
	env := testEnv(t, manifest, runner)

	err := s.Run(context.Background(), env)
	require.Error(t, err)
	assert.ErrorIs(t, err, step.ErrSubBuildFailure)
}

func TestRunFailsWhenNothingProduced(t *testing.T) {
	// The build exits zero but leaves no executable behind.
	manifest := testManifest("")
	s := registeredStep(t, manifest)
	env := testEnv(t, manifest, &testutil.FakeRunner{})

	err := s.Run(context.Background(), env)
	require.Error(t, err)
	assert.ErrorContains(t, err, "moving backend executable")
}

func TestDirectoryStaleness(t *testing.T) {
	manifest := testManifest(config.StalenessDirectory)
	s := registeredStep(t, manifest)
	env := testEnv(t, manifest, &testutil.FakeRunner{})

	stale, err := s.IsStale(env)
	require.NoError(t, err)
	assert.True(t, stale, "no binaries directory yet")

	// An empty binaries directory reads as fresh even though the
	// triple-named artifact is absent. The coarse gate is intentional.
	require.NoError(t, env.Store.MkdirAll("binaries"))
	stale, err = s.IsStale(env)
	require.NoError(t, err)
	assert.False(t, stale)
}

func TestFileStaleness(t *testing.T) {
	manifest := testManifest(config.StalenessFile)
	s := registeredStep(t, manifest)
	env := testEnv(t, manifest, &testutil.FakeRunner{})

	require.NoError(t, env.Store.MkdirAll("binaries"))
	stale, err := s.IsStale(env)
	require.NoError(t, err)
	assert.True(t, stale, "directory alone does not satisfy the file policy")

	artifact := env.Store.Path(backend.ArtifactPath(manifest, triple))
	require.NoError(t, os.WriteFile(artifact, []byte("elf-bytes"), 0o755))
	stale, err = s.IsStale(env)
	require.NoError(t, err)
	assert.False(t, stale)

	// A different host triple still rebuilds.
	env.Triple = "aarch64-apple-darwin"
	stale, err = s.IsStale(env)
	require.NoError(t, err)
	assert.True(t, stale)
}
