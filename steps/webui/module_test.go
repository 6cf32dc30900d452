package webui_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/internal/step"
	"github.com/vk/bundleforge/internal/store"
	"github.com/vk/bundleforge/internal/testutil"
	"github.com/vk/bundleforge/steps/webdeps"
	"github.com/vk/bundleforge/steps/webui"
)

func testManifest() *config.Manifest {
	return &config.Manifest{
		Web: config.Web{
			Dir:       "core/webui",
			OutputDir: "core/webui/dist",
		},
		Tools: config.Tools{NPM: "npm"},
	}
}

func registeredStep(t *testing.T) *step.Step {
	t.Helper()
	r := registry.New()
	(&webui.Module{}).Register(r, testManifest())
	s, ok := r.Step(webui.ID)
	require.True(t, ok)
	return s
}

func TestRegistration(t *testing.T) {
	s := registeredStep(t)
	assert.Equal(t, []string{webdeps.ID}, s.Needs)
	assert.Equal(t, []string{"core/webui/dist"}, s.Outputs)
}

func TestRunInvokesNestedBuild(t *testing.T) {
	s := registeredStep(t)
	runner := &testutil.FakeRunner{}
	env := &step.Env{Manifest: testManifest(), Store: store.New(t.TempDir()), Runner: runner}

	require.NoError(t, s.Run(context.Background(), env))

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "npm run build", calls[0].String())
	assert.Equal(t, env.Store.Path("core/webui"), calls[0].Dir)
}

func TestRunWrapsBuildFailure(t *testing.T) {
	s := registeredStep(t)
	runner := &testutil.FakeRunner{OnRun: func(cmd command.Command) (*command.Result, error) {
		return &command.Result{ExitCode: 1}, assert.AnError
	}}
	env := &step.Env{Manifest: testManifest(), Store: store.New(t.TempDir()), Runner: runner}

	err := s.Run(context.Background(), env)
	assert.ErrorIs(t, err, step.ErrSubBuildFailure)
}

func TestStalenessGatesOnOutputDir(t *testing.T) {
	s := registeredStep(t)
	env := &step.Env{Manifest: testManifest(), Store: store.New(t.TempDir())}

	stale, err := s.IsStale(env)
	require.NoError(t, err)
	assert.True(t, stale)

	require.NoError(t, env.Store.MkdirAll("core/webui/dist"))
	stale, err = s.IsStale(env)
	require.NoError(t, err)
	assert.False(t, stale, "an existing output directory suppresses the rebuild")
}
