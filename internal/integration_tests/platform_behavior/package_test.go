package platform_behavior_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bundleforge/internal/app"
	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/testutil"
	"github.com/vk/bundleforge/steps/packager"
)

func packagingCall(t *testing.T, calls []command.Command) command.Command {
	t.Helper()
	for _, c := range calls {
		if c.String() == "npx tauri build" {
			return c
		}
	}
	t.Fatal("no packaging invocation recorded")
	return command.Command{}
}

func TestBuildTargetPackagesAfterPrebuild(t *testing.T) {
	res := testutil.RunTarget(t, testutil.HarnessOptions{Target: app.TargetBuild})
	require.NoError(t, res.Err)

	lines := res.Runner.BuildCommandLines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "npx tauri build", lines[len(lines)-1],
		"packaging is the terminal step of the build target")
}

func TestPackagingStripOverride(t *testing.T) {
	// The override selection reads the real host classification, so the
	// full-pipeline assertion is platform-conditional.
	res := testutil.RunTarget(t, testutil.HarnessOptions{Target: app.TargetBuild})
	require.NoError(t, res.Err)

	call := packagingCall(t, res.Runner.Calls())
	if runtime.GOOS == "linux" {
		assert.Contains(t, call.Env, packager.StripOverride)
	} else {
		assert.NotContains(t, call.Env, packager.StripOverride)
	}
}

func TestPackagingRunsEveryTime(t *testing.T) {
	first := testutil.RunTarget(t, testutil.HarnessOptions{Target: app.TargetBuild})
	require.NoError(t, first.Err)

	second := testutil.RunTarget(t, testutil.HarnessOptions{
		Target: app.TargetBuild,
		Root:   first.Root,
	})
	require.NoError(t, second.Err)

	// All artifact steps converged; only packaging re-runs.
	assert.Equal(t, []string{"npx tauri build"}, second.Runner.BuildCommandLines())
}

func TestDevTargetLaunchesDevMode(t *testing.T) {
	res := testutil.RunTarget(t, testutil.HarnessOptions{Target: app.TargetDev})
	require.NoError(t, res.Err)

	lines := res.Runner.BuildCommandLines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "npx tauri dev", lines[len(lines)-1])
}

func TestArtifactNameCarriesHostTriple(t *testing.T) {
	res := testutil.RunTarget(t, testutil.HarnessOptions{Target: app.TargetPrebuild})
	require.NoError(t, res.Err)

	// The simulated toolchain always reports the same host.
	assert.FileExists(t, res.Root+"/binaries/demo-server-x86_64-unknown-linux-gnu")
}
