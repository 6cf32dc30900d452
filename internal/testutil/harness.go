package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/bundleforge/internal/app"
	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/hcl"
)

// DefaultManifest is the manifest used by harness workspaces. The nested
// backend tree doubles as the submodule holding the web front-end, which
// matches the layout the orchestrator was built for.
const DefaultManifest = `
project {
  name = "demo"
}

web {
  dir = "core/webui"
}

icon {
  source = "app-icon.png"
  output = "icons/icon.png"
}

backend {
  dir         = "core"
  build       = ["make", "server"]
  output      = "dist/demo-server"
  binary_name = "demo-server"
}
`

// DefaultLock pins the single submodule of the default workspace.
const DefaultLock = `submodules:
  - path: core
    revision: 4f2b9c1
    marker: Makefile
`

// HarnessOptions configures one harness run.
type HarnessOptions struct {
	// Target is the top-level target to run. Required.
	Target string
	// Root reuses an existing workspace instead of creating one, so a
	// test can run several targets against the same state.
	Root string
	// Workers sets the executor worker count; 0 means 1.
	Workers int
	// DryRun plans without executing.
	DryRun bool
	// Manifest overrides DefaultManifest.
	Manifest string
	// Lock overrides DefaultLock.
	Lock string
	// Files holds extra workspace files (relative path -> content).
	Files map[string]string
	// OnRun overrides the runner behavior; defaults to Simulate.
	OnRun func(cmd command.Command) (*command.Result, error)
}

// HarnessResult holds the outcomes of a harness run.
type HarnessResult struct {
	Root      string
	Runner    *FakeRunner
	App       *app.App
	Err       error
	LogOutput string
	Summary   string
}

// NewWorkspace creates a temporary project workspace with the manifest,
// lock file, and icon source in place, plus any extra files.
func NewWorkspace(t *testing.T, opts HarnessOptions) string {
	t.Helper()
	root := t.TempDir()

	manifest := opts.Manifest
	if manifest == "" {
		manifest = DefaultManifest
	}
	lock := opts.Lock
	if lock == "" {
		lock = DefaultLock
	}

	files := map[string]string{
		"bundleforge.hcl":      manifest,
		"submodules.lock.yaml": lock,
		"app-icon.png":         "png-bytes",
	}
	for name, content := range opts.Files {
		files[name] = content
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// RunTarget runs one target through the full application against a fake
// runner and returns everything a test needs to assert on.
func RunTarget(t *testing.T, opts HarnessOptions) *HarnessResult {
	t.Helper()
	require.NotEmpty(t, opts.Target, "harness needs a target")

	root := opts.Root
	if root == "" {
		root = NewWorkspace(t, opts)
	}

	runner := &FakeRunner{OnRun: opts.OnRun}
	if runner.OnRun == nil {
		runner.OnRun = Simulate(root)
	}

	workers := opts.Workers
	if workers == 0 {
		workers = 1
	}

	appConfig, err := app.NewConfig(app.Config{
		ManifestPath: filepath.Join(root, "bundleforge.hcl"),
		Target:       opts.Target,
		LogFormat:    "text",
		LogLevel:     "debug",
		WorkerCount:  workers,
		DryRun:       opts.DryRun,
	})
	require.NoError(t, err)

	// Logs and the summary table share one writer, like the real CLI
	// sharing stdout.
	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl.NewLoader(), runner)
	}()
	if panicErr != nil {
		return &HarnessResult{
			Root:      root,
			Runner:    runner,
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			LogOutput: logBuffer.String(),
		}
	}

	runErr := testApp.Run(context.Background())
	return &HarnessResult{
		Root:      root,
		Runner:    runner,
		App:       testApp,
		Err:       runErr,
		LogOutput: logBuffer.String(),
		Summary:   logBuffer.String(),
	}
}
