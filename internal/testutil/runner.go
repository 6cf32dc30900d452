package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/vk/bundleforge/internal/command"
)

// FakeRunner records every command it is asked to run. An optional OnRun
// hook decides the outcome, letting tests materialize artifacts or
// simulate tool failures; without a hook every command succeeds silently.
type FakeRunner struct {
	mu    sync.Mutex
	calls []command.Command

	OnRun func(cmd command.Command) (*command.Result, error)
}

// Run implements command.Runner.
func (f *FakeRunner) Run(ctx context.Context, cmd command.Command) (*command.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.OnRun != nil {
		return f.OnRun(cmd)
	}
	return &command.Result{}, nil
}

// Calls returns a copy of every recorded command.
func (f *FakeRunner) Calls() []command.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]command.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// CommandLines returns the recorded commands rendered as command lines.
func (f *FakeRunner) CommandLines() []string {
	calls := f.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.String())
	}
	return out
}

// BuildCommandLines returns the recorded command lines minus the
// toolchain introspection query, which is a version probe rather than a
// build invocation.
func (f *FakeRunner) BuildCommandLines() []string {
	var out []string
	for _, line := range f.CommandLines() {
		if strings.HasPrefix(line, "rustc ") {
			continue
		}
		out = append(out, line)
	}
	return out
}
