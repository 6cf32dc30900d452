package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/vk/bundleforge/internal/ctxlog"
)

// Runner executes external commands. Implementations must be safe for
// sequential reuse; the system implementation is also safe for concurrent
// use by independent steps.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// SystemRunner runs commands on the host via os/exec, streaming their
// output through the configured writers while capturing a combined copy
// for error reporting.
type SystemRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewSystemRunner creates a runner streaming to the given writers. Nil
// writers default to the process's own stdout and stderr.
func NewSystemRunner(stdout, stderr io.Writer) *SystemRunner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &SystemRunner{Stdout: stdout, Stderr: stderr}
}

// Run starts the command and waits for it to finish. A non-zero exit is
// returned as an error alongside a Result carrying the exit code and the
// tool's own output; a missing executable is reported as ErrToolMissing.
func (r *SystemRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Invoking external command.", "command", cmd.String(), "dir", cmd.Dir)

	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	execCmd.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		execCmd.Env = append(os.Environ(), cmd.Env...)
	}

	var combined bytes.Buffer
	execCmd.Stdout = io.MultiWriter(r.Stdout, &combined)
	execCmd.Stderr = io.MultiWriter(r.Stderr, &combined)

	err := execCmd.Run()
	if err == nil {
		return &Result{ExitCode: 0, Output: combined.Bytes()}, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrToolMissing, cmd.Name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res := &Result{ExitCode: exitErr.ExitCode(), Output: combined.Bytes()}
		return res, fmt.Errorf("%s exited with code %d", cmd.Name, res.ExitCode)
	}

	return nil, fmt.Errorf("running %s: %w", cmd.Name, err)
}
