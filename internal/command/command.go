// Package command models the synchronous invocation of external build
// tools. A Command is a plain value describing one process; the Runner
// interface executes it and reports pass/fail plus captured output. Steps
// and tests depend only on Runner, so the whole pipeline can run against a
// recording fake.
package command

import (
	"errors"
	"strings"
)

// ErrToolMissing marks a command whose executable could not be found on
// the host. Callers treat this as fatal: the orchestrator never attempts
// to install tools itself.
var ErrToolMissing = errors.New("required tool is not installed")

// Command describes a single external process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the caller's.
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the inherited process
	// environment.
	Env []string
}

// FromArgv builds a Command from an argv prefix (as configured in the
// manifest tools block) plus trailing arguments.
func FromArgv(argv []string, args ...string) Command {
	c := Command{Name: argv[0]}
	c.Args = append(c.Args, argv[1:]...)
	c.Args = append(c.Args, args...)
	return c
}

// String renders the command line for logging.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is the observable outcome of a completed command.
type Result struct {
	ExitCode int
	// Output is the combined stdout and stderr, in arrival order.
	Output []byte
}
