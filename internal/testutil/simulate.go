package testutil

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/vk/bundleforge/internal/command"
)

// Simulate returns an OnRun hook that behaves like the external tools of
// the default workspace: each simulated command materializes exactly the
// artifact its real counterpart would produce.
func Simulate(root string) func(cmd command.Command) (*command.Result, error) {
	return func(cmd command.Command) (*command.Result, error) {
		switch {
		case cmd.Name == "rustc":
			return &command.Result{Output: []byte("rustc 1.79.0\nhost: x86_64-unknown-linux-gnu\nrelease: 1.79.0\n")}, nil

		case cmd.Name == "git" && slices.Contains(cmd.Args, "submodule"):
			// Recursive init materializes the whole core tree.
			if err := os.MkdirAll(filepath.Join(root, "core", "webui"), 0o755); err != nil {
				return nil, err
			}
			if err := os.WriteFile(filepath.Join(root, "core", "Makefile"), []byte("server:\n"), 0o644); err != nil {
				return nil, err
			}

		case cmd.Name == "npm" && slices.Contains(cmd.Args, "install"):
			if err := os.MkdirAll(filepath.Join(cmd.Dir, "node_modules"), 0o755); err != nil {
				return nil, err
			}

		case cmd.Name == "npm" && slices.Contains(cmd.Args, "build"):
			if err := os.MkdirAll(filepath.Join(cmd.Dir, "dist"), 0o755); err != nil {
				return nil, err
			}

		case cmd.Name == "npx" && slices.Contains(cmd.Args, "icon"):
			iconPath := filepath.Join(root, "icons", "icon.png")
			if err := os.MkdirAll(filepath.Dir(iconPath), 0o755); err != nil {
				return nil, err
			}
			if err := os.WriteFile(iconPath, []byte("icon-bytes"), 0o644); err != nil {
				return nil, err
			}

		case cmd.Name == "make":
			exePath := filepath.Join(cmd.Dir, "dist", "demo-server")
			if err := os.MkdirAll(filepath.Dir(exePath), 0o755); err != nil {
				return nil, err
			}
			if err := os.WriteFile(exePath, []byte("elf-bytes"), 0o755); err != nil {
				return nil, err
			}
		}
		return &command.Result{}, nil
	}
}
