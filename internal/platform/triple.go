package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/vk/bundleforge/internal/command"
	"github.com/vk/bundleforge/internal/ctxlog"
)

// tripleQuery is the toolchain introspection command. Its verbose version
// output contains a "host: <triple>" line.
var tripleQuery = command.Command{Name: "rustc", Args: []string{"-vV"}}

// HostTriple reports the target triple of the build host, used only for
// artifact naming. The toolchain is asked first; if it is unavailable or
// its output has no host line, a triple is derived from the runtime
// environment instead so naming never blocks a build.
func HostTriple(ctx context.Context, runner command.Runner) string {
	logger := ctxlog.FromContext(ctx)

	res, err := runner.Run(ctx, tripleQuery)
	if err == nil {
		if triple, ok := ParseHostTriple(string(res.Output)); ok {
			return triple
		}
		logger.Warn("Toolchain output had no host line, deriving triple from runtime.")
	} else {
		logger.Warn("Toolchain introspection failed, deriving triple from runtime.", "error", err)
	}

	return FallbackTriple(runtime.GOOS, runtime.GOARCH)
}

// ParseHostTriple extracts the triple from verbose toolchain output.
func ParseHostTriple(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if triple, ok := strings.CutPrefix(line, "host: "); ok && triple != "" {
			return triple, true
		}
	}
	return "", false
}

// FallbackTriple maps a GOOS/GOARCH pair onto the conventional triple for
// that system. Unknown pairs produce a synthetic but still unique
// "<arch>-<os>" string, preserving the no-collision property.
func FallbackTriple(goos, goarch string) string {
	arch := goarch
	switch goarch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i686"
	}

	switch goos {
	case "linux":
		return fmt.Sprintf("%s-unknown-linux-gnu", arch)
	case "darwin":
		return fmt.Sprintf("%s-apple-darwin", arch)
	case "windows":
		return fmt.Sprintf("%s-pc-windows-msvc", arch)
	default:
		return fmt.Sprintf("%s-%s", arch, goos)
	}
}
