// Package platform classifies the build host and reports the toolchain
// target triple used for artifact naming. The classification is a closed
// set: hosts that match none of the known systems fall back to OtherUnix
// rather than failing, so platform-sensitive steps always have a command
// variant to select.
package platform

import "runtime"

// Platform is the host classification used to select command variants.
type Platform int

const (
	Linux Platform = iota
	MacOS
	Windows
	OtherUnix
)

// Detect classifies the current host from the runtime environment.
func Detect() Platform {
	return classify(runtime.GOOS)
}

func classify(goos string) Platform {
	switch goos {
	case "linux":
		return Linux
	case "darwin":
		return MacOS
	case "windows":
		return Windows
	default:
		return OtherUnix
	}
}

// String returns the canonical lowercase name of the platform.
func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case MacOS:
		return "macos"
	case Windows:
		return "windows"
	default:
		return "other-unix"
	}
}
