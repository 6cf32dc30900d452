package app

import "fmt"

// Top-level build targets.
const (
	TargetPrebuild = "prebuild"
	TargetBuild    = "build"
	TargetDev      = "dev"
	TargetFormat   = "format"
	TargetCheck    = "check"
	TargetClean    = "clean"
)

// Targets lists every invocable target, in help order.
var Targets = []string{TargetPrebuild, TargetBuild, TargetDev, TargetFormat, TargetCheck, TargetClean}

// Config holds everything an App instance needs to run one target.
type Config struct {
	// ManifestPath is the project manifest file.
	ManifestPath string
	// Target is the top-level target to run.
	Target string

	LogFormat   string
	LogLevel    string
	WorkerCount int
	// DryRun prints the execution plan without invoking any command.
	DryRun bool
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, fmt.Errorf("a manifest path is required")
	}
	if !knownTarget(cfg.Target) {
		return nil, fmt.Errorf("unknown target %q (expected one of %v)", cfg.Target, Targets)
	}
	return &cfg, nil
}

func knownTarget(target string) bool {
	for _, t := range Targets {
		if t == target {
			return true
		}
	}
	return false
}
