// Package config defines the format-agnostic project manifest model and the
// Loader interface that concrete format implementations (HCL today) satisfy.
// The manifest carries the filesystem layout contract of the build (where
// the nested source trees live and where artifacts land) plus tool names.
// It deliberately does not carry build rules: the step set and its
// dependency structure are fixed in Go.
package config
