// Package hcl provides the concrete HCL implementation of the manifest
// loading interface defined in the `config` package. It is responsible for
// file parsing, attribute evaluation, defaulting, and translation of the
// HCL schema into the format-agnostic model.
package hcl
