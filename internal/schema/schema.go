// Package schema declares the HCL surface of the project manifest. These
// structs mirror the manifest blocks one-to-one and exist solely for gohcl
// decoding; translation into the format-agnostic model lives in the hcl
// package.
package schema

import "github.com/hashicorp/hcl/v2"

// Manifest is the root of a bundleforge.hcl file.
type Manifest struct {
	Project    *Project    `hcl:"project,block"`
	Web        *Web        `hcl:"web,block"`
	Icon       *Icon       `hcl:"icon,block"`
	Backend    *Backend    `hcl:"backend,block"`
	Submodules *Submodules `hcl:"submodules,block"`
	Tools      *Tools      `hcl:"tools,block"`
}

// Project is the `project` block.
type Project struct {
	Name string `hcl:"name"`
}

// Web is the `web` block describing the nested front-end project.
type Web struct {
	Dir             string `hcl:"dir"`
	OutputDir       string `hcl:"output_dir,optional"`
	ModulesDir      string `hcl:"modules_dir,optional"`
	OuterModulesDir string `hcl:"outer_modules_dir,optional"`
}

// Icon is the `icon` block.
type Icon struct {
	Source string `hcl:"source,optional"`
	Output string `hcl:"output"`
}

// Backend is the `backend` block describing the sidecar executable build.
type Backend struct {
	Dir         string   `hcl:"dir"`
	Build       []string `hcl:"build"`
	Output      string   `hcl:"output"`
	BinariesDir string   `hcl:"binaries_dir,optional"`
	BinaryName  string   `hcl:"binary_name"`
	Staleness   string   `hcl:"staleness,optional"`
}

// Submodules is the `submodules` block.
type Submodules struct {
	LockFile string `hcl:"lock_file,optional"`
}

// Tools is the `tools` block. Its attributes are intentionally open-ended:
// each entry is either a string (a bare command) or a list of strings (an
// argv prefix), so the body is kept raw and evaluated during translation.
type Tools struct {
	Remain hcl.Body `hcl:",remain"`
}
