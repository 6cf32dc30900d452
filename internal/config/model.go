package config

// Staleness policies selectable per artifact in the manifest. The directory
// policy reproduces the coarse gate the build historically used for the
// backend binaries; the file policy checks the exact triple-named artifact.
const (
	StalenessDirectory = "directory"
	StalenessFile      = "file"
)

// Manifest is the unified, format-agnostic representation of the project
// manifest. All paths are relative to Project.Root unless absolute.
type Manifest struct {
	Project    Project
	Web        Web
	Icon       Icon
	Backend    Backend
	Submodules Submodules
	Tools      Tools
}

// Project identifies the bundle being assembled. Root is the directory the
// manifest was loaded from; it anchors the artifact store.
type Project struct {
	Name string
	Root string
}

// Web describes the nested web front-end sub-project.
type Web struct {
	// Dir is the nested web project root, typically inside a submodule.
	Dir string
	// OutputDir is the static-asset directory its build produces.
	OutputDir string
	// ModulesDir is the nested dependency-install output.
	ModulesDir string
	// OuterModulesDir is the top-level dependency-install output.
	OuterModulesDir string
}

// Icon describes the icon-generation input and output.
type Icon struct {
	// Source is the user-supplied source image, outside the artifact store.
	Source string
	// Output is the generated icon asset consumed by the packaging tool.
	Output string
}

// Backend describes the sidecar backend executable build.
type Backend struct {
	// Dir is the backend source tree, materialized as a submodule.
	Dir string
	// Build is the argv of the nested project's own build procedure,
	// run inside Dir.
	Build []string
	// Output is the executable the nested build produces, relative to Dir.
	Output string
	// BinariesDir is the artifact-store directory collecting the renamed
	// executables, one per target triple.
	BinariesDir string
	// BinaryName is the base artifact name; the host target triple is
	// appended as "-<triple>".
	BinaryName string
	// Staleness selects the rebuild gate: StalenessDirectory (presence of
	// BinariesDir) or StalenessFile (presence of the triple-named file).
	Staleness string
}

// Submodules points at the pinned-revision lock file.
type Submodules struct {
	LockFile string
}

// Tools names the external commands the orchestrator shells out to.
// Multi-word entries are argv prefixes.
type Tools struct {
	NPM       string
	Git       string
	Icon      []string
	Packager  []string
	Formatter []string
	Linter    []string
}
