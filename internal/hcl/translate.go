package hcl

import (
	"fmt"
	"path"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/schema"
)

// translate converts the decoded HCL schema into the agnostic model,
// applying defaults and rejecting invalid settings.
func translate(root *schema.Manifest, projectRoot string) (*config.Manifest, error) {
	if root.Project == nil || root.Project.Name == "" {
		return nil, fmt.Errorf("a project block with a name is required")
	}
	if root.Web == nil {
		return nil, fmt.Errorf("a web block is required")
	}
	if root.Icon == nil {
		return nil, fmt.Errorf("an icon block is required")
	}
	if root.Backend == nil {
		return nil, fmt.Errorf("a backend block is required")
	}

	m := &config.Manifest{
		Project: config.Project{
			Name: root.Project.Name,
			Root: projectRoot,
		},
		Web: config.Web{
			Dir:             root.Web.Dir,
			OutputDir:       root.Web.OutputDir,
			ModulesDir:      root.Web.ModulesDir,
			OuterModulesDir: root.Web.OuterModulesDir,
		},
		Icon: config.Icon{
			Source: root.Icon.Source,
			Output: root.Icon.Output,
		},
		Backend: config.Backend{
			Dir:         root.Backend.Dir,
			Build:       root.Backend.Build,
			Output:      root.Backend.Output,
			BinariesDir: root.Backend.BinariesDir,
			BinaryName:  root.Backend.BinaryName,
			Staleness:   root.Backend.Staleness,
		},
	}

	if m.Web.Dir == "" {
		return nil, fmt.Errorf("web.dir is required")
	}
	if m.Web.OutputDir == "" {
		m.Web.OutputDir = path.Join(m.Web.Dir, "dist")
	}
	if m.Web.ModulesDir == "" {
		m.Web.ModulesDir = path.Join(m.Web.Dir, "node_modules")
	}
	if m.Web.OuterModulesDir == "" {
		m.Web.OuterModulesDir = "node_modules"
	}

	if m.Icon.Source == "" {
		m.Icon.Source = "app-icon.png"
	}
	if m.Icon.Output == "" {
		return nil, fmt.Errorf("icon.output is required")
	}

	if m.Backend.Dir == "" {
		return nil, fmt.Errorf("backend.dir is required")
	}
	if len(m.Backend.Build) == 0 {
		return nil, fmt.Errorf("backend.build is required")
	}
	if m.Backend.Output == "" {
		return nil, fmt.Errorf("backend.output is required")
	}
	if m.Backend.BinaryName == "" {
		return nil, fmt.Errorf("backend.binary_name is required")
	}
	if m.Backend.BinariesDir == "" {
		m.Backend.BinariesDir = "binaries"
	}
	switch m.Backend.Staleness {
	case "":
		m.Backend.Staleness = config.StalenessDirectory
	case config.StalenessDirectory, config.StalenessFile:
	default:
		return nil, fmt.Errorf("backend.staleness must be %q or %q, got %q",
			config.StalenessDirectory, config.StalenessFile, m.Backend.Staleness)
	}

	m.Submodules.LockFile = "submodules.lock.yaml"
	if root.Submodules != nil && root.Submodules.LockFile != "" {
		m.Submodules.LockFile = root.Submodules.LockFile
	}

	tools, err := translateTools(root.Tools)
	if err != nil {
		return nil, err
	}
	m.Tools = tools

	return m, nil
}

// translateTools evaluates the open-ended attributes of the tools block.
// Every attribute must evaluate to a string or a list of strings.
func translateTools(block *schema.Tools) (config.Tools, error) {
	tools := config.Tools{
		NPM:       "npm",
		Git:       "git",
		Icon:      []string{"npx", "tauri", "icon"},
		Packager:  []string{"npx", "tauri"},
		Formatter: []string{"cargo", "fmt"},
		Linter:    []string{"cargo", "clippy"},
	}
	if block == nil || block.Remain == nil {
		return tools, nil
	}

	attrs, diags := block.Remain.JustAttributes()
	if diags.HasErrors() {
		return tools, fmt.Errorf("reading tools block: %w", diags)
	}

	// Deterministic iteration keeps error messages stable.
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		argv, err := argvAttribute(attrs[name])
		if err != nil {
			return tools, err
		}
		switch name {
		case "npm":
			tools.NPM = argv[0]
		case "git":
			tools.Git = argv[0]
		case "icon":
			tools.Icon = argv
		case "packager":
			tools.Packager = argv
		case "formatter":
			tools.Formatter = argv
		case "linter":
			tools.Linter = argv
		default:
			return tools, fmt.Errorf("tools block has unknown attribute %q", name)
		}
	}
	return tools, nil
}

// argvAttribute evaluates an attribute to a non-empty argv slice.
func argvAttribute(attr *hcl.Attribute) ([]string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluating tools.%s: %w", attr.Name, diags)
	}

	if val.Type() == cty.String {
		return []string{val.AsString()}, nil
	}

	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("tools.%s must be a string or list of strings: %w", attr.Name, err)
	}
	var argv []string
	for it := listVal.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		argv = append(argv, elem.AsString())
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("tools.%s must not be empty", attr.Name)
	}
	return argv, nil
}
