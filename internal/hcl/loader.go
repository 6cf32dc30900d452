package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/bundleforge/internal/config"
	"github.com/vk/bundleforge/internal/ctxlog"
	"github.com/vk/bundleforge/internal/schema"
)

// Loader parses HCL manifests into the config model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a ready-to-use HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load implements config.Loader. The directory containing the manifest
// becomes Project.Root, anchoring every relative path in the model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing manifest.", "path", path)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, diags)
	}

	var root schema.Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, diags)
	}
	logger.Debug("Manifest decoded, translating into model.")

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest path: %w", err)
	}

	manifest, err := translate(&root, filepath.Dir(absPath))
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	logger.Debug("Manifest translated.", "project", manifest.Project.Name)
	return manifest, nil
}
