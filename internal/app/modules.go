package app

import (
	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/steps/backend"
	"github.com/vk/bundleforge/steps/devserver"
	"github.com/vk/bundleforge/steps/icon"
	"github.com/vk/bundleforge/steps/outerdeps"
	"github.com/vk/bundleforge/steps/packager"
	"github.com/vk/bundleforge/steps/submodules"
	"github.com/vk/bundleforge/steps/webdeps"
	"github.com/vk/bundleforge/steps/webui"
)

// coreModules is the definitive list of step modules compiled into the
// bundleforge binary. The step set is fixed: the manifest configures
// paths and tools, never rules.
var coreModules = []registry.Module{
	&submodules.Module{},
	&outerdeps.Module{},
	&webdeps.Module{},
	&webui.Module{},
	&icon.Module{},
	&backend.Module{},
	&packager.Module{},
	&devserver.Module{},
}

// prebuildSteps is the fixed traversal of the prebuild target: everything
// needed to have all bundle artifacts present in the store.
func prebuildSteps() []string {
	return []string{submodules.ID, outerdeps.ID, webdeps.ID, webui.ID, icon.ID, backend.ID}
}
