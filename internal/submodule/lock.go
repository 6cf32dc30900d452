// Package submodule materializes pinned nested source trees before the
// steps that depend on them run. Revision selection itself is external:
// the lock file records what the repository pins, and the resolver only
// ensures the working trees exist at those pins.
package submodule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pin is one declared submodule: where it lives, which revision it is
// pinned to, and which tracked file proves the tree is materialized.
type Pin struct {
	Path     string `yaml:"path"`
	Revision string `yaml:"revision"`
	Marker   string `yaml:"marker"`
}

// Lock is the parsed submodule lock file.
type Lock struct {
	Submodules []Pin `yaml:"submodules"`
}

// LoadLock reads and validates the lock file at path.
func LoadLock(path string) (*Lock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading submodule lock: %w", err)
	}

	var lock Lock
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("parsing submodule lock %s: %w", path, err)
	}

	if len(lock.Submodules) == 0 {
		return nil, fmt.Errorf("submodule lock %s declares no submodules", path)
	}
	for i, pin := range lock.Submodules {
		if pin.Path == "" {
			return nil, fmt.Errorf("submodule lock %s: entry %d has no path", path, i)
		}
		if pin.Marker == "" {
			return nil, fmt.Errorf("submodule lock %s: entry %q has no marker", path, pin.Path)
		}
	}
	return &lock, nil
}

// Pin returns the declared pin for the given submodule path.
func (l *Lock) Pin(path string) (Pin, bool) {
	for _, pin := range l.Submodules {
		if pin.Path == path {
			return pin, true
		}
	}
	return Pin{}, false
}
