package config

import "context"

// Loader abstracts the concrete manifest format from the rest of the
// application. Load parses the manifest at path, applies defaults, and
// returns the validated model.
type Loader interface {
	Load(ctx context.Context, path string) (*Manifest, error)
}
