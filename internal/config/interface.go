package config

import "context"

// Loader is the interface for a format-specific project loader.
type Loader interface {
	// Load reads the project file at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Project, error)
}
