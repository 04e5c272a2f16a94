// Package memconfig provides a map-backed config.Loader, used by tests
// and by callers that assemble configuration programmatically.
package memconfig

import (
	"context"
	"fmt"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/taskid"
)

// Loader serves pre-parsed configs from memory. Packages without an
// entry report config.ErrNotFound.
type Loader struct {
	configs map[taskid.PackageName]*config.Config
}

// New returns a loader over the given configs. The map is used as-is.
func New(configs map[taskid.PackageName]*config.Config) *Loader {
	if configs == nil {
		configs = make(map[taskid.PackageName]*config.Config)
	}
	return &Loader{configs: configs}
}

// Add registers or replaces the config for a package.
func (l *Loader) Add(pkg taskid.PackageName, cfg *config.Config) {
	l.configs[pkg] = cfg
}

// Load implements config.Loader.
func (l *Loader) Load(_ context.Context, pkg taskid.PackageName) (*config.Config, error) {
	cfg, ok := l.configs[pkg]
	if !ok {
		return nil, fmt.Errorf("package %q: %w", pkg, config.ErrNotFound)
	}
	return cfg, nil
}
