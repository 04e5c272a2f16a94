// Package jsonconfig loads per-package task configuration from
// taskgrid.json files. Parsed configs are cached for the lifetime of
// the loader, which is one build.
package jsonconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/pkggraph"
	"github.com/vk/taskgrid/internal/taskid"
)

// ConfigFileName is the file each package's task configuration lives
// in.
const ConfigFileName = "taskgrid.json"

// Loader reads taskgrid.json files from package directories resolved
// through the package graph.
type Loader struct {
	repoRoot string
	pkgs     *pkggraph.Graph
	cache    map[taskid.PackageName]*config.Config
}

// New returns a loader rooted at the repository root.
func New(repoRoot string, pkgs *pkggraph.Graph) *Loader {
	return &Loader{
		repoRoot: repoRoot,
		pkgs:     pkgs,
		cache:    make(map[taskid.PackageName]*config.Config),
	}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, pkg taskid.PackageName) (*config.Config, error) {
	if cfg, ok := l.cache[pkg]; ok {
		return cfg, nil
	}

	dir, ok := l.pkgs.PackageDir(pkg)
	if !ok {
		return nil, fmt.Errorf("package %q: %w", pkg, config.ErrNotFound)
	}

	path := filepath.Join(l.repoRoot, dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, config.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	rel := filepath.Join(dir, ConfigFileName)
	cfg, err := Parse(data, rel)
	if err != nil {
		return nil, err
	}

	// Package-qualified task entries are only meaningful in the root
	// configuration.
	if !pkg.IsRoot() {
		for name := range cfg.Tasks {
			if name.IsPackageTask() {
				return nil, &PackageTaskError{Task: name.String(), File: rel}
			}
		}
	}

	ctxlog.FromContext(ctx).Debug("loaded task configuration", "package", pkg.String(), "file", rel, "tasks", len(cfg.Tasks))
	l.cache[pkg] = cfg
	return cfg, nil
}
