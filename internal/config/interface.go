package config

import (
	"context"
	"errors"

	"github.com/vk/taskgrid/internal/taskid"
)

// ErrNotFound is returned by a Loader when a package has no task
// configuration at all. Callers distinguish it from fatal load errors
// with errors.Is.
var ErrNotFound = errors.New("no task configuration found")

// Loader reads the task configuration of one package. Implementations
// may cache; a loader instance is only used within a single build.
type Loader interface {
	Load(ctx context.Context, pkg taskid.PackageName) (*Config, error)
}
