package taskdef

import (
	"fmt"

	"github.com/vk/taskgrid/internal/config"
)

// InvalidEnvPrefixError reports a "$"-prefixed entry in an environment
// variable list, which was never valid syntax there.
type InvalidEnvPrefixError struct {
	Field    string
	Value    string
	Location config.Location
}

func (e *InvalidEnvPrefixError) Error() string {
	return fmt.Sprintf(
		"%s: you specified %q in the %q key; environment variables must not be prefixed with %q",
		e.Location, e.Value, e.Field, EnvVarPrefix,
	)
}

// InvalidWithError reports a "with" entry using the topological prefix,
// which has no meaning for sibling tasks.
type InvalidWithError struct {
	Value    string
	Location config.Location
}

func (e *InvalidWithError) Error() string {
	return fmt.Sprintf(
		"%s: \"with\" tasks cannot use the topological dependency prefix %q: found %q",
		e.Location, TopologicalPrefix, e.Value,
	)
}

// InvalidDotEnvError reports an absolute path in the dotEnv list, which
// must hold paths relative to the package directory.
type InvalidDotEnvError struct {
	Value    string
	Location config.Location
}

func (e *InvalidDotEnvError) Error() string {
	return fmt.Sprintf("%s: dotEnv entries must be relative paths: found %q", e.Location, e.Value)
}
