// Package taskdef turns raw task entries into validated per-source
// definitions, merges them along an extends chain, and resolves the
// merged result into a complete task definition with defaults applied.
package taskdef

import (
	"strings"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/taskid"
)

const (
	// TopologicalPrefix marks a dependsOn entry that targets the same
	// task in each immediate dependency package.
	TopologicalPrefix = "^"

	// EnvVarPrefix is the deprecated dependsOn syntax for declaring an
	// environment variable dependency.
	EnvVarPrefix = "$"

	// ExclusionPrefix marks an output glob as an exclusion.
	ExclusionPrefix = "!"
)

// Glob is a single inputs/outputs pattern with its exclusion flag split
// off. Pattern matching itself is out of scope; globs are carried as
// validated strings.
type Glob struct {
	Pattern string
	Negated bool
}

// ParseGlob splits the leading "!" off a raw glob.
func ParseGlob(raw string) Glob {
	if rest, ok := strings.CutPrefix(raw, ExclusionPrefix); ok {
		return Glob{Pattern: rest, Negated: true}
	}
	return Glob{Pattern: raw}
}

func (g Glob) String() string {
	if g.Negated {
		return ExclusionPrefix + g.Pattern
	}
	return g.Pattern
}

// ProcessedTaskDefinition is a validated per-source partial definition.
// Nil fields are still "unset"; merge fills them from other sources in
// the extends chain.
type ProcessedTaskDefinition struct {
	Extends        *bool
	Cache          *bool
	DependsOn      []string
	DotEnv         []string
	Env            []string
	PassThroughEnv []string
	Persistent     *bool
	Inputs         []Glob
	Outputs        []Glob
	OutputMode     *config.OutputMode
	With           []taskid.TaskName

	Source config.Location
}

// FromRaw validates a raw entry into a processed definition. Environment
// fields must not use the "$" prefix, and with entries must not use "^".
func FromRaw(raw *config.RawTaskDefinition) (*ProcessedTaskDefinition, error) {
	def := &ProcessedTaskDefinition{
		Extends:    raw.Extends,
		Cache:      raw.Cache,
		Persistent: raw.Persistent,
		OutputMode: raw.OutputMode,
		Source:     raw.Source,
	}

	if raw.DependsOn != nil {
		def.DependsOn = append([]string{}, raw.DependsOn...)
	}
	if raw.DotEnv != nil {
		def.DotEnv = append([]string{}, raw.DotEnv...)
	}

	if raw.Env != nil {
		env, err := checkEnvVars(raw.Env, "env", raw.Source)
		if err != nil {
			return nil, err
		}
		def.Env = env
	}
	if raw.PassThroughEnv != nil {
		env, err := checkEnvVars(raw.PassThroughEnv, "passThroughEnv", raw.Source)
		if err != nil {
			return nil, err
		}
		def.PassThroughEnv = env
	}

	if raw.Inputs != nil {
		def.Inputs = parseGlobs(raw.Inputs)
	}
	if raw.Outputs != nil {
		def.Outputs = parseGlobs(raw.Outputs)
	}

	if raw.With != nil {
		def.With = make([]taskid.TaskName, 0, len(raw.With))
		for _, w := range raw.With {
			if strings.HasPrefix(w, TopologicalPrefix) {
				return nil, &InvalidWithError{Value: w, Location: raw.Source}
			}
			def.With = append(def.With, taskid.ParseTaskName(w))
		}
	}

	return def, nil
}

func checkEnvVars(vars []string, field string, loc config.Location) ([]string, error) {
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		if strings.HasPrefix(v, EnvVarPrefix) {
			return nil, &InvalidEnvPrefixError{Field: field, Value: v, Location: loc}
		}
		out = append(out, v)
	}
	return out, nil
}

func parseGlobs(raw []string) []Glob {
	out := make([]Glob, 0, len(raw))
	for _, r := range raw {
		out = append(out, ParseGlob(r))
	}
	return out
}
