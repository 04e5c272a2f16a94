package taskdef

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/taskid"
)

// TaskOutputs is the resolved outputs field, split into inclusion and
// exclusion globs. Both lists are sorted.
type TaskOutputs struct {
	Inclusions []string
	Exclusions []string
}

// TaskDefinition is the complete, defaulted definition of one task after
// the extends chain has been merged and resolved.
type TaskDefinition struct {
	Cache                   bool
	TaskDependencies        []taskid.TaskName
	TopologicalDependencies []taskid.TaskName
	Env                     []string
	PassThroughEnv          []string
	DotEnv                  []string
	Inputs                  []string
	Outputs                 TaskOutputs
	OutputMode              config.OutputMode
	Persistent              bool
	With                    []taskid.TaskName
}

// Resolve applies defaults and decodes the prefixed dependsOn syntax,
// producing the final definition. "$VAR" entries in dependsOn still work
// but log a deprecation warning and fold into env. Absolute glob
// patterns log a warning since they can never usefully match.
func (def *ProcessedTaskDefinition) Resolve(ctx context.Context) (*TaskDefinition, error) {
	log := ctxlog.FromContext(ctx)

	resolved := &TaskDefinition{
		Cache:      true,
		OutputMode: config.OutputModeFull,
	}
	if def.Cache != nil {
		resolved.Cache = *def.Cache
	}
	if def.Persistent != nil {
		resolved.Persistent = *def.Persistent
	}
	if def.OutputMode != nil {
		resolved.OutputMode = *def.OutputMode
	}

	env := append([]string{}, def.Env...)
	for _, dep := range def.DependsOn {
		switch {
		case strings.HasPrefix(dep, TopologicalPrefix):
			name := taskid.ParseTaskName(strings.TrimPrefix(dep, TopologicalPrefix))
			resolved.TopologicalDependencies = append(resolved.TopologicalDependencies, name)
		case strings.HasPrefix(dep, EnvVarPrefix):
			log.Warn("deprecated \"$\" syntax in dependsOn; declare the variable in the \"env\" key instead",
				"entry", dep,
				"source", def.Source.String(),
			)
			env = append(env, strings.TrimPrefix(dep, EnvVarPrefix))
		default:
			resolved.TaskDependencies = append(resolved.TaskDependencies, taskid.ParseTaskName(dep))
		}
	}
	sortTaskNames(resolved.TaskDependencies)
	sortTaskNames(resolved.TopologicalDependencies)
	resolved.Env = sortedUnique(env)

	if def.PassThroughEnv != nil {
		resolved.PassThroughEnv = sortedUnique(def.PassThroughEnv)
	}

	for _, entry := range def.DotEnv {
		if filepath.IsAbs(entry) {
			return nil, &InvalidDotEnvError{Value: entry, Location: def.Source}
		}
	}
	resolved.DotEnv = append([]string{}, def.DotEnv...)

	if def.Inputs != nil {
		resolved.Inputs = make([]string, 0, len(def.Inputs))
		for _, g := range def.Inputs {
			warnAbsoluteGlob(log, "inputs", g, def.Source)
			resolved.Inputs = append(resolved.Inputs, g.String())
		}
	}

	for _, g := range def.Outputs {
		warnAbsoluteGlob(log, "outputs", g, def.Source)
		if g.Negated {
			resolved.Outputs.Exclusions = append(resolved.Outputs.Exclusions, g.Pattern)
		} else {
			resolved.Outputs.Inclusions = append(resolved.Outputs.Inclusions, g.Pattern)
		}
	}
	sort.Strings(resolved.Outputs.Inclusions)
	sort.Strings(resolved.Outputs.Exclusions)

	resolved.With = append([]taskid.TaskName{}, def.With...)

	return resolved, nil
}

func warnAbsoluteGlob(log *slog.Logger, field string, g Glob, loc config.Location) {
	if filepath.IsAbs(g.Pattern) {
		log.Warn("absolute path found in glob pattern; these will not work and should be removed",
			"field", field,
			"pattern", g.Pattern,
			"source", loc.String(),
		)
	}
}

func sortTaskNames(names []taskid.TaskName) {
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })
}

func sortedUnique(in []string) []string {
	out := append([]string{}, in...)
	sort.Strings(out)
	return slices.Compact(out)
}
