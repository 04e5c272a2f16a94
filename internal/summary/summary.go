// Package summary renders a sealed task graph as a dry-run JSON plan:
// every task with its package directory, resolved definition, and
// direct dependency lists.
package summary

import (
	"github.com/tidwall/sjson"

	"github.com/vk/taskgrid/internal/engine"
	"github.com/vk/taskgrid/internal/pkggraph"
	"github.com/vk/taskgrid/internal/taskid"
)

// Render produces the JSON plan. Tasks appear sorted by id, so the
// output is stable across runs.
func Render(eng *engine.Engine, pkgs *pkggraph.Graph) ([]byte, error) {
	out := []byte(`{"tasks":[]}`)

	var err error
	set := func(doc []byte, path string, value any) []byte {
		if err != nil {
			return doc
		}
		doc, err = sjson.SetBytes(doc, path, value)
		return doc
	}

	for _, id := range eng.TaskIDs() {
		entry := []byte(`{}`)
		entry = set(entry, "taskId", id.String())
		entry = set(entry, "package", id.Package().String())
		entry = set(entry, "task", id.Task())

		if dir, ok := pkgs.PackageDir(id.Package()); ok {
			entry = set(entry, "directory", dir)
		}

		entry = set(entry, "dependencies", idStrings(eng.Dependencies(id)))
		entry = set(entry, "dependents", idStrings(eng.Dependents(id)))

		if def, ok := eng.TaskDefinition(id); ok {
			entry = set(entry, "resolvedTaskDefinition.cache", def.Cache)
			entry = set(entry, "resolvedTaskDefinition.taskDependencies", nameStrings(def.TaskDependencies))
			entry = set(entry, "resolvedTaskDefinition.topologicalDependencies", nameStrings(def.TopologicalDependencies))
			entry = set(entry, "resolvedTaskDefinition.env", emptyNotNull(def.Env))
			if def.PassThroughEnv != nil {
				entry = set(entry, "resolvedTaskDefinition.passThroughEnv", emptyNotNull(def.PassThroughEnv))
			}
			entry = set(entry, "resolvedTaskDefinition.dotEnv", emptyNotNull(def.DotEnv))
			entry = set(entry, "resolvedTaskDefinition.inputs", emptyNotNull(def.Inputs))
			entry = set(entry, "resolvedTaskDefinition.outputs.inclusions", emptyNotNull(def.Outputs.Inclusions))
			entry = set(entry, "resolvedTaskDefinition.outputs.exclusions", emptyNotNull(def.Outputs.Exclusions))
			entry = set(entry, "resolvedTaskDefinition.outputMode", def.OutputMode.String())
			entry = set(entry, "resolvedTaskDefinition.persistent", def.Persistent)
			entry = set(entry, "resolvedTaskDefinition.with", nameStrings(def.With))
		}

		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRawBytes(out, "tasks.-1", entry)
		if err != nil {
			return nil, err
		}
	}

	return out, err
}

func idStrings(ids []taskid.TaskID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func nameStrings(names []taskid.TaskName) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, name.String())
	}
	return out
}

// emptyNotNull keeps empty lists as [] rather than null in the output.
func emptyNotNull(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
