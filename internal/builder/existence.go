package builder

import (
	"context"
	"errors"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/taskid"
)

// defResult is the outcome of looking for a task definition: absent,
// present, or explicitly excluded via "extends": false.
type defResult int

const (
	defNotFound defResult = iota
	defFound
	defExcluded
)

// hasTaskDefinitionInRepo reports whether any package in the
// repository defines the task.
func (b *EngineBuilder) hasTaskDefinitionInRepo(ctx context.Context, task taskid.TaskName) (bool, error) {
	for _, pkg := range b.pkgs.Packages() {
		id, ok := task.TaskID()
		if !ok {
			id = taskid.NewTaskID(pkg.Name, task.Task())
		}
		found, err := b.hasTaskDefinitionInRun(ctx, pkg.Name, task, id)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// hasTaskDefinitionInRun reports whether the workspace (or its extends
// chain) defines the task for this run.
func (b *EngineBuilder) hasTaskDefinitionInRun(ctx context.Context, workspace taskid.PackageName, task taskid.TaskName, id taskid.TaskID) (bool, error) {
	result, err := b.taskDefinitionResult(ctx, workspace, task, id, make(map[taskid.PackageName]struct{}))
	if err != nil {
		return false, err
	}
	return result == defFound, nil
}

func (b *EngineBuilder) taskDefinitionResult(ctx context.Context, workspace taskid.PackageName, task taskid.TaskName, id taskid.TaskID, visited map[taskid.PackageName]struct{}) (defResult, error) {
	// Cyclic extends cannot yield new definitions.
	if _, ok := visited[workspace]; ok {
		return defNotFound, nil
	}
	visited[workspace] = struct{}{}

	cfg, err := b.loader.Load(ctx, workspace)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) && !workspace.IsRoot() {
			// No config of its own: the root config applies.
			return b.taskDefinitionResult(ctx, taskid.Root, task, id, visited)
		}
		return defNotFound, err
	}

	// Try task keys in order of specificity: the full id, the name as
	// requested, then the bare task name. The bare name only applies in
	// the root config or the task's own package.
	def, ok := cfg.Tasks[id.AsTaskName()]
	if !ok {
		def, ok = cfg.Tasks[task]
	}
	if !ok && (workspace.IsRoot() || workspace == id.Package()) {
		def, ok = cfg.Tasks[id.AsUnscopedTaskName()]
	}
	if ok {
		if def.Extends != nil && !*def.Extends && !def.HasConfigBeyondExtends() {
			return defExcluded, nil
		}
		return defFound, nil
	}

	// Walk the extends chain; an exclusion anywhere wins over a
	// definition further up.
	for _, ext := range cfg.Extends {
		result, err := b.taskDefinitionResult(ctx, taskid.PackageName(ext), task, id, visited)
		if err != nil {
			return defNotFound, err
		}
		if result != defNotFound {
			return result, nil
		}
	}

	// Implicit root fallback only applies without an explicit extends
	// list.
	if len(cfg.Extends) == 0 && !workspace.IsRoot() {
		return b.taskDefinitionResult(ctx, taskid.Root, task, id, visited)
	}

	return defNotFound, nil
}
