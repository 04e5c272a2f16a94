package builder

import (
	"context"
	"errors"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/taskid"
)

// inheritanceResolver collects every task name visible to a workspace
// through its extends chain. A task-level "extends": false either
// removes a task entirely (no other configuration) or starts a fresh
// definition (other configuration present). Exclusions propagate up
// the chain: if B excludes a task from C and A extends B, A does not
// see the task unless it re-adds it.
type inheritanceResolver struct {
	loader config.Loader
	// validate checks that "extends": false names a task that actually
	// exists in the chain. Only the entry point validates; recursive
	// child resolvers skip it.
	validate bool
}

// resolutionState is shared across the recursive walk. The visited set
// spans the whole resolution to break extends cycles.
type resolutionState struct {
	tasks    map[taskid.TaskName]struct{}
	excluded map[taskid.TaskName]struct{}
	visited  map[taskid.PackageName]struct{}
}

func newInheritanceResolver(loader config.Loader) *inheritanceResolver {
	return &inheritanceResolver{loader: loader, validate: true}
}

// resolve returns all task names visible to the workspace.
func (r *inheritanceResolver) resolve(ctx context.Context, workspace taskid.PackageName) (map[taskid.TaskName]struct{}, error) {
	state := &resolutionState{
		tasks:    make(map[taskid.TaskName]struct{}),
		excluded: make(map[taskid.TaskName]struct{}),
		visited:  make(map[taskid.PackageName]struct{}),
	}
	if err := r.collectFromWorkspace(ctx, workspace, state); err != nil {
		return nil, err
	}
	return state.tasks, nil
}

func (r *inheritanceResolver) collectFromWorkspace(ctx context.Context, workspace taskid.PackageName, state *resolutionState) error {
	if _, ok := state.visited[workspace]; ok {
		return nil
	}
	state.visited[workspace] = struct{}{}

	cfg, err := r.loader.Load(ctx, workspace)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) && !workspace.IsRoot() {
			return r.collectFromWorkspace(ctx, taskid.Root, state)
		}
		return err
	}

	inherited, chainExclusions, err := r.collectFromExtendsChain(ctx, cfg, state)
	if err != nil {
		return err
	}

	if err := r.processLocalTasks(cfg, inherited, state); err != nil {
		return err
	}

	// Inherited tasks survive unless excluded somewhere along the way.
	for task := range inherited {
		if _, ok := state.excluded[task]; ok {
			continue
		}
		if _, ok := chainExclusions[task]; ok {
			continue
		}
		state.tasks[task] = struct{}{}
	}

	// Chain exclusions keep propagating towards the entry point.
	for task := range chainExclusions {
		state.excluded[task] = struct{}{}
	}

	return nil
}

func (r *inheritanceResolver) collectFromExtendsChain(ctx context.Context, cfg *config.Config, state *resolutionState) (inherited, exclusions map[taskid.TaskName]struct{}, err error) {
	inherited = make(map[taskid.TaskName]struct{})
	exclusions = make(map[taskid.TaskName]struct{})

	collect := func(pkg taskid.PackageName) error {
		child := &inheritanceResolver{loader: r.loader}
		childState := &resolutionState{
			tasks:    make(map[taskid.TaskName]struct{}),
			excluded: make(map[taskid.TaskName]struct{}),
			visited:  state.visited,
		}
		if err := child.collectFromWorkspace(ctx, pkg, childState); err != nil {
			return err
		}
		for task := range childState.tasks {
			inherited[task] = struct{}{}
		}
		for task := range childState.excluded {
			exclusions[task] = struct{}{}
		}
		return nil
	}

	for _, ext := range cfg.Extends {
		pkg := taskid.PackageName(ext)
		if _, ok := state.visited[pkg]; ok {
			continue
		}
		if err := collect(pkg); err != nil {
			return nil, nil, err
		}
	}

	// Fall back to root when there is no explicit extends list.
	if _, rootSeen := state.visited[taskid.Root]; len(cfg.Extends) == 0 && !rootSeen {
		if err := collect(taskid.Root); err != nil {
			return nil, nil, err
		}
	}

	return inherited, exclusions, nil
}

func (r *inheritanceResolver) processLocalTasks(cfg *config.Config, inherited map[taskid.TaskName]struct{}, state *resolutionState) error {
	for _, name := range cfg.TaskNames() {
		def := cfg.Tasks[name]
		if def.Extends != nil && !*def.Extends {
			if err := r.handleExcludedTask(cfg, name, def, inherited, state); err != nil {
				return err
			}
			continue
		}
		state.tasks[name] = struct{}{}
	}
	return nil
}

func (r *inheritanceResolver) handleExcludedTask(cfg *config.Config, name taskid.TaskName, def *config.RawTaskDefinition, inherited map[taskid.TaskName]struct{}, state *resolutionState) error {
	if r.validate {
		if _, ok := inherited[name]; !ok {
			available := make([]string, 0, len(inherited))
			for task := range inherited {
				available = append(available, task.String())
			}
			return &TaskNotInExtendsChainError{
				Task:           name.String(),
				ExtendsChain:   append([]string{}, cfg.Extends...),
				AvailableTasks: available,
				Location:       def.Source,
			}
		}
	}

	if def.HasConfigBeyondExtends() {
		// Clean-slate redefinition.
		state.tasks[name] = struct{}{}
	}
	state.excluded[name] = struct{}{}
	return nil
}
