package builder

import (
	"context"
	"sort"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/engine"
	"github.com/vk/taskgrid/internal/pkggraph"
	"github.com/vk/taskgrid/internal/taskdef"
	"github.com/vk/taskgrid/internal/taskid"
)

// EngineBuilder assembles a sealed task graph from the package graph,
// a configuration loader, and the requested workspaces and tasks.
type EngineBuilder struct {
	pkgs             *pkggraph.Graph
	loader           config.Loader
	workspaces       []taskid.PackageName
	tasks            []taskid.TaskName
	rootEnabledTasks map[taskid.TaskName]struct{}
	tasksOnly        bool
	addAllTasks      bool
	shouldValidate   bool
}

// New returns a builder with validation enabled and nothing selected.
func New(pkgs *pkggraph.Graph, loader config.Loader) *EngineBuilder {
	return &EngineBuilder{
		pkgs:             pkgs,
		loader:           loader,
		rootEnabledTasks: make(map[taskid.TaskName]struct{}),
		shouldValidate:   true,
	}
}

// WithWorkspaces sets the workspaces tasks are seeded from.
func (b *EngineBuilder) WithWorkspaces(workspaces []taskid.PackageName) *EngineBuilder {
	b.workspaces = workspaces
	return b
}

// WithTasks sets the requested task names.
func (b *EngineBuilder) WithTasks(tasks []taskid.TaskName) *EngineBuilder {
	b.tasks = tasks
	return b
}

// WithRootTasks marks which tasks may run in the root package. Only
// names qualified with the root package are kept.
func (b *EngineBuilder) WithRootTasks(tasks []taskid.TaskName) *EngineBuilder {
	for _, task := range tasks {
		if pkg, ok := task.Package(); ok && pkg.IsRoot() {
			b.rootEnabledTasks[task.Unscoped()] = struct{}{}
		}
	}
	return b
}

// WithTasksOnly restricts the graph to exactly the requested tasks in
// the requested workspaces, dropping dependency edges that leave that
// set.
func (b *EngineBuilder) WithTasksOnly() *EngineBuilder {
	b.tasksOnly = true
	return b
}

// WithAllTasks seeds every task visible to any requested workspace
// instead of an explicit task list.
func (b *EngineBuilder) WithAllTasks() *EngineBuilder {
	b.addAllTasks = true
	return b
}

// WithoutValidation skips the check that every expanded task resolves
// to a definition. Cycle detection still runs.
func (b *EngineBuilder) WithoutValidation() *EngineBuilder {
	b.shouldValidate = false
	return b
}

// allowedTasks returns the exact task ids permitted in tasks-only
// mode: the product of requested workspaces and tasks.
func (b *EngineBuilder) allowedTasks() map[taskid.TaskID]struct{} {
	if !b.tasksOnly {
		return nil
	}
	allowed := make(map[taskid.TaskID]struct{})
	for _, workspace := range b.workspaces {
		for _, task := range b.tasks {
			id, ok := task.TaskID()
			if !ok {
				id = taskid.NewTaskID(workspace, task.Task())
			}
			allowed[id] = struct{}{}
		}
	}
	return allowed
}

// Build runs the full construction: seeding, breadth-first expansion,
// cycle validation, sealing.
func (b *EngineBuilder) Build(ctx context.Context) (*engine.Engine, error) {
	logger := ctxlog.FromContext(ctx)

	// Nothing selected means an empty, valid graph.
	if len(b.workspaces) == 0 {
		return engine.NewBuilding().Seal(), nil
	}

	tasks := b.tasks
	if b.addAllTasks {
		var err error
		if tasks, err = b.gatherAllTasks(ctx); err != nil {
			return nil, err
		}
	}
	logger.Debug("seeding task graph", "workspaces", len(b.workspaces), "tasks", len(tasks))

	missing := make(map[string]taskid.TaskName, len(b.tasks))
	for _, task := range b.tasks {
		missing[task.String()] = task
	}

	var queue []taskid.TaskID
	for _, workspace := range b.workspaces {
		for _, task := range tasks {
			id, ok := task.TaskID()
			if !ok {
				id = taskid.NewTaskID(workspace, task.Task())
			}

			found, err := b.hasTaskDefinitionInRun(ctx, workspace, task, id)
			if err != nil {
				return nil, err
			}
			if !found {
				continue
			}
			delete(missing, task.String())

			// A found definition only seeds the graph from non-root
			// workspaces, unless the task is explicitly root-enabled.
			_, rootEnabled := b.rootEnabledTasks[task]
			if !workspace.IsRoot() || rootEnabled {
				queue = append(queue, id)
			}
		}
	}

	// Requested tasks absent from this run may still exist elsewhere in
	// the repository; only tasks defined nowhere are an error.
	for name, task := range missing {
		found, err := b.hasTaskDefinitionInRepo(ctx, task)
		if err != nil {
			return nil, err
		}
		if found {
			delete(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, b.missingTasksError(missing)
	}

	allowed := b.allowedTasks()
	visited := make(map[taskid.TaskID]struct{})
	building := engine.NewBuilding()

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if id.IsRoot() {
			if err := b.checkRootTaskAllowed(ctx, id); err != nil {
				return nil, err
			}
		}

		if err := validateTaskName(id.Task()); err != nil {
			return nil, err
		}

		if !id.IsRoot() && !b.pkgs.HasPackage(id.Package()) {
			return nil, &MissingPackageFromTaskError{
				Package: id.Package().String(),
				TaskID:  id.String(),
			}
		}

		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}

		def, loc, err := b.taskDefinition(ctx, id)
		if err != nil {
			return nil, err
		}
		building.AddTask(id)
		building.AddTaskLocation(id, loc)

		hasTopoDeps := false
		hasDeps := false

		depPkgs := b.pkgs.ImmediateDependencies(id.Package())
		for _, topoDep := range def.TopologicalDependencies {
			for _, depPkg := range depPkgs {
				from := taskid.NewTaskID(depPkg, topoDep.Task())
				if allowed != nil {
					if _, ok := allowed[from]; !ok {
						continue
					}
				}
				hasTopoDeps = true
				building.AddDependency(id, from)
				queue = append(queue, from)
			}
		}

		// Siblings enter the graph but carry no ordering edge.
		for _, sibling := range def.With {
			sibID, ok := sibling.TaskID()
			if !ok {
				sibID = taskid.NewTaskID(id.Package(), sibling.Task())
			}
			queue = append(queue, sibID)
		}

		for _, dep := range def.TaskDependencies {
			from, ok := dep.TaskID()
			if !ok {
				from = taskid.NewTaskID(id.Package(), dep.Task())
			}
			if allowed != nil {
				if _, ok := allowed[from]; !ok {
					continue
				}
			}
			hasDeps = true
			building.AddDependency(id, from)
			queue = append(queue, from)
		}

		building.AddDefinition(id, def)
		if !hasDeps && !hasTopoDeps {
			building.ConnectToRoot(id)
		}
	}

	if err := building.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("task graph sealed", "tasks", len(visited))
	return building.Seal(), nil
}

// gatherAllTasks unions every task visible to the root and to each
// requested workspace, sorted for deterministic seeding.
func (b *EngineBuilder) gatherAllTasks(ctx context.Context) ([]taskid.TaskName, error) {
	set := make(map[taskid.TaskName]struct{})
	for _, workspace := range append([]taskid.PackageName{taskid.Root}, b.workspaces...) {
		tasks, err := newInheritanceResolver(b.loader).resolve(ctx, workspace)
		if err != nil {
			return nil, err
		}
		for task := range tasks {
			set[task] = struct{}{}
		}
	}
	out := make([]taskid.TaskName, 0, len(set))
	for task := range set {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

// checkRootTaskAllowed gates tasks in the root package: they must be
// explicitly enabled, or, when seeding all tasks, defined for the
// root.
func (b *EngineBuilder) checkRootTaskAllowed(ctx context.Context, id taskid.TaskID) error {
	if _, ok := b.rootEnabledTasks[id.AsUnscopedTaskName()]; ok {
		return nil
	}
	if b.addAllTasks {
		found, err := b.hasTaskDefinitionInRun(ctx, taskid.Root, id.AsUnscopedTaskName(), id)
		if err != nil {
			return err
		}
		if found {
			return nil
		}
	}
	return &MissingRootTaskError{TaskID: id.String()}
}

func (b *EngineBuilder) missingTasksError(missing map[string]taskid.TaskName) error {
	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]error, 0, len(names))
	for _, name := range names {
		task := missing[name]
		if pkg, ok := task.Package(); ok && !b.pkgs.HasPackage(pkg) {
			errs = append(errs, &MissingPackageError{Package: pkg.String()})
			continue
		}
		errs = append(errs, &MissingTaskDefinitionError{Name: name})
	}
	return &MissingTasksError{Errors: errs}
}

// taskDefinition resolves the full definition of one task by merging
// its extends chain. The returned location is where the effective
// definition was authored.
func (b *EngineBuilder) taskDefinition(ctx context.Context, id taskid.TaskID) (*taskdef.TaskDefinition, config.Location, error) {
	chain, err := b.taskDefinitionChain(ctx, id)
	if err != nil {
		return nil, config.Location{}, err
	}
	merged := taskdef.FromChain(chain)
	def, err := merged.Resolve(ctx)
	if err != nil {
		return nil, config.Location{}, err
	}
	return def, merged.Source, nil
}

// taskDefinitionChain collects the per-source processed definitions
// for a task, root-most first. The chain is truncated at the last
// "extends": false entry: a pure exclusion drops everything up to and
// including itself, a redefinition restarts the chain from scratch.
func (b *EngineBuilder) taskDefinitionChain(ctx context.Context, id taskid.TaskID) ([]*taskdef.ProcessedTaskDefinition, error) {
	configChain, err := b.configChain(ctx, id.Package())
	if err != nil {
		return nil, err
	}

	name := id.AsUnscopedTaskName()
	var defs []*taskdef.ProcessedTaskDefinition

	appendDef := func(raw *config.RawTaskDefinition) error {
		def, err := taskdef.FromRaw(raw)
		if err != nil {
			return err
		}
		defs = append(defs, def)
		return nil
	}

	// Find the leaf-most "extends": false for this task; inheritance
	// from anything before it is cut off.
	extendsFalseIdx := -1
	for i := len(configChain) - 1; i >= 0; i-- {
		if raw, ok := configChain[i].Tasks[name]; ok && raw.Extends != nil && !*raw.Extends {
			extendsFalseIdx = i
			break
		}
	}

	if extendsFalseIdx >= 0 {
		if raw := configChain[extendsFalseIdx].Task(id); raw != nil && raw.HasConfigBeyondExtends() {
			if err := appendDef(raw); err != nil {
				return nil, err
			}
		}
		for _, cfg := range configChain[extendsFalseIdx+1:] {
			if raw := cfg.Task(id); raw != nil {
				if err := appendDef(raw); err != nil {
					return nil, err
				}
			}
		}
		return defs, nil
	}

	for _, cfg := range configChain {
		if raw := cfg.Task(id); raw != nil {
			if err := appendDef(raw); err != nil {
				return nil, err
			}
		}
	}

	if len(defs) == 0 && b.shouldValidate {
		return nil, &MissingPackageTaskError{
			TaskID:   id.String(),
			TaskName: name.String(),
		}
	}
	return defs, nil
}
