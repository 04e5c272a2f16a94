package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/taskgrid/internal/builder"
	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/jsonconfig"
	"github.com/vk/taskgrid/internal/pkggraph"
	"github.com/vk/taskgrid/internal/summary"
	"github.com/vk/taskgrid/internal/taskid"
	"github.com/vk/taskgrid/internal/visualize"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
	}
}

// Run executes the main application logic: discover packages, build the
// task graph, and print the selected representation of it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	pkgs, err := discoverPackages(a.config.RepoRoot)
	if err != nil {
		return fmt.Errorf("failed to discover packages: %w", err)
	}
	a.logger.Debug("Package discovery complete.", "packages", len(pkgs.Packages()))

	loader := jsonconfig.New(a.config.RepoRoot, pkgs)

	workspaces, err := a.workspaces(pkgs)
	if err != nil {
		return err
	}

	rootTasks, err := rootEnabledTasks(ctx, loader)
	if err != nil {
		return fmt.Errorf("failed to read root configuration: %w", err)
	}

	tasks := make([]taskid.TaskName, 0, len(a.config.Tasks))
	for _, raw := range a.config.Tasks {
		tasks = append(tasks, taskid.ParseTaskName(raw))
	}

	engineBuilder := builder.New(pkgs, loader).
		WithWorkspaces(workspaces).
		WithTasks(tasks).
		WithRootTasks(rootTasks)
	if a.config.AllTasks {
		engineBuilder = engineBuilder.WithAllTasks()
	}
	if a.config.TasksOnly {
		engineBuilder = engineBuilder.WithTasksOnly()
	}

	eng, err := engineBuilder.Build(ctx)
	if err != nil {
		return err
	}
	a.logger.Debug("Task graph built.", "tasks", eng.Len())

	switch {
	case a.config.DryRun:
		plan, err := summary.Render(eng, pkgs)
		if err != nil {
			return fmt.Errorf("failed to render plan: %w", err)
		}
		fmt.Fprintln(a.outW, string(plan))
	case a.config.Graph == "dot":
		fmt.Fprint(a.outW, visualize.Dot(eng))
	case a.config.Graph == "mermaid":
		fmt.Fprint(a.outW, visualize.Mermaid(eng))
	default:
		for _, id := range eng.TaskIDs() {
			fmt.Fprintln(a.outW, id.String())
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// workspaces resolves the filter to concrete package names, defaulting
// to every non-root package in the repository.
func (a *App) workspaces(pkgs *pkggraph.Graph) ([]taskid.PackageName, error) {
	if len(a.config.Filter) > 0 {
		out := make([]taskid.PackageName, 0, len(a.config.Filter))
		for _, name := range a.config.Filter {
			pkg := taskid.PackageName(name)
			if !pkgs.HasPackage(pkg) {
				return nil, fmt.Errorf("no package named %q in the repository", name)
			}
			out = append(out, pkg)
		}
		return out, nil
	}

	var out []taskid.PackageName
	for _, info := range pkgs.Packages() {
		if info.Name.IsRoot() {
			continue
		}
		out = append(out, info.Name)
	}
	return out, nil
}

// rootEnabledTasks collects the task names the root configuration
// declares. Only names qualified with the root package end up enabling
// root tasks; the builder filters the rest out.
func rootEnabledTasks(ctx context.Context, loader config.Loader) ([]taskid.TaskName, error) {
	cfg, err := loader.Load(ctx, taskid.Root)
	if errors.Is(err, config.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg.TaskNames(), nil
}
