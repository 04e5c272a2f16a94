package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/taskgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("taskgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
TaskGrid - A monorepo task graph builder.

Usage:
  taskgrid [options] [TASK...]

Arguments:
  TASK
    One or more task names to build the graph for. A name may be
    package-qualified, like "web#build" or "//#format".

Options:
`)
		flagSet.PrintDefaults()
	}

	rootFlag := flagSet.String("root", ".", "Path to the repository root.")
	filterFlag := flagSet.String("filter", "", "Comma-separated list of packages to seed tasks from.")
	allFlag := flagSet.Bool("all", false, "Seed every task visible to the selected packages.")
	onlyFlag := flagSet.Bool("only", false, "Restrict the graph to exactly the requested tasks.")
	graphFlag := flagSet.String("graph", "", "Render the graph instead of listing tasks. Options: 'dot' or 'mermaid'.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the full JSON plan instead of the task list.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	tasks := flagSet.Args()
	if len(tasks) == 0 && !*allFlag {
		slog.Debug("No tasks requested, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var filter []string
	if *filterFlag != "" {
		filter = strings.Split(*filterFlag, ",")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		RepoRoot:  *rootFlag,
		Tasks:     tasks,
		Filter:    filter,
		AllTasks:  *allFlag,
		TasksOnly: *onlyFlag,
		Graph:     strings.ToLower(*graphFlag),
		DryRun:    *dryRunFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
