package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	RepoRoot string   // repository root holding package.json and taskgrid.json
	Tasks    []string // requested task names, possibly package-qualified
	Filter   []string // workspace packages to seed from; empty means all

	AllTasks  bool   // seed every visible task instead of an explicit list
	TasksOnly bool   // restrict the graph to exactly the requested tasks
	Graph     string // "dot" or "mermaid"; empty disables graph output
	DryRun    bool   // print the JSON plan instead of the task list

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.RepoRoot == "" {
		return nil, errors.New("RepoRoot is a required configuration field and cannot be empty")
	}
	if len(cfg.Tasks) == 0 && !cfg.AllTasks {
		return nil, errors.New("at least one task must be requested unless all tasks are selected")
	}
	switch cfg.Graph {
	case "", "dot", "mermaid":
	default:
		return nil, fmt.Errorf("invalid graph format %q: must be 'dot' or 'mermaid'", cfg.Graph)
	}

	return &cfg, nil
}
