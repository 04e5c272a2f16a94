package builder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/taskid"
)

// CyclicExtendsError reports a cycle in the extends chain between
// package configurations.
type CyclicExtendsError struct {
	Cycle    []string
	Location config.Location
}

func (e *CyclicExtendsError) Error() string {
	return fmt.Sprintf("%s: cyclic extends chain detected: %s", e.Location, strings.Join(e.Cycle, " -> "))
}

// MissingExtendsError reports an extends entry naming a package that
// has no configuration file.
type MissingExtendsError struct {
	Package  string
	Location config.Location
}

func (e *MissingExtendsError) Error() string {
	return fmt.Sprintf("%s: extends references package %q which has no task configuration", e.Location, e.Package)
}

// TaskNotInExtendsChainError reports an "extends": false entry for a
// task that does not exist anywhere in the extends chain.
type TaskNotInExtendsChainError struct {
	Task           string
	ExtendsChain   []string
	AvailableTasks []string
	Location       config.Location
}

func (e *TaskNotInExtendsChainError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: task %q sets \"extends\": false, but no task with that name exists in the extends chain\n", e.Location, e.Task)
	sb.WriteString("The extends chain includes:\n")
	if len(e.ExtendsChain) == 0 {
		sb.WriteString("  -> // (root)\n")
	} else {
		for _, pkg := range e.ExtendsChain {
			fmt.Fprintf(&sb, "  -> %s\n", pkg)
		}
	}
	sb.WriteString("\nTasks available from extends chain:\n")
	if len(e.AvailableTasks) == 0 {
		sb.WriteString("  (none)\n")
	} else {
		tasks := append([]string{}, e.AvailableTasks...)
		sort.Strings(tasks)
		for _, task := range tasks {
			fmt.Fprintf(&sb, "  * %s\n", task)
		}
	}
	return sb.String()
}

// MissingPackageError reports a requested package-qualified task whose
// package does not exist.
type MissingPackageError struct {
	Package string
}

func (e *MissingPackageError) Error() string {
	return fmt.Sprintf("could not find package %q in the repository", e.Package)
}

// MissingTaskDefinitionError reports a requested task that no package
// in the repository defines.
type MissingTaskDefinitionError struct {
	Name string
}

func (e *MissingTaskDefinitionError) Error() string {
	return fmt.Sprintf("could not find task %q in the repository", e.Name)
}

// MissingTasksError aggregates every requested task that could not be
// found, sorted by name.
type MissingTasksError struct {
	Errors []error
}

func (e *MissingTasksError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("missing tasks in repository:\n%s", strings.Join(msgs, "\n"))
}

// MissingRootTaskError reports a root package task that is neither
// enabled nor defined for the root.
type MissingRootTaskError struct {
	TaskID string
}

func (e *MissingRootTaskError) Error() string {
	return fmt.Sprintf("root task %q must be defined in the root configuration to be run", e.TaskID)
}

// MissingPackageFromTaskError reports a task id whose package is
// missing from the package graph.
type MissingPackageFromTaskError struct {
	Package string
	TaskID  string
}

func (e *MissingPackageFromTaskError) Error() string {
	return fmt.Sprintf("could not find package %q referenced by task %q", e.Package, e.TaskID)
}

// MissingPackageTaskError reports a task id whose extends chain yields
// no definition at all.
type MissingPackageTaskError struct {
	TaskID   string
	TaskName string
}

func (e *MissingPackageTaskError) Error() string {
	return fmt.Sprintf("could not find definition for task %q (%s)", e.TaskID, e.TaskName)
}

// InvalidTaskNameError reports a task name using reserved characters.
type InvalidTaskNameError struct {
	Name   string
	Reason string
}

func (e *InvalidTaskNameError) Error() string {
	return fmt.Sprintf("invalid task name %q: %s", e.Name, e.Reason)
}

func validateTaskName(task string) error {
	if task == "" {
		return &InvalidTaskNameError{Name: task, Reason: "task names cannot be empty"}
	}
	if strings.Contains(task, taskid.TaskDelimiter) {
		return &InvalidTaskNameError{Name: task, Reason: "task names cannot contain \"#\""}
	}
	if strings.Contains(task, "$") {
		return &InvalidTaskNameError{Name: task, Reason: "\"$\" is reserved for environment variable dependencies"}
	}
	return nil
}
