// Package taskid defines the identifier types used throughout the task
// graph: package names, task names as authored in configuration, and the
// fully-qualified task ids that name graph nodes.
package taskid

import (
	"fmt"
	"strings"
)

// Root is the name of the repository root package.
const Root = PackageName("//")

// TaskDelimiter separates the package part from the task part in a
// qualified task name or task id.
const TaskDelimiter = "#"

// PackageName identifies a workspace package. The repository root is the
// reserved name "//".
type PackageName string

// IsRoot reports whether the package is the repository root.
func (p PackageName) IsRoot() bool {
	return p == Root
}

func (p PackageName) String() string {
	return string(p)
}

// TaskName is a task reference as authored in configuration. It is either
// unscoped ("build", applicable to any package) or package-qualified
// ("app#build", "//#lint").
type TaskName struct {
	pkg  string // empty when unscoped
	task string
}

// ParseTaskName splits a raw task reference on the first "#". A raw value
// without a "#" yields an unscoped name.
func ParseTaskName(raw string) TaskName {
	if pkg, task, found := strings.Cut(raw, TaskDelimiter); found {
		return TaskName{pkg: pkg, task: task}
	}
	return TaskName{task: raw}
}

// NewTaskName builds a package-qualified task name.
func NewTaskName(pkg PackageName, task string) TaskName {
	return TaskName{pkg: string(pkg), task: task}
}

// Task returns the bare task part of the name.
func (n TaskName) Task() string {
	return n.task
}

// Package returns the package qualifier and whether one is present.
func (n TaskName) Package() (PackageName, bool) {
	return PackageName(n.pkg), n.pkg != ""
}

// IsPackageTask reports whether the name carries a package qualifier.
func (n TaskName) IsPackageTask() bool {
	return n.pkg != ""
}

// Unscoped strips any package qualifier, leaving the bare task name.
func (n TaskName) Unscoped() TaskName {
	return TaskName{task: n.task}
}

// ForRoot qualifies the bare task part with the root package.
func (n TaskName) ForRoot() TaskName {
	return TaskName{pkg: string(Root), task: n.task}
}

// TaskID resolves the name to a concrete task id. It fails when the name
// is unscoped.
func (n TaskName) TaskID() (TaskID, bool) {
	if n.pkg == "" {
		return TaskID{}, false
	}
	return TaskID{pkg: n.pkg, task: n.task}, true
}

func (n TaskName) String() string {
	if n.pkg == "" {
		return n.task
	}
	return n.pkg + TaskDelimiter + n.task
}

// TaskID names one concrete task in one concrete package. It is the node
// identity in the task graph.
type TaskID struct {
	pkg  string
	task string
}

// NewTaskID builds a task id from its two parts.
func NewTaskID(pkg PackageName, task string) TaskID {
	return TaskID{pkg: string(pkg), task: task}
}

// ParseTaskID parses the canonical "pkg#task" serialization. Both parts
// must be non-empty.
func ParseTaskID(raw string) (TaskID, error) {
	pkg, task, found := strings.Cut(raw, TaskDelimiter)
	if !found || pkg == "" || task == "" {
		return TaskID{}, fmt.Errorf("invalid task id %q: want \"package#task\"", raw)
	}
	return TaskID{pkg: pkg, task: task}, nil
}

// Package returns the package part of the id.
func (id TaskID) Package() PackageName {
	return PackageName(id.pkg)
}

// Task returns the task part of the id.
func (id TaskID) Task() string {
	return id.task
}

// IsRoot reports whether the id names a task in the root package.
func (id TaskID) IsRoot() bool {
	return PackageName(id.pkg).IsRoot()
}

// AsTaskName returns the package-qualified name form of the id.
func (id TaskID) AsTaskName() TaskName {
	return TaskName{pkg: id.pkg, task: id.task}
}

// AsUnscopedTaskName returns the bare task name of the id.
func (id TaskID) AsUnscopedTaskName() TaskName {
	return TaskName{task: id.task}
}

// String returns the canonical "pkg#task" serialization; ParseTaskID
// round-trips it.
func (id TaskID) String() string {
	return id.pkg + TaskDelimiter + id.task
}
