package config

import (
	"fmt"
	"sort"

	"github.com/vk/taskgrid/internal/taskid"
)

// OutputMode controls how much of a task's output is shown during a run.
type OutputMode int

const (
	OutputModeFull OutputMode = iota
	OutputModeNone
	OutputModeHashOnly
	OutputModeNewOnly
	OutputModeErrorsOnly
)

var outputModeNames = map[OutputMode]string{
	OutputModeFull:       "full",
	OutputModeNone:       "none",
	OutputModeHashOnly:   "hash-only",
	OutputModeNewOnly:    "new-only",
	OutputModeErrorsOnly: "errors-only",
}

func (m OutputMode) String() string {
	if name, ok := outputModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("output-mode(%d)", int(m))
}

// ParseOutputMode maps the serialized form back to an OutputMode.
func ParseOutputMode(raw string) (OutputMode, error) {
	for mode, name := range outputModeNames {
		if name == raw {
			return mode, nil
		}
	}
	return OutputModeFull, fmt.Errorf("invalid output mode %q", raw)
}

// Location points at where a value came from, for error messages. Offset
// is a byte offset into the file; a negative offset means unknown.
type Location struct {
	File   string
	Offset int
}

func (l Location) String() string {
	if l.File == "" {
		return "<generated>"
	}
	if l.Offset < 0 {
		return l.File
	}
	return fmt.Sprintf("%s (offset %d)", l.File, l.Offset)
}

// RawTaskDefinition is one task entry exactly as authored in a single
// configuration source. Nil fields were absent from the source; the
// distinction between nil and an explicit empty list is preserved.
type RawTaskDefinition struct {
	Extends        *bool
	Cache          *bool
	DependsOn      []string
	DotEnv         []string
	Env            []string
	PassThroughEnv []string
	Persistent     *bool
	Inputs         []string
	Outputs        []string
	OutputMode     *OutputMode
	With           []string

	// Source is where this entry was authored.
	Source Location
}

// HasConfigBeyondExtends reports whether the entry sets anything other
// than the extends flag. An entry that only carries "extends": false is a
// pure exclusion; one with more fields is a clean-slate redefinition.
func (d *RawTaskDefinition) HasConfigBeyondExtends() bool {
	return d.Cache != nil ||
		d.DependsOn != nil ||
		d.DotEnv != nil ||
		d.Env != nil ||
		d.PassThroughEnv != nil ||
		d.Persistent != nil ||
		d.Inputs != nil ||
		d.Outputs != nil ||
		d.OutputMode != nil ||
		d.With != nil
}

// Config is the parsed task configuration of one package.
type Config struct {
	// Extends lists packages whose configuration this one inherits,
	// nearest-last. Only meaningful outside the root package.
	Extends []string

	// ExtendsSource is where the extends list was authored.
	ExtendsSource Location

	// Tasks maps authored task names to their raw definitions. Keys are
	// unscoped names, or package-qualified names in the root config.
	Tasks map[taskid.TaskName]*RawTaskDefinition

	// File is the path this config was read from, empty for synthetic
	// configs.
	File string
}

// Task looks up the definition that applies to a concrete task id.
// A package-qualified entry ("app#build") wins over an unscoped one
// ("build").
func (c *Config) Task(id taskid.TaskID) *RawTaskDefinition {
	if def, ok := c.Tasks[id.AsTaskName()]; ok {
		return def
	}
	if def, ok := c.Tasks[id.AsUnscopedTaskName()]; ok {
		return def
	}
	return nil
}

// TaskNames returns the authored task names sorted by display form, for
// deterministic iteration.
func (c *Config) TaskNames() []taskid.TaskName {
	names := make([]taskid.TaskName, 0, len(c.Tasks))
	for name := range c.Tasks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })
	return names
}
