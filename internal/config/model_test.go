package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/taskid"
)

func TestTaskLookupPrefersQualifiedEntry(t *testing.T) {
	qualified := &RawTaskDefinition{Cache: boolPtr(false)}
	unscoped := &RawTaskDefinition{Cache: boolPtr(true)}
	cfg := &Config{
		Tasks: map[taskid.TaskName]*RawTaskDefinition{
			taskid.ParseTaskName("app#build"): qualified,
			taskid.ParseTaskName("build"):     unscoped,
		},
	}

	assert.Same(t, qualified, cfg.Task(taskid.NewTaskID("app", "build")))
	assert.Same(t, unscoped, cfg.Task(taskid.NewTaskID("docs", "build")))
	assert.Nil(t, cfg.Task(taskid.NewTaskID("app", "lint")))
}

func TestHasConfigBeyondExtends(t *testing.T) {
	pureExclusion := &RawTaskDefinition{Extends: boolPtr(false)}
	assert.False(t, pureExclusion.HasConfigBeyondExtends())

	redefinition := &RawTaskDefinition{
		Extends: boolPtr(false),
		Outputs: []string{"dist/**"},
	}
	assert.True(t, redefinition.HasConfigBeyondExtends())

	// An explicit empty list still counts as configuration.
	emptyList := &RawTaskDefinition{
		Extends:   boolPtr(false),
		DependsOn: []string{},
	}
	assert.True(t, emptyList.HasConfigBeyondExtends())
}

func TestParseOutputMode(t *testing.T) {
	for raw, want := range map[string]OutputMode{
		"full":        OutputModeFull,
		"none":        OutputModeNone,
		"hash-only":   OutputModeHashOnly,
		"new-only":    OutputModeNewOnly,
		"errors-only": OutputModeErrorsOnly,
	} {
		mode, err := ParseOutputMode(raw)
		require.NoError(t, err)
		assert.Equal(t, want, mode)
		assert.Equal(t, raw, mode.String())
	}

	_, err := ParseOutputMode("loud")
	assert.Error(t, err)
}

func boolPtr(b bool) *bool { return &b }
