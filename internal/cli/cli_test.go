package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTasksAndFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{
		"-root", "/repo",
		"-filter", "web,ui",
		"-only",
		"-graph", "dot",
		"build", "lint",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "/repo", cfg.RepoRoot)
	assert.Equal(t, []string{"build", "lint"}, cfg.Tasks)
	assert.Equal(t, []string{"web", "ui"}, cfg.Filter)
	assert.True(t, cfg.TasksOnly)
	assert.Equal(t, "dot", cfg.Graph)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseNoTasksPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseAllTasksNeedsNoTaskArgs(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-all"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.True(t, cfg.AllTasks)
	assert.Empty(t, cfg.Tasks)
}

func TestParseRejectsBadLogSettings(t *testing.T) {
	var out bytes.Buffer

	_, _, err := Parse([]string{"-log-format", "yaml", "build"}, &out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)

	_, _, err = Parse([]string{"-log-level", "loud", "build"}, &out)
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseRejectsBadGraphFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-graph", "ascii", "build"}, &out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseHelpExitsCleanly(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
}
