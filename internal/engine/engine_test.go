package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/taskdef"
	"github.com/vk/taskgrid/internal/taskid"
)

func locAt(file string) config.Location {
	return config.Location{File: file, Offset: -1}
}

func id(raw string) taskid.TaskID {
	parsed, err := taskid.ParseTaskID(raw)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestSealedQueries(t *testing.T) {
	b := NewBuilding()
	b.AddTask(id("a#build"))
	b.AddTask(id("b#build"))
	b.AddTask(id("c#build"))
	b.AddDependency(id("a#build"), id("b#build"))
	b.AddDependency(id("a#build"), id("c#build"))
	b.AddDependency(id("b#build"), id("c#build"))
	b.ConnectToRoot(id("c#build"))
	b.AddDefinition(id("a#build"), &taskdef.TaskDefinition{Cache: true})

	require.NoError(t, b.Validate())
	eng := b.Seal()

	assert.Equal(t, 3, eng.Len())
	assert.Equal(t,
		[]taskid.TaskID{id("a#build"), id("b#build"), id("c#build")},
		eng.TaskIDs())

	assert.Equal(t,
		[]taskid.TaskID{id("b#build"), id("c#build")},
		eng.Dependencies(id("a#build")))
	assert.Equal(t,
		[]taskid.TaskID{id("a#build"), id("b#build")},
		eng.Dependents(id("c#build")))

	// Root is filtered from dependency queries.
	assert.Empty(t, eng.Dependencies(id("c#build")))

	def, ok := eng.TaskDefinition(id("a#build"))
	require.True(t, ok)
	assert.True(t, def.Cache)
	_, ok = eng.TaskDefinition(id("b#build"))
	assert.False(t, ok)
}

func TestTransitiveQueries(t *testing.T) {
	b := NewBuilding()
	b.AddDependency(id("a#build"), id("b#build"))
	b.AddDependency(id("b#build"), id("c#build"))
	b.ConnectToRoot(id("c#build"))
	require.NoError(t, b.Validate())
	eng := b.Seal()

	assert.Equal(t,
		[]taskid.TaskID{id("b#build"), id("c#build")},
		eng.TransitiveDependencies(id("a#build")))
	assert.Equal(t,
		[]taskid.TaskID{id("a#build"), id("b#build")},
		eng.TransitiveDependents(id("c#build")))
}

func TestValidateDetectsCycle(t *testing.T) {
	b := NewBuilding()
	b.AddDependency(id("a#build"), id("b#build"))
	b.AddDependency(id("b#build"), id("a#build"))

	err := b.Validate()
	require.Error(t, err)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, err.Error(), "a#build")
	assert.Contains(t, err.Error(), "b#build")
}

func TestTaskLocationFirstWins(t *testing.T) {
	b := NewBuilding()
	b.AddTaskLocation(id("a#build"), locAt("taskgrid.json"))
	b.AddTaskLocation(id("a#build"), locAt("apps/a/taskgrid.json"))

	eng := b.Seal()
	loc, ok := eng.TaskLocation(id("a#build"))
	require.True(t, ok)
	assert.Equal(t, "taskgrid.json", loc.File)
}

func TestRootNodeDisplay(t *testing.T) {
	assert.Equal(t, "___ROOT___", Root.String())
	_, ok := Root.TaskID()
	assert.False(t, ok)
}
