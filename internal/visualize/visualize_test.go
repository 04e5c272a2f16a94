package visualize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/engine"
	"github.com/vk/taskgrid/internal/taskid"
)

func sealedFixture(t *testing.T) *engine.Engine {
	t.Helper()
	b := engine.NewBuilding()
	b.AddDependency(taskid.NewTaskID("app", "build"), taskid.NewTaskID("lib", "build"))
	b.ConnectToRoot(taskid.NewTaskID("lib", "build"))
	require.NoError(t, b.Validate())
	return b.Seal()
}

func TestDot(t *testing.T) {
	out := Dot(sealedFixture(t))

	assert.True(t, strings.HasPrefix(out, "digraph tasks {\n"))
	assert.Contains(t, out, `"app#build" -> "lib#build"`)
	assert.Contains(t, out, `"lib#build" -> "___ROOT___"`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestMermaid(t *testing.T) {
	out := Mermaid(sealedFixture(t))

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `"app#build"`)
	assert.Contains(t, out, "-->")
}

func TestRenderersAreDeterministic(t *testing.T) {
	eng := sealedFixture(t)
	assert.Equal(t, Dot(eng), Dot(eng))
	assert.Equal(t, Mermaid(eng), Mermaid(eng))
}
