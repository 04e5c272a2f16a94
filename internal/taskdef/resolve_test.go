package taskdef

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/taskid"
)

func TestFromRawRejectsEnvPrefix(t *testing.T) {
	for _, field := range []string{"env", "passThroughEnv"} {
		t.Run(field, func(t *testing.T) {
			raw := &config.RawTaskDefinition{}
			if field == "env" {
				raw.Env = []string{"$HOME"}
			} else {
				raw.PassThroughEnv = []string{"$HOME"}
			}

			_, err := FromRaw(raw)
			require.Error(t, err)
			var prefixErr *InvalidEnvPrefixError
			require.ErrorAs(t, err, &prefixErr)
			assert.Equal(t, field, prefixErr.Field)
			assert.Equal(t, "$HOME", prefixErr.Value)
		})
	}
}

func TestFromRawRejectsTopologicalWith(t *testing.T) {
	raw := &config.RawTaskDefinition{With: []string{"^proxy"}}

	_, err := FromRaw(raw)
	var withErr *InvalidWithError
	require.ErrorAs(t, err, &withErr)
	assert.Equal(t, "^proxy", withErr.Value)
}

func TestResolveDefaults(t *testing.T) {
	def, err := FromRaw(&config.RawTaskDefinition{})
	require.NoError(t, err)
	resolved, err := def.Resolve(context.Background())
	require.NoError(t, err)

	assert.True(t, resolved.Cache)
	assert.False(t, resolved.Persistent)
	assert.Equal(t, config.OutputModeFull, resolved.OutputMode)
	assert.Empty(t, resolved.TaskDependencies)
	assert.Empty(t, resolved.TopologicalDependencies)
	assert.Empty(t, resolved.Env)
	assert.Nil(t, resolved.PassThroughEnv)
}

func TestResolveDependsOnDecoding(t *testing.T) {
	def, err := FromRaw(&config.RawTaskDefinition{
		DependsOn: []string{"^build", "lint", "app#codegen", "$API_KEY"},
		Env:       []string{"NODE_ENV"},
	})
	require.NoError(t, err)

	resolved, err := def.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t,
		[]taskid.TaskName{taskid.ParseTaskName("build")},
		resolved.TopologicalDependencies)
	assert.Equal(t,
		[]taskid.TaskName{taskid.ParseTaskName("app#codegen"), taskid.ParseTaskName("lint")},
		resolved.TaskDependencies)
	// The deprecated $ entry folds into env, which is sorted and deduped.
	assert.Equal(t, []string{"API_KEY", "NODE_ENV"}, resolved.Env)
}

func TestResolveEnvSortedAndDeduped(t *testing.T) {
	def, err := FromRaw(&config.RawTaskDefinition{
		Env:            []string{"B", "A", "B"},
		PassThroughEnv: []string{"Z", "Y", "Z"},
	})
	require.NoError(t, err)

	resolved, err := def.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, resolved.Env)
	assert.Equal(t, []string{"Y", "Z"}, resolved.PassThroughEnv)
}

func TestResolvePassThroughEnvNilVersusEmpty(t *testing.T) {
	unset, err := FromRaw(&config.RawTaskDefinition{})
	require.NoError(t, err)
	resolved, err := unset.Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, resolved.PassThroughEnv)

	empty, err := FromRaw(&config.RawTaskDefinition{PassThroughEnv: []string{}})
	require.NoError(t, err)
	resolved, err = empty.Resolve(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resolved.PassThroughEnv)
	assert.Empty(t, resolved.PassThroughEnv)
}

func TestResolveOutputsSplitAndSorted(t *testing.T) {
	def, err := FromRaw(&config.RawTaskDefinition{
		Outputs: []string{"dist/**", "!dist/cache/**", "build/**"},
	})
	require.NoError(t, err)

	resolved, err := def.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TaskOutputs{
		Inclusions: []string{"build/**", "dist/**"},
		Exclusions: []string{"dist/cache/**"},
	}, resolved.Outputs)
}

func TestResolveInputsKeepExclusionMarker(t *testing.T) {
	def, err := FromRaw(&config.RawTaskDefinition{
		Inputs: []string{"src/**", "!src/gen/**"},
	})
	require.NoError(t, err)

	resolved, err := def.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"src/**", "!src/gen/**"}, resolved.Inputs)
}

func TestResolveRejectsAbsoluteDotEnv(t *testing.T) {
	def, err := FromRaw(&config.RawTaskDefinition{DotEnv: []string{"/etc/secrets.env"}})
	require.NoError(t, err)

	_, err = def.Resolve(context.Background())
	var dotEnvErr *InvalidDotEnvError
	require.ErrorAs(t, err, &dotEnvErr)
	assert.Equal(t, "/etc/secrets.env", dotEnvErr.Value)
}

func TestResolveDotEnvKeepsOrder(t *testing.T) {
	def, err := FromRaw(&config.RawTaskDefinition{DotEnv: []string{"b.env", "a.env"}})
	require.NoError(t, err)

	resolved, err := def.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b.env", "a.env"}, resolved.DotEnv)
}
