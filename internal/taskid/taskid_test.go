package taskid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskName(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		wantPkg     string
		wantScoped  bool
		wantTask    string
		wantDisplay string
	}{
		{name: "unscoped", raw: "build", wantTask: "build", wantDisplay: "build"},
		{name: "package qualified", raw: "app#build", wantPkg: "app", wantScoped: true, wantTask: "build", wantDisplay: "app#build"},
		{name: "root qualified", raw: "//#lint", wantPkg: "//", wantScoped: true, wantTask: "lint", wantDisplay: "//#lint"},
		{name: "scoped package name", raw: "@scope/pkg#test", wantPkg: "@scope/pkg", wantScoped: true, wantTask: "test", wantDisplay: "@scope/pkg#test"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTaskName(tc.raw)
			pkg, scoped := got.Package()
			assert.Equal(t, tc.wantScoped, scoped)
			assert.Equal(t, tc.wantPkg, pkg.String())
			assert.Equal(t, tc.wantTask, got.Task())
			assert.Equal(t, tc.wantDisplay, got.String())
		})
	}
}

func TestTaskNameConversions(t *testing.T) {
	qualified := ParseTaskName("app#build")
	assert.Equal(t, "build", qualified.Unscoped().String())
	assert.Equal(t, "//#build", ParseTaskName("build").ForRoot().String())

	id, ok := qualified.TaskID()
	require.True(t, ok)
	assert.Equal(t, PackageName("app"), id.Package())
	assert.Equal(t, "build", id.Task())

	_, ok = ParseTaskName("build").TaskID()
	assert.False(t, ok)
}

func TestTaskIDRoundTrip(t *testing.T) {
	testCases := []string{
		"app#build",
		"//#lint",
		"@scope/pkg#test",
	}

	for _, raw := range testCases {
		t.Run(raw, func(t *testing.T) {
			id, err := ParseTaskID(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, id.String())

			again, err := ParseTaskID(id.String())
			require.NoError(t, err)
			assert.Equal(t, id, again)
		})
	}
}

func TestParseTaskIDRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"build", "#build", "app#", ""} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseTaskID(raw)
			assert.Error(t, err)
		})
	}
}

func TestRootPackage(t *testing.T) {
	assert.True(t, Root.IsRoot())
	assert.False(t, PackageName("app").IsRoot())
	assert.True(t, NewTaskID(Root, "build").IsRoot())
}
