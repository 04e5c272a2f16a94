package pkggraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/taskid"
)

func TestRootAlwaysPresent(t *testing.T) {
	g := NewBuilder().Build()

	assert.True(t, g.HasPackage(taskid.Root))
	dir, ok := g.PackageDir(taskid.Root)
	require.True(t, ok)
	assert.Equal(t, ".", dir)
}

func TestImmediateDependenciesSorted(t *testing.T) {
	g := NewBuilder().
		AddPackage("app", "apps/app").
		AddPackage("ui", "packages/ui").
		AddPackage("utils", "packages/utils").
		AddDependency("app", "utils").
		AddDependency("app", "ui").
		Build()

	assert.Equal(t,
		[]taskid.PackageName{"ui", "utils"},
		g.ImmediateDependencies("app"))
	assert.Empty(t, g.ImmediateDependencies("ui"))
}

func TestPackagesSortedWithDirs(t *testing.T) {
	g := NewBuilder().
		AddPackage("b", "packages/b").
		AddPackage("a", "packages/a").
		Build()

	pkgs := g.Packages()
	require.Len(t, pkgs, 3)
	assert.Equal(t, taskid.PackageName("//"), pkgs[0].Name)
	assert.Equal(t, taskid.PackageName("a"), pkgs[1].Name)
	assert.Equal(t, "packages/b", pkgs[2].Dir)
}

func TestAddDependencyImpliesPackages(t *testing.T) {
	g := NewBuilder().AddDependency("web", "ui").Build()

	assert.True(t, g.HasPackage("web"))
	assert.True(t, g.HasPackage("ui"))
}
