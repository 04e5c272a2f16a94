package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/taskid"
)

func TestDiscoverPackages(t *testing.T) {
	pkgs, err := discoverPackages(fixtureRepo(t))
	require.NoError(t, err)

	assert.True(t, pkgs.HasPackage("web"))
	assert.True(t, pkgs.HasPackage("ui"))
	assert.True(t, pkgs.HasPackage(taskid.Root))

	dir, ok := pkgs.PackageDir("web")
	require.True(t, ok)
	assert.Equal(t, "apps/web", dir)

	// External dependencies like react never become packages.
	assert.False(t, pkgs.HasPackage("react"))
	assert.Equal(t, []taskid.PackageName{"ui"}, pkgs.ImmediateDependencies("web"))
}

func TestDiscoverPackagesMissingRootManifest(t *testing.T) {
	_, err := discoverPackages(t.TempDir())
	assert.Error(t, err)
}

func TestDiscoverPackagesFallsBackToDirectoryName(t *testing.T) {
	repoRoot := t.TempDir()
	writeFile(t, repoRoot, "package.json", `{"workspaces": ["libs/anon"]}`)
	writeFile(t, repoRoot, "libs/anon/package.json", `{}`)

	pkgs, err := discoverPackages(repoRoot)
	require.NoError(t, err)
	assert.True(t, pkgs.HasPackage("anon"))
}

func TestDiscoverPackagesInvalidManifest(t *testing.T) {
	repoRoot := t.TempDir()
	writeFile(t, repoRoot, "package.json", `{"workspaces": ["a"]}`)
	writeFile(t, repoRoot, "a/package.json", `{not json`)

	_, err := discoverPackages(repoRoot)
	assert.Error(t, err)
}
