package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/vk/taskgrid/internal/pkggraph"
	"github.com/vk/taskgrid/internal/taskid"
)

// discoverPackages builds the package dependency graph from manifests.
// The root package.json lists workspace directories under "workspaces";
// each of those directories holds its own package.json with a "name"
// and dependency maps. Dependencies on names outside the workspace set
// are ignored.
func discoverPackages(repoRoot string) (*pkggraph.Graph, error) {
	rootManifest := filepath.Join(repoRoot, "package.json")
	data, err := os.ReadFile(rootManifest)
	if err != nil {
		return nil, fmt.Errorf("reading root manifest: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON in %s", rootManifest)
	}

	builder := pkggraph.NewBuilder()
	wanted := make(map[taskid.PackageName][]string)
	workspaceNames := make(map[string]taskid.PackageName)

	for _, dirResult := range gjson.GetBytes(data, "workspaces").Array() {
		dir := dirResult.String()
		manifest := filepath.Join(repoRoot, dir, "package.json")
		pkgData, err := os.ReadFile(manifest)
		if err != nil {
			return nil, fmt.Errorf("reading workspace manifest: %w", err)
		}
		if !gjson.ValidBytes(pkgData) {
			return nil, fmt.Errorf("invalid JSON in %s", manifest)
		}

		name := gjson.GetBytes(pkgData, "name").String()
		if name == "" {
			name = filepath.Base(dir)
		}
		pkg := taskid.PackageName(name)
		builder.AddPackage(pkg, dir)
		workspaceNames[name] = pkg

		for _, field := range []string{"dependencies", "devDependencies"} {
			gjson.GetBytes(pkgData, field).ForEach(func(key, _ gjson.Result) bool {
				wanted[pkg] = append(wanted[pkg], key.String())
				return true
			})
		}
	}

	for pkg, deps := range wanted {
		for _, dep := range deps {
			if target, ok := workspaceNames[dep]; ok {
				builder.AddDependency(pkg, target)
			}
		}
	}

	return builder.Build(), nil
}
