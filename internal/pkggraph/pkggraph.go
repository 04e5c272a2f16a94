// Package pkggraph holds the already-resolved package dependency graph
// that task graph construction consumes. Workspace discovery populates
// it; the builder only reads it.
package pkggraph

import (
	"sort"

	"github.com/vk/taskgrid/internal/digraph"
	"github.com/vk/taskgrid/internal/taskid"
)

// PackageInfo describes one workspace package.
type PackageInfo struct {
	Name taskid.PackageName
	// Dir is the package directory relative to the repository root. The
	// root package's dir is ".".
	Dir string
}

// Graph is an immutable package dependency graph. The root package is
// always present.
type Graph struct {
	g     *digraph.Graph[taskid.PackageName]
	infos map[taskid.PackageName]PackageInfo
}

// Builder accumulates packages and dependency edges for a Graph.
type Builder struct {
	g     *digraph.Graph[taskid.PackageName]
	infos map[taskid.PackageName]PackageInfo
}

func NewBuilder() *Builder {
	b := &Builder{
		g:     digraph.New[taskid.PackageName](),
		infos: make(map[taskid.PackageName]PackageInfo),
	}
	b.AddPackage(taskid.Root, ".")
	return b
}

// AddPackage registers a package and its directory.
func (b *Builder) AddPackage(name taskid.PackageName, dir string) *Builder {
	b.g.AddNode(name)
	b.infos[name] = PackageInfo{Name: name, Dir: dir}
	return b
}

// AddDependency records that pkg depends on dep. Both packages are added
// if missing; their directories can be filled in later.
func (b *Builder) AddDependency(pkg, dep taskid.PackageName) *Builder {
	for _, name := range []taskid.PackageName{pkg, dep} {
		if _, ok := b.infos[name]; !ok {
			b.AddPackage(name, string(name))
		}
	}
	b.g.AddEdge(pkg, dep)
	return b
}

// Build finalizes the graph. The builder must not be used afterwards.
func (b *Builder) Build() *Graph {
	return &Graph{g: b.g, infos: b.infos}
}

// HasPackage reports whether the package exists in the repository.
func (g *Graph) HasPackage(name taskid.PackageName) bool {
	return g.g.HasNode(name)
}

// Packages returns every package sorted by name.
func (g *Graph) Packages() []PackageInfo {
	out := make([]PackageInfo, 0, len(g.infos))
	for _, info := range g.infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PackageDir returns the directory of a package.
func (g *Graph) PackageDir(name taskid.PackageName) (string, bool) {
	info, ok := g.infos[name]
	return info.Dir, ok
}

// ImmediateDependencies returns the packages that name directly depends
// on, sorted.
func (g *Graph) ImmediateDependencies(name taskid.PackageName) []taskid.PackageName {
	deps := g.g.Successors(name)
	out := make([]taskid.PackageName, 0, len(deps))
	for dep := range deps {
		out = append(out, dep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
