package builder

import (
	"context"
	"errors"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/taskid"
)

// readReq is one pending configuration read during extends resolution.
// An inferred read comes from the package itself (or the implicit root
// fallback) and tolerates a missing file; a requested read comes from
// an explicit extends entry and does not.
type readReq struct {
	pkg      taskid.PackageName
	required bool
	loc      config.Location
	// path is the extends path that led here, for cycle detection.
	path []taskid.PackageName
}

// configChain resolves the full extends chain for a package, root-most
// first. A package without its own configuration falls back to the
// root configuration; an explicit extends list never implicitly adds
// the root.
func (b *EngineBuilder) configChain(ctx context.Context, pkg taskid.PackageName) ([]*config.Config, error) {
	var chain []*config.Config
	stack := []readReq{{pkg: pkg}}
	visited := make(map[taskid.PackageName]struct{})

	for len(stack) > 0 {
		req := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i, p := range req.path {
			if p == req.pkg {
				cycle := make([]string, 0, len(req.path)-i+1)
				for _, c := range req.path[i:] {
					cycle = append(cycle, c.String())
				}
				cycle = append(cycle, req.pkg.String())
				return nil, &CyclicExtendsError{Cycle: cycle, Location: req.loc}
			}
		}

		if _, ok := visited[req.pkg]; ok {
			continue
		}

		cfg, err := b.loader.Load(ctx, req.pkg)
		if err != nil {
			if !errors.Is(err, config.ErrNotFound) {
				return nil, err
			}
			if req.required {
				return nil, &MissingExtendsError{Package: req.pkg.String(), Location: req.loc}
			}
			// No configuration of its own: extend from root by default.
			if len(chain) == 0 && !req.pkg.IsRoot() {
				stack = append(stack, readReq{pkg: taskid.Root, path: req.path})
			}
			continue
		}

		visited[req.pkg] = struct{}{}
		chain = append(chain, cfg)

		path := append(append([]taskid.PackageName{}, req.path...), req.pkg)
		for _, ext := range cfg.Extends {
			stack = append(stack, readReq{
				pkg:      taskid.PackageName(ext),
				required: true,
				loc:      cfg.ExtendsSource,
				path:     path,
			})
		}
	}

	// Collection happens leaf-first; callers want root-most first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}
