// Package digraph implements a minimal directed graph with typed nodes.
// It backs both the package dependency graph and the task graph. Builds
// are single-threaded, so the graph performs no locking.
package digraph

// Graph is a directed graph over comparable node values. Edges are stored
// as sets, so adding the same edge twice is a no-op.
type Graph[N comparable] struct {
	nodes      map[N]struct{}
	successors map[N]map[N]struct{}
	preds      map[N]map[N]struct{}
}

// New returns an empty graph.
func New[N comparable]() *Graph[N] {
	return &Graph[N]{
		nodes:      make(map[N]struct{}),
		successors: make(map[N]map[N]struct{}),
		preds:      make(map[N]map[N]struct{}),
	}
}

// AddNode inserts a node. Inserting an existing node is a no-op.
func (g *Graph[N]) AddNode(n N) {
	g.nodes[n] = struct{}{}
}

// HasNode reports whether the node is present.
func (g *Graph[N]) HasNode(n N) bool {
	_, ok := g.nodes[n]
	return ok
}

// AddEdge inserts a directed edge from -> to, adding both nodes if needed.
func (g *Graph[N]) AddEdge(from, to N) {
	g.AddNode(from)
	g.AddNode(to)
	if g.successors[from] == nil {
		g.successors[from] = make(map[N]struct{})
	}
	g.successors[from][to] = struct{}{}
	if g.preds[to] == nil {
		g.preds[to] = make(map[N]struct{})
	}
	g.preds[to][from] = struct{}{}
}

// Successors returns the set of nodes the given node points to. The
// returned map is shared; callers must not mutate it.
func (g *Graph[N]) Successors(n N) map[N]struct{} {
	return g.successors[n]
}

// Predecessors returns the set of nodes pointing to the given node. The
// returned map is shared; callers must not mutate it.
func (g *Graph[N]) Predecessors(n N) map[N]struct{} {
	return g.preds[n]
}

// Nodes returns all nodes in unspecified order.
func (g *Graph[N]) Nodes() []N {
	out := make([]N, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// Len returns the number of nodes.
func (g *Graph[N]) Len() int {
	return len(g.nodes)
}

// FindCycle looks for a cycle and returns one as a node path (first node
// repeated at the end), or nil if the graph is acyclic. Detection is a
// depth-first walk over visiting/visited sets.
func (g *Graph[N]) FindCycle(order []N) []N {
	visiting := make(map[N]struct{})
	visited := make(map[N]struct{})

	var cycle []N
	var visit func(n N, stack []N) bool
	visit = func(n N, stack []N) bool {
		if _, ok := visited[n]; ok {
			return false
		}
		if _, ok := visiting[n]; ok {
			// Trim the stack down to the cycle entry point.
			for i, s := range stack {
				if s == n {
					cycle = append(append(cycle, stack[i:]...), n)
					return true
				}
			}
			return true
		}
		visiting[n] = struct{}{}
		stack = append(stack, n)
		for succ := range g.successors[n] {
			if visit(succ, stack) {
				return true
			}
		}
		delete(visiting, n)
		visited[n] = struct{}{}
		return false
	}

	if order == nil {
		order = g.Nodes()
	}
	for _, n := range order {
		if visit(n, nil) {
			return cycle
		}
	}
	return nil
}
