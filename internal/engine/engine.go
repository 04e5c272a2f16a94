package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/digraph"
	"github.com/vk/taskgrid/internal/taskdef"
	"github.com/vk/taskgrid/internal/taskid"
)

// CycleError reports a dependency cycle between tasks.
type CycleError struct {
	Path []TaskNode
}

func (e *CycleError) Error() string {
	names := make([]string, 0, len(e.Path))
	for _, n := range e.Path {
		names = append(names, n.String())
	}
	return fmt.Sprintf("cyclic dependency detected: %s", strings.Join(names, " -> "))
}

// Building is the mutable task graph under construction. Edges point
// from a task to the tasks it depends on.
type Building struct {
	graph       *digraph.Graph[TaskNode]
	definitions map[taskid.TaskID]*taskdef.TaskDefinition
	locations   map[taskid.TaskID]config.Location
}

// NewBuilding returns an empty building graph holding only the root
// node.
func NewBuilding() *Building {
	g := digraph.New[TaskNode]()
	g.AddNode(Root)
	return &Building{
		graph:       g,
		definitions: make(map[taskid.TaskID]*taskdef.TaskDefinition),
		locations:   make(map[taskid.TaskID]config.Location),
	}
}

// AddTask inserts a task node.
func (b *Building) AddTask(id taskid.TaskID) {
	b.graph.AddNode(Node(id))
}

// HasTask reports whether a task node exists.
func (b *Building) HasTask(id taskid.TaskID) bool {
	return b.graph.HasNode(Node(id))
}

// AddDependency records that task depends on dep.
func (b *Building) AddDependency(task, dep taskid.TaskID) {
	b.graph.AddEdge(Node(task), Node(dep))
}

// ConnectToRoot attaches a task with no other dependencies to the root
// node.
func (b *Building) ConnectToRoot(id taskid.TaskID) {
	b.graph.AddEdge(Node(id), Root)
}

// AddDefinition stores the resolved definition for a task.
func (b *Building) AddDefinition(id taskid.TaskID, def *taskdef.TaskDefinition) {
	b.definitions[id] = def
}

// AddTaskLocation records where a task was first defined. Later
// locations for the same task are ignored.
func (b *Building) AddTaskLocation(id taskid.TaskID, loc config.Location) {
	if _, ok := b.locations[id]; !ok {
		b.locations[id] = loc
	}
}

// Validate checks the graph for dependency cycles. Node order is fixed
// before the walk so the reported cycle is deterministic.
func (b *Building) Validate() error {
	nodes := b.graph.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].String() < nodes[j].String() })
	if cycle := b.graph.FindCycle(nodes); cycle != nil {
		return &CycleError{Path: cycle}
	}
	return nil
}

// Seal freezes the graph. The Building value must not be used after
// sealing.
func (b *Building) Seal() *Engine {
	return &Engine{
		graph:       b.graph,
		definitions: b.definitions,
		locations:   b.locations,
	}
}

// Engine is the sealed, validated task graph.
type Engine struct {
	graph       *digraph.Graph[TaskNode]
	definitions map[taskid.TaskID]*taskdef.TaskDefinition
	locations   map[taskid.TaskID]config.Location
}

// Len returns the number of tasks, excluding the root node.
func (e *Engine) Len() int {
	return e.graph.Len() - 1
}

// TaskIDs returns every task sorted by id.
func (e *Engine) TaskIDs() []taskid.TaskID {
	out := make([]taskid.TaskID, 0, e.graph.Len())
	for _, n := range e.graph.Nodes() {
		if id, ok := n.TaskID(); ok {
			out = append(out, id)
		}
	}
	sortTaskIDs(out)
	return out
}

// TaskDefinition returns the resolved definition of a task.
func (e *Engine) TaskDefinition(id taskid.TaskID) (*taskdef.TaskDefinition, bool) {
	def, ok := e.definitions[id]
	return def, ok
}

// TaskLocation returns where a task was first defined.
func (e *Engine) TaskLocation(id taskid.TaskID) (config.Location, bool) {
	loc, ok := e.locations[id]
	return loc, ok
}

// Dependencies returns the tasks id directly depends on, sorted. The
// root node is omitted.
func (e *Engine) Dependencies(id taskid.TaskID) []taskid.TaskID {
	return collectNeighbors(e.graph.Successors(Node(id)))
}

// Dependents returns the tasks that directly depend on id, sorted.
func (e *Engine) Dependents(id taskid.TaskID) []taskid.TaskID {
	return collectNeighbors(e.graph.Predecessors(Node(id)))
}

// TransitiveDependencies returns every task reachable from id through
// dependency edges, sorted.
func (e *Engine) TransitiveDependencies(id taskid.TaskID) []taskid.TaskID {
	return e.walk(id, e.graph.Successors)
}

// TransitiveDependents returns every task that transitively depends on
// id, sorted.
func (e *Engine) TransitiveDependents(id taskid.TaskID) []taskid.TaskID {
	return e.walk(id, e.graph.Predecessors)
}

func (e *Engine) walk(id taskid.TaskID, neighbors func(TaskNode) map[TaskNode]struct{}) []taskid.TaskID {
	seen := map[TaskNode]struct{}{Node(id): {}}
	queue := []TaskNode{Node(id)}
	var out []taskid.TaskID
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for next := range neighbors(n) {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			queue = append(queue, next)
			if nextID, ok := next.TaskID(); ok {
				out = append(out, nextID)
			}
		}
	}
	sortTaskIDs(out)
	return out
}

// Edge is one dependency edge in the sealed graph.
type Edge struct {
	From TaskNode
	To   TaskNode
}

// Edges returns every edge sorted by from then to, for deterministic
// rendering.
func (e *Engine) Edges() []Edge {
	var out []Edge
	for _, n := range e.graph.Nodes() {
		for succ := range e.graph.Successors(n) {
			out = append(out, Edge{From: n, To: succ})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From.String() != out[j].From.String() {
			return out[i].From.String() < out[j].From.String()
		}
		return out[i].To.String() < out[j].To.String()
	})
	return out
}

func collectNeighbors(set map[TaskNode]struct{}) []taskid.TaskID {
	out := make([]taskid.TaskID, 0, len(set))
	for n := range set {
		if id, ok := n.TaskID(); ok {
			out = append(out, id)
		}
	}
	sortTaskIDs(out)
	return out
}

func sortTaskIDs(ids []taskid.TaskID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}
