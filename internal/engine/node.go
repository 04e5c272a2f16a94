package engine

import "github.com/vk/taskgrid/internal/taskid"

// rootName is the display name of the synthetic root node.
const rootName = "___ROOT___"

// TaskNode is one node in the task graph: either a concrete task or the
// synthetic root every task is transitively connected to.
type TaskNode struct {
	id     taskid.TaskID
	isRoot bool
}

// Root is the synthetic root node.
var Root = TaskNode{isRoot: true}

// Node wraps a task id as a graph node.
func Node(id taskid.TaskID) TaskNode {
	return TaskNode{id: id}
}

// TaskID returns the node's task id; ok is false for the root node.
func (n TaskNode) TaskID() (taskid.TaskID, bool) {
	return n.id, !n.isRoot
}

// IsRoot reports whether this is the synthetic root.
func (n TaskNode) IsRoot() bool {
	return n.isRoot
}

func (n TaskNode) String() string {
	if n.isRoot {
		return rootName
	}
	return n.id.String()
}
