// Package visualize renders a sealed task graph as DOT or Mermaid
// text for inspection.
package visualize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/taskgrid/internal/engine"
)

// Dot renders the graph in Graphviz DOT syntax. Edges point from a
// task to the tasks it depends on.
func Dot(eng *engine.Engine) string {
	var sb strings.Builder
	sb.WriteString("digraph tasks {\n")
	sb.WriteString("\trankdir = \"BT\"\n")
	for _, edge := range eng.Edges() {
		fmt.Fprintf(&sb, "\t%q -> %q\n", edge.From.String(), edge.To.String())
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Mermaid renders the graph as a Mermaid flowchart.
func Mermaid(eng *engine.Engine) string {
	edges := eng.Edges()

	// Stable short ids per node, assigned in sorted name order.
	nameSet := make(map[string]struct{})
	for _, edge := range edges {
		nameSet[edge.From.String()] = struct{}{}
		nameSet[edge.To.String()] = struct{}{}
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)
	ids := make(map[string]string, len(names))
	for i, name := range names {
		ids[name] = fmt.Sprintf("t%d", i)
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for _, edge := range edges {
		from := edge.From.String()
		to := edge.To.String()
		fmt.Fprintf(&sb, "\t%s(%q) --> %s(%q)\n", ids[from], from, ids[to], to)
	}
	return sb.String()
}
