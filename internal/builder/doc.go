/*
Package builder constructs the task graph. It bridges the static
configuration model (the 'config' package) and the sealed execution
graph (the 'engine' package).

Construction is a multi-phase process:

 1. Entry point seeding: the requested task names are crossed with the
    requested workspaces. Each pair that resolves to a defined task
    becomes an entry point; requested tasks defined nowhere in the
    repository are reported together as missing.

 2. Breadth-first expansion: entry points are expanded through their
    dependsOn lists. Topological dependencies ("^task") fan out to the
    same task in each immediate dependency package; plain dependencies
    resolve within the task's own package; "with" siblings are pulled
    into the graph without an edge. Tasks with no dependencies are
    connected to the synthetic root node.

 3. Validation and sealing: the finished graph is checked for cycles
    and sealed into an immutable engine.Engine.

Task definitions come from walking each package's extends chain
(root-most first) and merging the per-source definitions field by
field. A task entry with "extends": false truncates that chain: with no
other configuration it removes the task, with configuration it starts a
clean-slate redefinition.
*/
package builder
