// Package engine holds the task graph in its two states: a mutable
// Building graph that the builder populates, and the sealed immutable
// Engine handed to downstream consumers. Sealing is the only way to get
// an Engine, so every Engine has passed cycle validation.
package engine
