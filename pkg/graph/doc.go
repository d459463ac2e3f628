// Package graph builds and serializes workspace architecture graphs.
//
// A Graph is an immutable snapshot of a Rust workspace's structure: one File
// node per scanned source file, one Module node per logical module, and typed
// edges connecting them (which file defines which module, which module
// declares which child, and which file implements a declared child). A new
// Graph is produced wholesale per build; nothing mutates a published Graph.
//
// # Determinism
//
// Node and edge lists are deduplicated and emitted in a total sort order
// (nodes by ID, edges by From, To, Relation). Two builds over byte-identical
// input with the same revision and timestamp produce structurally equal
// graphs, which makes snapshots diffable and cacheable by content hash.
//
// # Usage
//
// One-shot build:
//
//	g, err := graph.Build(root, 1)
//	if err != nil {
//	    return err
//	}
//	data, _ := graph.MarshalGraph(g)
//
// Continuous rebuilds are driven by the watch package, which calls BuildAt
// with an injected clock and a monotonically increasing revision.
package graph
