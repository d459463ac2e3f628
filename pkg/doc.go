// Package pkg provides the core libraries for cratemap workspace graphs.
//
// # Overview
//
// Cratemap turns a Rust workspace's file tree and mod declarations into a
// live, queryable module graph. The pkg directory is organized into:
//
//  1. [scan] - Source discovery and filesystem fingerprinting
//  2. [modparse] - Line-oriented mod declaration parsing
//  3. [graph] - Graph model, module-path derivation, deterministic builder
//  4. [watch] - Debounced, trigger-merging refresh scheduler
//  5. [errors], [observability], [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow through cratemap:
//
//	Workspace file tree
//	         ↓
//	    [scan] package (collect .rs files, fingerprints)
//	         ↓
//	    [modparse] package (extract mod declarations)
//	         ↓
//	    [graph] package (assemble sorted nodes and edges)
//	         ↓
//	    [watch] package (debounced snapshots to subscribers)
//
// # Quick Start
//
// Build one snapshot, or watch continuously:
//
//	import (
//	    "context"
//	    "github.com/cratemap/cratemap/pkg/graph"
//	    "github.com/cratemap/cratemap/pkg/watch"
//	)
//
//	g, err := graph.Build("/path/to/workspace", 1)
//
//	handle, updates := watch.Spawn(ctx, "/path/to/workspace", watch.Config{})
//	defer handle.Shutdown()
//	for update := range updates {
//	    // update.Graph is immutable and safe to share
//	}
package pkg
