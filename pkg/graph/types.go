package graph

import (
	"cmp"
	"slices"
	"time"

	"github.com/cratemap/cratemap/pkg/errors"
)

// =============================================================================
// Node and Edge Vocabulary
// =============================================================================

// NodeKind distinguishes the two vertex types of an architecture graph.
type NodeKind string

const (
	// NodeKindFile is a source file on disk.
	NodeKindFile NodeKind = "file"
	// NodeKindModule is a logical module, which may or may not have a backing file.
	NodeKindModule NodeKind = "module"
)

// EdgeRelation is the typed relation carried by an edge.
type EdgeRelation string

const (
	// RelationDefinesModule connects a File node to the Module node it implements.
	RelationDefinesModule EdgeRelation = "defines_module"
	// RelationDeclaresModule connects a parent Module to a child Module it
	// textually declares.
	RelationDeclaresModule EdgeRelation = "declares_module"
	// RelationResolvesToFile connects a declared out-of-line child Module to
	// the File node that implements it, when one exists.
	RelationResolvesToFile EdgeRelation = "resolves_to_file"
)

// Node is a graph vertex. IDs are unique within one Graph: file nodes are
// keyed by relative path, module nodes by fully-qualified module path, so two
// nodes may share a DisplayLabel but never an ID.
type Node struct {
	ID           string   `json:"id"`
	DisplayLabel string   `json:"label"`
	Kind         NodeKind `json:"kind"`
	Path         string   `json:"path,omitempty"` // relative source path, if the node has one
}

// Edge is a directed, typed relation between two nodes of the same Graph.
type Edge struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	Relation EdgeRelation `json:"relation"`
}

// Graph is one immutable snapshot of workspace structure.
//
// Revision increases by exactly 1 per successful rebuild, starting from a
// caller-supplied seed. GeneratedAt is the build timestamp supplied by the
// caller's clock.
type Graph struct {
	Nodes       []Node    `json:"nodes"`
	Edges       []Edge    `json:"edges"`
	Revision    uint64    `json:"revision"`
	GeneratedAt time.Time `json:"generated_at"`
}

// FileNodeID returns the node ID for a source file, keyed by its slash-joined
// relative path.
func FileNodeID(relativePath string) string {
	return "file:" + relativePath
}

// ModuleNodeID returns the node ID for a module, keyed by its fully-qualified
// module path.
func ModuleNodeID(modulePath string) string {
	return "module:" + modulePath
}

// =============================================================================
// Invariants
// =============================================================================

var (
	// ErrDuplicateNodeID is returned by [Graph.Validate] when two nodes share
	// an ID. Node IDs must be unique within one graph.
	ErrDuplicateNodeID = errors.New(errors.ErrCodeInvalidGraph, "duplicate node ID")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that is not present in the same graph.
	ErrInvalidEdgeEndpoint = errors.New(errors.ErrCodeInvalidGraph, "edge references unknown node")
)

// Validate checks the structural invariants: unique node IDs and edges whose
// endpoints exist. Graphs produced by Build always pass; this guards graphs
// decoded from external JSON.
func (g *Graph) Validate() error {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if ids[n.ID] {
			return errors.Wrap(errors.ErrCodeInvalidGraph, ErrDuplicateNodeID, "node %s", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range g.Edges {
		if !ids[e.From] || !ids[e.To] {
			return errors.Wrap(errors.ErrCodeInvalidGraph, ErrInvalidEdgeEndpoint, "edge %s -> %s", e.From, e.To)
		}
	}
	return nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Node returns the node with the given ID, if present.
func (g *Graph) Node(id string) (Node, bool) {
	// Nodes are sorted by ID, so a binary search would do, but graphs are
	// small and this keeps Validate-failed graphs searchable too.
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// Ordering
// =============================================================================

func compareNodes(a, b Node) int {
	return cmp.Compare(a.ID, b.ID)
}

func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	if c := cmp.Compare(a.To, b.To); c != 0 {
		return c
	}
	return cmp.Compare(string(a.Relation), string(b.Relation))
}

// sortNodes orders nodes by ID, the canonical graph order.
func sortNodes(nodes []Node) {
	slices.SortFunc(nodes, compareNodes)
}

// sortEdges orders edges by (From, To, Relation), the canonical graph order.
func sortEdges(edges []Edge) {
	slices.SortFunc(edges, compareEdges)
}
