package graph

import (
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cratemap/cratemap/pkg/errors"
	"github.com/cratemap/cratemap/pkg/modparse"
	"github.com/cratemap/cratemap/pkg/observability"
	"github.com/cratemap/cratemap/pkg/scan"
)

// Build scans the workspace under root and assembles its architecture graph,
// stamped with the given revision and the current wall-clock time.
//
// Returns an INVALID_ROOT error if root is not a directory and an IO_ERROR if
// any directory listing or file read fails. There is no partial success: the
// caller receives either a complete graph or an error.
func Build(root string, revision uint64) (*Graph, error) {
	return BuildAt(root, revision, time.Now())
}

// BuildAt is Build with an injected timestamp, so schedulers can thread their
// clock through and tests can pin GeneratedAt for byte-identical output.
func BuildAt(root string, revision uint64, generatedAt time.Time) (*Graph, error) {
	start := time.Now()
	observability.Build().OnBuildStart(root, revision)

	g, err := buildAt(root, revision, generatedAt)

	nodes, edges := 0, 0
	if g != nil {
		nodes, edges = len(g.Nodes), len(g.Edges)
	}
	observability.Build().OnBuildComplete(root, revision, nodes, edges, time.Since(start), err)
	return g, err
}

func buildAt(root string, revision uint64, generatedAt time.Time) (*Graph, error) {
	files, err := scan.Files(root)
	if err != nil {
		return nil, err
	}

	knownFiles := make(map[string]bool, len(files))
	for _, rel := range files {
		knownFiles[rel] = true
	}

	// Accumulators deduplicate by node ID and by full edge tuple; both are
	// sorted before publication.
	nodes := make(map[string]Node)
	edges := make(map[Edge]bool)

	for _, rel := range files {
		fileID := FileNodeID(rel)
		nodes[fileID] = Node{
			ID:           fileID,
			DisplayLabel: path.Base(rel),
			Kind:         NodeKindFile,
			Path:         rel,
		}

		modulePath := ModulePathForFile(rel)
		moduleID := ModuleNodeID(modulePath)
		// A defining file always wins: it attaches the path even when the
		// module node was first seen as a bare declaration.
		nodes[moduleID] = Node{
			ID:           moduleID,
			DisplayLabel: modulePath,
			Kind:         NodeKindModule,
			Path:         rel,
		}
		edges[Edge{From: fileID, To: moduleID, Relation: RelationDefinesModule}] = true

		source, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "failed to read %s", rel)
		}

		for _, declaration := range modparse.Declarations(string(source)) {
			childPath := ChildModulePath(modulePath, declaration.Name)
			childID := ModuleNodeID(childPath)

			if _, exists := nodes[childID]; !exists {
				nodes[childID] = Node{
					ID:           childID,
					DisplayLabel: childPath,
					Kind:         NodeKindModule,
				}
			}
			edges[Edge{From: moduleID, To: childID, Relation: RelationDeclaresModule}] = true

			// Inline modules live in the declaring file; nothing to resolve.
			if declaration.Inline {
				continue
			}

			if resolved, ok := ResolveDeclaredModuleFile(rel, declaration.Name, knownFiles); ok {
				edges[Edge{From: childID, To: FileNodeID(resolved), Relation: RelationResolvesToFile}] = true
			}
		}
	}

	g := &Graph{
		Nodes:       make([]Node, 0, len(nodes)),
		Edges:       make([]Edge, 0, len(edges)),
		Revision:    revision,
		GeneratedAt: generatedAt,
	}
	for _, n := range nodes {
		g.Nodes = append(g.Nodes, n)
	}
	for e := range edges {
		g.Edges = append(g.Edges, e)
	}
	sortNodes(g.Nodes)
	sortEdges(g.Edges)

	return g, nil
}
