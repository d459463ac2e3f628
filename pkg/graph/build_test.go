package graph

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/cratemap/cratemap/pkg/errors"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func hasEdge(g *Graph, from, to string, relation EdgeRelation) bool {
	return slices.Contains(g.Edges, Edge{From: from, To: to, Relation: relation})
}

func TestBuildAtDeterministicAndSorted(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/lib.rs":     "mod b;\nmod a;\n",
		"src/a.rs":       "mod inner;\n",
		"src/a/inner.rs": "pub fn go() {}\n",
		"src/b.rs":       "pub fn b() {}\n",
		"target/skip.rs": "mod ghost;\n",
	})

	timestamp := time.UnixMilli(7000).UTC()
	one, err := BuildAt(root, 11, timestamp)
	if err != nil {
		t.Fatalf("BuildAt: %v", err)
	}
	two, err := BuildAt(root, 11, timestamp)
	if err != nil {
		t.Fatalf("BuildAt: %v", err)
	}

	if !reflect.DeepEqual(one, two) {
		t.Error("two builds over identical input differ")
	}
	if one.Revision != 11 {
		t.Errorf("revision = %d, want 11", one.Revision)
	}
	if !one.GeneratedAt.Equal(timestamp) {
		t.Errorf("generatedAt = %v, want %v", one.GeneratedAt, timestamp)
	}

	if !slices.IsSortedFunc(one.Nodes, compareNodes) {
		t.Error("nodes not in sorted order")
	}
	if !slices.IsSortedFunc(one.Edges, compareEdges) {
		t.Error("edges not in sorted order")
	}

	for _, n := range one.Nodes {
		if n.Path == "target/skip.rs" {
			t.Error("ignored directory leaked into graph")
		}
	}
	if err := one.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestBuildAtCoreRelations(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/lib.rs":          "mod tools;\nmod inline { fn keep() {} }\n",
		"src/tools/mod.rs":    "pub mod parser;\n",
		"src/tools/parser.rs": "pub fn parse() {}\n",
	})

	g, err := BuildAt(root, 2, time.UnixMilli(2000))
	if err != nil {
		t.Fatalf("BuildAt: %v", err)
	}

	fileNodes := 0
	for _, n := range g.Nodes {
		if n.Kind == NodeKindFile {
			fileNodes++
		}
	}
	if fileNodes != 3 {
		t.Errorf("file nodes = %d, want 3", fileNodes)
	}

	for _, id := range []string{
		"module:crate",
		"module:crate::tools",
		"module:crate::inline",
		"module:crate::tools::parser",
	} {
		if _, ok := g.Node(id); !ok {
			t.Errorf("missing node %s", id)
		}
	}

	if !hasEdge(g, "module:crate", "module:crate::tools", RelationDeclaresModule) {
		t.Error("missing declares edge crate -> crate::tools")
	}
	if !hasEdge(g, "module:crate::tools", "file:src/tools/mod.rs", RelationResolvesToFile) {
		t.Error("missing resolves edge crate::tools -> src/tools/mod.rs")
	}
	if !hasEdge(g, "module:crate::tools", "module:crate::tools::parser", RelationDeclaresModule) {
		t.Error("missing declares edge crate::tools -> crate::tools::parser")
	}
}

// The worked example from the watch design discussions: one resolvable
// declaration, one inline module with a same-named file on disk.
func TestBuildAtEndToEndExample(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/lib.rs": "mod a;\nmod b { fn inline_only() {} }\n",
		"src/a.rs":   "pub fn a() {}\n",
		// A file named after the inline module must NOT be resolved. It still
		// appears as a file node because it is a scanned source file.
		"src/b.rs": "pub fn decoy() {}\n",
	})

	g, err := BuildAt(root, 1, time.UnixMilli(1000))
	if err != nil {
		t.Fatalf("BuildAt: %v", err)
	}

	var files, modules, defines, declares, resolves int
	for _, n := range g.Nodes {
		switch n.Kind {
		case NodeKindFile:
			files++
		case NodeKindModule:
			modules++
		}
	}
	for _, e := range g.Edges {
		switch e.Relation {
		case RelationDefinesModule:
			defines++
		case RelationDeclaresModule:
			declares++
		case RelationResolvesToFile:
			resolves++
		}
	}

	if files != 3 {
		t.Errorf("file nodes = %d, want 3", files)
	}
	if modules != 3 {
		t.Errorf("module nodes = %d, want 3 (crate, a, b)", modules)
	}
	if defines != 3 {
		t.Errorf("defines edges = %d, want one per file", defines)
	}
	if declares != 2 {
		t.Errorf("declares edges = %d, want 2 (crate->a, crate->b)", declares)
	}
	if resolves != 1 {
		t.Errorf("resolves edges = %d, want exactly 1 (a only)", resolves)
	}
	if !hasEdge(g, "module:crate::a", "file:src/a.rs", RelationResolvesToFile) {
		t.Error("missing resolves edge for module a")
	}
	if hasEdge(g, "module:crate::b", "file:src/b.rs", RelationResolvesToFile) {
		t.Error("inline module b must not resolve to a file")
	}
}

func TestBuildAtDanglingDeclaration(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/lib.rs": "mod missing;\n",
	})

	g, err := BuildAt(root, 1, time.UnixMilli(1000))
	if err != nil {
		t.Fatalf("BuildAt: %v", err)
	}

	if !hasEdge(g, "module:crate", "module:crate::missing", RelationDeclaresModule) {
		t.Error("dangling declaration must still produce a declares edge")
	}
	for _, e := range g.Edges {
		if e.Relation == RelationResolvesToFile {
			t.Errorf("unexpected resolves edge %v", e)
		}
	}
	if n, ok := g.Node("module:crate::missing"); !ok || n.Path != "" {
		t.Errorf("declared-only module should exist without a path, got %+v", n)
	}
}

func TestBuildAtRejectsMissingRoot(t *testing.T) {
	_, err := BuildAt(filepath.Join(t.TempDir(), "nope"), 1, time.UnixMilli(0))
	if !errors.Is(err, errors.ErrCodeInvalidRoot) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRoot)
	}
}

func TestBuildUsesWallClock(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/lib.rs": "pub fn ok() {}\n"})

	before := time.Now()
	g, err := Build(root, 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	after := time.Now()

	if g.GeneratedAt.Before(before) || g.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt = %v, want within [%v, %v]", g.GeneratedAt, before, after)
	}
}
