package scan

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/cratemap/cratemap/pkg/errors"
)

// writeTree creates the given files (relative slash paths) under dir with
// placeholder content, creating parent directories as needed.
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

func TestFiles(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  []string
	}{
		{
			name: "SortedRelativePaths",
			files: map[string]string{
				"src/lib.rs":      "",
				"src/a.rs":        "",
				"src/tools/x.rs":  "",
				"build.rs":        "",
				"README.md":       "not a source file",
				"src/notes.txt":   "not a source file",
				"src/tools/y.rs":  "",
				"benches/perf.rs": "",
			},
			want: []string{
				"benches/perf.rs",
				"build.rs",
				"src/a.rs",
				"src/lib.rs",
				"src/tools/x.rs",
				"src/tools/y.rs",
			},
		},
		{
			name: "IgnoredDirectories",
			files: map[string]string{
				"src/lib.rs":             "",
				"target/debug/ghost.rs":  "",
				".git/hooks/trick.rs":    "",
				".idea/scratch.rs":       "",
				".vscode/snippet.rs":     "",
				"node_modules/dep/x.rs":  "",
				"nested/target/ghost.rs": "",
			},
			want: []string{"src/lib.rs"},
		},
		{
			name:  "Empty",
			files: map[string]string{},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			got, err := Files(root)
			if err != nil {
				t.Fatalf("Files: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Files = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilesMissingRoot(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, errors.ErrCodeInvalidRoot) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRoot)
	}
}

func TestFilesRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "lib.rs")
	if err := os.WriteFile(file, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Files(file)
	if !errors.Is(err, errors.ErrCodeInvalidRoot) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRoot)
	}
}

func TestIsIgnoredDir(t *testing.T) {
	for _, name := range []string{"target", ".git", ".idea", ".vscode", "node_modules"} {
		if !IsIgnoredDir(name) {
			t.Errorf("IsIgnoredDir(%q) = false, want true", name)
		}
	}
	if IsIgnoredDir("src") {
		t.Error("IsIgnoredDir(src) = true, want false")
	}
}
