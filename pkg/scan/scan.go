// Package scan enumerates the Rust source files of a workspace.
//
// The scanner walks a workspace root and returns slash-joined relative paths
// of every `.rs` file, skipping well-known non-source directories (build
// output, version control, editor config, vendored dependencies). The result
// is sorted lexicographically, which is the ordering every downstream
// consumer relies on for deterministic output.
//
// The package also computes per-file fingerprints (path, mtime, size) used by
// the watch loop to detect changes without reading file contents.
package scan

import (
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cratemap/cratemap/pkg/errors"
)

// SourceExtension is the file extension of scanned source files.
const SourceExtension = ".rs"

// ignoredDirs are directory names that never contain workspace sources:
// build output, version control, editor configuration, and vendored deps.
var ignoredDirs = map[string]bool{
	"target":       true,
	".git":         true,
	".idea":        true,
	".vscode":      true,
	"node_modules": true,
}

// IsIgnoredDir reports whether a directory with the given name is skipped
// during scanning.
func IsIgnoredDir(name string) bool {
	return ignoredDirs[name]
}

// Files collects all source files under root and returns their slash-joined
// relative paths in sorted order.
//
// Returns an INVALID_ROOT error if root is not an existing directory, and an
// IO_ERROR naming the offending path if any directory cannot be listed. The
// walk uses an explicit work stack rather than recursion so that arbitrarily
// deep trees cannot exhaust the goroutine stack.
func Files(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidRoot, "workspace root must be a directory: %s", root)
	}

	var files []string

	// Relative directory paths still to visit; "" is the root itself.
	stack := []string{""}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		abs := filepath.Join(root, filepath.FromSlash(dir))
		entries, err := os.ReadDir(abs)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "failed to list directory %s", abs)
		}

		// os.ReadDir returns entries sorted by name. Push subdirectories in
		// reverse so the stack pops them in sorted order, keeping the
		// traversal itself reproducible, not just the final sorted list.
		for i := len(entries) - 1; i >= 0; i-- {
			entry := entries[i]
			if entry.IsDir() {
				if IsIgnoredDir(entry.Name()) {
					continue
				}
				stack = append(stack, path.Join(dir, entry.Name()))
				continue
			}
			if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), SourceExtension) {
				continue
			}
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	slices.Sort(files)
	return files, nil
}
