package graph

import (
	"path"
	"strings"
)

// Module path derivation follows the standard Rust layout conventions:
// src/lib.rs is the crate root, src/main.rs is the binary root, mod.rs files
// contribute no path segment of their own, and everything outside src/ maps
// to a module path joined from its directory components.

const (
	// rootModulePath is the module path of the crate root (src/lib.rs).
	rootModulePath = "crate"
	// workspaceModulePath is the fallback for files that yield no segments.
	workspaceModulePath = "workspace"
	// moduleSeparator joins module path segments.
	moduleSeparator = "::"
)

// ModulePathForFile derives the fully-qualified module path owned by a source
// file, given its slash-joined relative path.
func ModulePathForFile(relativePath string) string {
	components := splitComponents(relativePath)
	if len(components) == 0 {
		return workspaceModulePath
	}

	if components[0] == "src" {
		return modulePathForSrcFile(relativePath, components)
	}

	parts := make([]string, 0, len(components))
	for _, component := range components {
		if segment, ok := moduleSegment(component); ok {
			parts = append(parts, segment)
		}
	}
	if len(parts) == 0 {
		return workspaceModulePath
	}
	return strings.Join(parts, moduleSeparator)
}

func modulePathForSrcFile(relativePath string, components []string) string {
	switch relativePath {
	case "src/lib.rs":
		return rootModulePath
	case "src/main.rs":
		return rootModulePath + moduleSeparator + "main"
	}

	parts := []string{rootModulePath}
	for _, component := range components[1:] {
		if segment, ok := moduleSegment(component); ok {
			parts = append(parts, segment)
		}
	}
	return strings.Join(parts, moduleSeparator)
}

// moduleSegment maps one path component to a module path segment. A mod.rs
// filename contributes no segment; other filenames contribute their stem.
func moduleSegment(component string) (string, bool) {
	if !strings.HasSuffix(component, ".rs") {
		return component, true
	}
	stem := strings.TrimSuffix(component, ".rs")
	if stem == "mod" {
		return "", false
	}
	return stem, true
}

// ChildModulePath returns the fully-qualified path of a declared child module.
func ChildModulePath(parentPath, name string) string {
	return parentPath + moduleSeparator + name
}

// ResolveDeclaredModuleFile locates the file implementing an out-of-line
// module declared by declaringFile, among the known scanned files.
//
// The search base is the declaring file's directory for mod.rs/lib.rs/main.rs
// declarers, or a subdirectory named after the declaring file otherwise.
// Within the base, `<name>.rs` wins over `<name>/mod.rs`. Returns false when
// neither candidate exists; the declaration then stays dangling.
func ResolveDeclaredModuleFile(declaringFile, name string, knownFiles map[string]bool) (string, bool) {
	parentDir := path.Dir(declaringFile)
	if parentDir == "." {
		parentDir = ""
	}
	stem := strings.TrimSuffix(path.Base(declaringFile), ".rs")

	searchBase := parentDir
	if stem != "mod" && stem != "lib" && stem != "main" {
		searchBase = path.Join(parentDir, stem)
	}

	fileCandidate := path.Join(searchBase, name+".rs")
	if knownFiles[fileCandidate] {
		return fileCandidate, true
	}

	modCandidate := path.Join(searchBase, name, "mod.rs")
	if knownFiles[modCandidate] {
		return modCandidate, true
	}

	return "", false
}

// splitComponents splits a slash-joined relative path into its components.
func splitComponents(relativePath string) []string {
	if relativePath == "" {
		return nil
	}
	return strings.Split(relativePath, "/")
}
