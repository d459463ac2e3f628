// Package modparse extracts Rust module declarations from source text.
//
// The parser is a line-oriented heuristic, not a real Rust parser. It
// recognizes declarations of the form
//
//	mod name;
//	pub mod name;
//	pub(crate) mod name { ... }
//
// and classifies each as out-of-line (terminated by `;`, implemented in a
// separate file) or inline (opening a `{` block in the same file).
//
// # Limitations
//
// The heuristic does not handle multi-line declarations, `mod` keywords
// inside string or byte literals, block comments, or conditional-compilation
// attributes. Callers that need exact semantics should use a real Rust
// frontend.
package modparse

import "strings"

// Declaration is one `mod` statement found in a source file.
type Declaration struct {
	Name   string // declared module name
	Inline bool   // true when the body lives in the same file
}

// Declarations returns the module declarations in source, in order of
// appearance.
func Declarations(source string) []Declaration {
	var declarations []Declaration

	for _, line := range strings.SplitAfter(source, "\n") {
		candidate := strings.TrimSpace(line)
		if candidate == "" || strings.HasPrefix(candidate, "//") {
			continue
		}

		// Strip a trailing line comment before analysis.
		if before, _, found := strings.Cut(candidate, "//"); found {
			candidate = strings.TrimSpace(before)
		}
		if candidate == "" || !strings.Contains(candidate, "mod ") {
			continue
		}

		modStart := strings.Index(candidate, "mod ")
		prefix := strings.TrimSpace(candidate[:modStart])
		if !isValidModPrefix(prefix) {
			continue
		}

		rest := candidate[modStart+4:]
		name := leadingIdentifier(rest)
		if name == "" {
			continue
		}

		suffix := strings.TrimLeft(rest[len(name):], " \t")
		var inline bool
		switch {
		case strings.HasPrefix(suffix, "{"):
			inline = true
		case strings.HasPrefix(suffix, ";"):
			inline = false
		default:
			continue
		}

		declarations = append(declarations, Declaration{Name: name, Inline: inline})
	}

	return declarations
}

// isValidModPrefix reports whether the text before the `mod` keyword is an
// accepted visibility marker: empty, `pub`, or a `pub(...)` restriction.
func isValidModPrefix(prefix string) bool {
	return prefix == "" || strings.HasPrefix(prefix, "pub")
}

// leadingIdentifier returns the longest prefix of s made of ASCII
// alphanumerics and underscores.
func leadingIdentifier(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			continue
		}
		return s[:i]
	}
	return s
}
