package graph

import "testing"

func TestModulePathForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/lib.rs", "crate"},
		{"src/main.rs", "crate::main"},
		{"src/tools.rs", "crate::tools"},
		{"src/tools/mod.rs", "crate::tools"},
		{"src/tools/parser.rs", "crate::tools::parser"},
		{"src/a/b/c.rs", "crate::a::b::c"},
		{"build.rs", "build"},
		{"benches/perf.rs", "benches::perf"},
		{"tests/integration/mod.rs", "tests::integration"},
		{"", "workspace"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ModulePathForFile(tt.path); got != tt.want {
				t.Errorf("ModulePathForFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestChildModulePath(t *testing.T) {
	if got := ChildModulePath("crate::tools", "parser"); got != "crate::tools::parser" {
		t.Errorf("ChildModulePath = %q", got)
	}
}

func TestResolveDeclaredModuleFile(t *testing.T) {
	knownFiles := map[string]bool{
		"src/lib.rs":          true,
		"src/alpha.rs":        true,
		"src/beta/mod.rs":     true,
		"src/nested/mod.rs":   true,
		"src/nested/inner.rs": true,
		"build.rs":            true,
		"util.rs":             true,
	}

	tests := []struct {
		name      string
		declaring string
		module    string
		want      string
		wantOK    bool
	}{
		{
			name:      "SiblingFileFromLibRoot",
			declaring: "src/lib.rs",
			module:    "alpha",
			want:      "src/alpha.rs",
			wantOK:    true,
		},
		{
			name:      "ModRsInSubdirectory",
			declaring: "src/lib.rs",
			module:    "beta",
			want:      "src/beta/mod.rs",
			wantOK:    true,
		},
		{
			name:      "SiblingFromModRsDeclarer",
			declaring: "src/nested/mod.rs",
			module:    "inner",
			want:      "src/nested/inner.rs",
			wantOK:    true,
		},
		{
			name:      "TopLevelDeclarer",
			declaring: "build.rs",
			module:    "util",
			// build.rs is not an index-like file, so the search base is a
			// `build/` subdirectory that holds no candidate.
			wantOK: false,
		},
		{
			name:      "Unresolvable",
			declaring: "src/lib.rs",
			module:    "ghost",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDeclaredModuleFile(tt.declaring, tt.module, knownFiles)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("resolved = %q, want %q", got, tt.want)
			}
		})
	}
}
