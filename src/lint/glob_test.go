package lint

import "testing"

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern, path string
		want          bool
	}{
		{"*.py", "main.py", true},
		{"*.py", "main.pyc", false},
		{"plugin/*", "plugin/ensime.py", true},
		{"plugin/*", "plugin/sub/deep.py", false},
		{"**/*.py", "a/b/c.py", true},
		{"ensime_shared/**", "ensime_shared/spec/x.py", true},
		{"ensime_shared/**", "other/spec/x.py", false},
	}

	for _, tt := range tests {
		if got := MatchGlob(tt.pattern, tt.path); got != tt.want {
			t.Errorf("MatchGlob(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestMatchExclude(t *testing.T) {
	tests := []struct {
		entry, path string
		want        bool
	}{
		// Plain fragments exclude the directory and everything below it.
		{"doc", "doc", true},
		{"doc", "doc/index.rst", true},
		{"doc", "docs/index.rst", false},
		{"syntax", "syntax/ensime.vim", true},
		{"plugin_integrations", "plugin_integrations/neovim.py", true},
		// Base-name matching catches the fragment at any depth.
		{"__pycache__", "a/b/__pycache__", true},
		// Globbed fragments.
		{"plugin/*", "plugin/ensime.py", true},
		{"plugin/*", "plugin/deep/nested.py", true},
		{"ensime_shared/spec/*", "ensime_shared/spec/config_spec.py", true},
		{"ensime_shared/spec/*", "ensime_shared/config.py", false},
		{"*.pyc", "cached.pyc", true},
		{"*.pyc", "sub/dir/cached.pyc", true},
	}

	for _, tt := range tests {
		if got := matchExclude(tt.entry, tt.path); got != tt.want {
			t.Errorf("matchExclude(%q, %q) = %v, want %v", tt.entry, tt.path, got, tt.want)
		}
	}
}
