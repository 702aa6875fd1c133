package project

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

const descriptor = `;; sample project descriptor
(:name "fixture"
 :scala-version "2.11.8"
 :source-roots ("src/main/scala")
 :nest ((:id (:project "fixture" :config "compile")
         :targets ("abc" "xyz")
         :source-roots ("module/src"))))
`

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".ensime")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
	return path
}

func TestLoadDescriptor(t *testing.T) {
	cfg, err := Load(writeDescriptor(t, descriptor))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.GetString("scala-version"); got != "2.11.8" {
		t.Errorf("scala-version = %q, want 2.11.8", got)
	}
	if got := cfg.GetString("name"); got != "fixture" {
		t.Errorf("name = %q, want fixture", got)
	}

	nest, ok := cfg.Get("nest").([]map[string]any)
	if !ok || len(nest) != 1 {
		t.Fatalf("nest = %#v, want one nested plist", cfg.Get("nest"))
	}
	targets, _ := nest[0]["targets"].([]any)
	if len(targets) != 2 || targets[0] != "abc" || targets[1] != "xyz" {
		t.Errorf("nest[0].targets = %v, want [abc xyz]", targets)
	}

	keys := cfg.Keys()
	sort.Strings(keys)
	if want := []string{"name", "nest", "scala-version", "source-roots"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys = %v, want %v", keys, want)
	}
	if cfg.Len() != 4 {
		t.Errorf("Len = %d, want 4", cfg.Len())
	}
}

func TestFilepathIsCanonical(t *testing.T) {
	path := writeDescriptor(t, descriptor)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !filepath.IsAbs(cfg.Filepath()) {
		t.Errorf("Filepath = %q, want absolute path", cfg.Filepath())
	}
}

func TestSourceRoots(t *testing.T) {
	cfg, err := Load(writeDescriptor(t, descriptor))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"src/main/scala", "module/src", "abc", "xyz"}
	if got := cfg.SourceRoots(); !reflect.DeepEqual(got, want) {
		t.Errorf("SourceRoots = %v, want %v", got, want)
	}
}

func TestLoadRejectsUnbalanced(t *testing.T) {
	if _, err := Load(writeDescriptor(t, "(:name \"broken\"")); err == nil {
		t.Fatal("expected error for unbalanced descriptor")
	}
}

func TestParseSexp(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want any
	}{
		{"string", `"hi"`, "hi"},
		{"int", "42", int64(42)},
		{"float", "1.5", 1.5},
		{"true", "t", true},
		{"nil", "nil", nil},
		{"symbol", ":java-home", Symbol(":java-home")},
		{"escape", `"a\"b"`, `a"b`},
		{"list", `(1 2)`, []any{int64(1), int64(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSexp(tt.src)
			if err != nil {
				t.Fatalf("parseSexp(%q): %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSexp(%q) = %#v, want %#v", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseSexpErrors(t *testing.T) {
	for _, src := range []string{"(", `"open`, "())", "(:a 1) extra"} {
		if _, err := parseSexp(src); err == nil {
			t.Errorf("parseSexp(%q): expected error", src)
		}
	}
}
