package pysrc

import (
	"reflect"
	"strings"
	"testing"
)

func TestScanBlanksStrings(t *testing.T) {
	lines := Scan([]byte("x = \"if and or\"  # while\n"))
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	code := lines[0].Code
	if strings.Contains(code, "if") || strings.Contains(code, "while") {
		t.Errorf("Code = %q, want string contents and comment removed", code)
	}
	if !strings.HasPrefix(code, "x = ") {
		t.Errorf("Code = %q, want code part preserved", code)
	}
}

func TestScanTripleQuotedString(t *testing.T) {
	src := "s = \"\"\"\nif x:\n    import os\n\"\"\"\ny = 1\n"
	lines := Scan([]byte(src))

	if !lines[1].InString || !lines[2].InString {
		t.Error("lines inside triple-quoted string should be marked InString")
	}
	if lines[4].InString {
		t.Error("line after closing quote should not be InString")
	}
	if strings.Contains(lines[1].Code, "if") {
		t.Errorf("Code inside string = %q, want blanked", lines[1].Code)
	}
}

func TestScanClassifiesLines(t *testing.T) {
	lines := Scan([]byte("\n# comment\nx = 1\n"))
	if !lines[0].Blank {
		t.Error("line 1 should be blank")
	}
	if !lines[1].Comment {
		t.Error("line 2 should be a comment")
	}
	if lines[2].Blank || lines[2].Comment {
		t.Error("line 3 should be code")
	}
}

func TestNoqa(t *testing.T) {
	tests := []struct {
		src        string
		code       string
		suppressed bool
	}{
		{"x = 1  # noqa", "E501", true},
		{"x = 1  # NOQA", "E501", true},
		{"x = 1  # noqa: E501", "E501", true},
		{"x = 1  # noqa: E501,W291", "W291", true},
		{"x = 1  # noqa: E501", "W291", false},
		{"x = 1  # no directive", "E501", false},
		{"x = '# noqa'", "E501", false},
	}

	for _, tt := range tests {
		lines := Scan([]byte(tt.src))
		got := lines[0].Noqa.Suppresses(tt.code)
		if got != tt.suppressed {
			t.Errorf("%q: Suppresses(%s) = %v, want %v", tt.src, tt.code, got, tt.suppressed)
		}
	}
}

func TestImports(t *testing.T) {
	src := `import os
import collections, sys
from os import path as p
from ensime_shared.util import Util
from . import sibling

def f():
    import json
`
	stmts := Imports(Scan([]byte(src)))

	tops := make([]string, len(stmts))
	for i, s := range stmts {
		tops[i] = s.TopLevel()
	}
	want := []string{"os", "collections", "os", "ensime_shared", ""}
	if !reflect.DeepEqual(tops, want) {
		t.Errorf("top-level names = %v, want %v", tops, want)
	}

	if stmts[1].Modules[1] != "sys" {
		t.Errorf("Modules = %v, want second name sys", stmts[1].Modules)
	}
	if stmts[2].From != "os" || stmts[2].Modules[0] != "path" {
		t.Errorf("from-import parsed as %+v", stmts[2])
	}
}

func TestIsStdlib(t *testing.T) {
	for name, want := range map[string]bool{"os": true, "sexpdata": false, "__future__": true} {
		if got := IsStdlib(name); got != want {
			t.Errorf("IsStdlib(%s) = %v, want %v", name, got, want)
		}
	}
}

func TestFunctionsComplexity(t *testing.T) {
	src := `def simple():
    return 1

def branchy(x):
    if x and x > 1:
        return 1
    elif x:
        for i in range(3):
            x += i
    while x:
        x -= 1
    return x
`
	fns := Functions(Scan([]byte(src)))
	if len(fns) != 2 {
		t.Fatalf("got %d functions, want 2", len(fns))
	}

	byName := map[string]Function{}
	for _, f := range fns {
		byName[f.Name] = f
	}

	if f := byName["simple"]; f.Complexity != 1 {
		t.Errorf("simple: complexity = %d, want 1", f.Complexity)
	}
	// 1 + if + and + elif + for + while = 6
	if f := byName["branchy"]; f.Complexity != 6 {
		t.Errorf("branchy: complexity = %d, want 6", f.Complexity)
	}
	if f := byName["branchy"]; f.Line != 4 {
		t.Errorf("branchy: line = %d, want 4", f.Line)
	}
}

func TestFunctionsIgnoresStringsAndComments(t *testing.T) {
	src := `def f():
    # if and or while
    s = "if if if"
    return s
`
	fns := Functions(Scan([]byte(src)))
	if len(fns) != 1 || fns[0].Complexity != 1 {
		t.Fatalf("got %+v, want one function with complexity 1", fns)
	}
}

func TestIndent(t *testing.T) {
	if Indent("    x") != 4 {
		t.Error("four spaces should indent 4")
	}
	if Indent("\tx") != 8 {
		t.Error("tab should indent to 8")
	}
	if Indent("x") != 0 {
		t.Error("no indent should be 0")
	}
}
