package style

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// importNameRe matches a Python identifier, optionally dotted
// (e.g. "ensime_shared" or "acme.tools").
var importNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Validate checks the structural invariants of a style document:
// thresholds are sane integers, exclude entries are well-formed relative
// path fragments, and import names are identifier-like. All problems are
// collected into a single error.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.MaxLineLength <= 0 {
		errs = append(errs, fmt.Sprintf("max-line-length: must be a positive integer, got %d", cfg.MaxLineLength))
	}
	if cfg.MaxComplexity < 0 {
		errs = append(errs, fmt.Sprintf("max-complexity: must be non-negative, got %d", cfg.MaxComplexity))
	}

	for _, e := range cfg.Exclude {
		if msg := checkExcludeEntry(e); msg != "" {
			errs = append(errs, fmt.Sprintf("exclude: %s", msg))
		}
	}

	for _, name := range cfg.ApplicationImportNames {
		if !importNameRe.MatchString(name) {
			errs = append(errs, fmt.Sprintf("application-import-names: %q is not a valid Python identifier", name))
		}
	}

	for _, code := range append(append([]string{}, cfg.Select...), cfg.Ignore...) {
		if !isCheckCode(code) {
			errs = append(errs, fmt.Sprintf("select/ignore: %q is not a check code", code))
		}
	}

	if len(errs) > 0 {
		src := cfg.Source
		if src == "" {
			src = "style config"
		}
		return fmt.Errorf("%s: %s", src, strings.Join(errs, "; "))
	}
	return nil
}

// checkExcludeEntry returns a problem description for a malformed exclude
// path fragment, or "" if it is fine. Fragments stay relative: the engine
// matches them against paths below the scan root.
func checkExcludeEntry(e string) string {
	switch {
	case e == "":
		return "empty entry"
	case strings.ContainsRune(e, 0):
		return fmt.Sprintf("%q contains NUL", e)
	case filepath.IsAbs(e):
		return fmt.Sprintf("%q must be relative", e)
	case strings.Contains(e, ".."):
		return fmt.Sprintf("%q must not contain '..'", e)
	}
	return ""
}

// isCheckCode accepts a letter followed by optional digits ("E", "W291",
// "C901"), the shape flake8 uses for select/ignore entries.
func isCheckCode(code string) bool {
	if code == "" {
		return false
	}
	c := code[0]
	if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
		return false
	}
	for i := 1; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
