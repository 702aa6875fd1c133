package lint

import (
	"path/filepath"
	"strings"
)

// MatchGlob matches a glob pattern supporting ** against a forward-slash
// path. Exported so modules can reuse the engine's glob semantics.
func MatchGlob(pattern, path string) bool { return matchGlob(pattern, path) }

// matchGlob extends filepath.Match with support for "**" (zero or more
// path segments). Patterns without "**" delegate directly to filepath.Match.
func matchGlob(pattern, path string) bool {
	if !strings.Contains(pattern, "**") {
		matched, _ := filepath.Match(pattern, path)
		return matched
	}

	idx := strings.Index(pattern, "**")
	prefix := pattern[:idx]
	suffix := strings.TrimLeft(pattern[idx+2:], "/")

	if prefix != "" {
		prefix = strings.TrimRight(prefix, "/")
		if !strings.HasPrefix(path, prefix) {
			return false
		}
		path = strings.TrimPrefix(path, prefix)
		path = strings.TrimLeft(path, "/")
	}

	if suffix == "" {
		return true
	}

	// Try matching suffix against every possible tail of path.
	parts := strings.Split(path, "/")
	for i := 0; i <= len(parts); i++ {
		tail := strings.Join(parts[i:], "/")
		if matchGlob(suffix, tail) {
			return true
		}
	}

	return false
}

// matchExclude matches one exclude entry against a normalized relative
// path. Entries are the document's path fragments: a fragment naming a
// directory ("doc") excludes everything under it; fragments with globs
// ("plugin/*", "ensime_shared/spec/*") match by glob against the path or,
// when free of separators, the base name.
func matchExclude(entry, normPath string) bool {
	entry = strings.TrimSuffix(filepath.ToSlash(entry), "/")
	if entry == "" {
		return false
	}

	// Plain fragment: match the path itself or any leading directory.
	if !strings.ContainsAny(entry, "*?[") {
		if normPath == entry || strings.HasPrefix(normPath, entry+"/") {
			return true
		}
		return filepath.Base(normPath) == entry
	}

	if strings.Contains(entry, "/") || strings.Contains(entry, "**") {
		if matchGlob(entry, normPath) {
			return true
		}
		// "plugin/*" also excludes files below a matched directory.
		parts := strings.Split(normPath, "/")
		for i := 1; i < len(parts); i++ {
			if matchGlob(entry, strings.Join(parts[:i], "/")) {
				return true
			}
		}
		return false
	}
	return matchGlob(entry, filepath.Base(normPath))
}
