// Package style models the style-check configuration document: the
// [flake8]/[pep8] sections of a project's setup.cfg (or tox.ini, .flake8,
// pyproject.toml) holding line-length and complexity thresholds, the
// application import-name whitelist, and path exclusions.
//
// The document is authored once and read at invocation time; this package
// exposes no writer.
package style

// Section names recognized in INI sources. When both are present, keys set
// under [flake8] win over [pep8].
const (
	SectionFlake8 = "flake8"
	SectionPep8   = "pep8"
)

const (
	// DefaultMaxLineLength matches pycodestyle's default.
	DefaultMaxLineLength = 79
)

// Config is the style document. Zero MaxComplexity disables the
// complexity check, matching flake8's default of -1.
type Config struct {
	MaxLineLength int
	MaxComplexity int

	// ApplicationImportNames lists top-level packages that count as
	// first-party for import grouping checks.
	ApplicationImportNames []string

	// Exclude holds path fragments skipped during the scan. Entries come
	// from comma- or newline-separated values in the source document.
	Exclude []string

	// Select/Ignore filter findings by check code prefix ("E", "W291", ...).
	Select []string
	Ignore []string

	// Source is the path of the document the config was read from, and
	// Sections the names of the sections that contributed to it.
	Source   string
	Sections []string
}

// Default returns the configuration used when no document is found.
func Default() *Config {
	return &Config{
		MaxLineLength: DefaultMaxLineLength,
	}
}

// Enabled reports whether a finding code passes the select/ignore filters.
// Select, when non-empty, is an allowlist; Ignore removes from whatever is
// selected. Longer (more specific) prefixes win, as in flake8.
func (c *Config) Enabled(code string) bool {
	sel := len(c.Select) == 0
	selLen := -1
	for _, p := range c.Select {
		if hasCodePrefix(code, p) && len(p) > selLen {
			sel = true
			selLen = len(p)
		}
	}
	if !sel {
		return false
	}
	for _, p := range c.Ignore {
		if hasCodePrefix(code, p) && len(p) > selLen {
			return false
		}
	}
	return true
}

func hasCodePrefix(code, prefix string) bool {
	if len(prefix) > len(code) {
		return false
	}
	return code[:len(prefix)] == prefix
}
