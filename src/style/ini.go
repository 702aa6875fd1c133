package style

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// iniLoadOptions mirrors Python configparser behavior closely enough for
// setup.cfg: ':' as an alternative delimiter, indented continuation lines,
// '#' and ';' comments.
var iniLoadOptions = ini.LoadOptions{
	AllowPythonMultilineValues: true,
	SpaceBeforeInlineComment:   true,
}

// parseINI reads the [flake8] and [pep8] sections of an INI document.
// Keys set in [flake8] override [pep8]. Returns nil if neither section
// is present, so discovery can move on to the next candidate file.
func parseINI(path string, data []byte) (*Config, error) {
	f, err := ini.LoadSources(iniLoadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := Default()
	cfg.Source = path

	// Apply pep8 first so flake8 keys shadow it.
	for _, name := range []string{SectionPep8, SectionFlake8} {
		sec, err := f.GetSection(name)
		if err != nil {
			continue
		}
		cfg.Sections = append(cfg.Sections, name)
		if err := applySection(cfg, sec); err != nil {
			return nil, fmt.Errorf("%s [%s]: %w", path, name, err)
		}
	}

	if len(cfg.Sections) == 0 {
		return nil, nil
	}
	return cfg, nil
}

// applySection copies recognized keys from an INI section onto cfg.
// Both spellings ("max-line-length" and "max_line_length") are accepted,
// as flake8 does.
func applySection(cfg *Config, sec *ini.Section) error {
	if k := sectionKey(sec, "max-line-length"); k != nil {
		n, err := k.Int()
		if err != nil {
			return fmt.Errorf("max-line-length: %w", err)
		}
		cfg.MaxLineLength = n
	}
	if k := sectionKey(sec, "max-complexity"); k != nil {
		n, err := k.Int()
		if err != nil {
			return fmt.Errorf("max-complexity: %w", err)
		}
		if n < 0 {
			n = 0 // flake8 uses -1 for "disabled"
		}
		cfg.MaxComplexity = n
	}
	if k := sectionKey(sec, "application-import-names"); k != nil {
		cfg.ApplicationImportNames = splitList(k.String())
	}
	if k := sectionKey(sec, "exclude"); k != nil {
		cfg.Exclude = splitList(k.String())
	}
	if k := sectionKey(sec, "select"); k != nil {
		cfg.Select = splitList(k.String())
	}
	if k := sectionKey(sec, "ignore"); k != nil {
		cfg.Ignore = splitList(k.String())
	}
	return nil
}

func sectionKey(sec *ini.Section, name string) *ini.Key {
	if sec.HasKey(name) {
		k, _ := sec.GetKey(name)
		return k
	}
	underscored := strings.ReplaceAll(name, "-", "_")
	if sec.HasKey(underscored) {
		k, _ := sec.GetKey(underscored)
		return k
	}
	return nil
}

// splitList splits a comma- or newline-separated value into trimmed,
// non-empty entries.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
