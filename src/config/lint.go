package config

// Level controls how much of the codebase gets scanned.
type Level string

const (
	LevelChanged Level = "changed"
	LevelFull    Level = "full"
)

// ModuleConfig holds per-module overrides.
type ModuleConfig struct {
	Enabled *bool          `yaml:"enabled,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

// LintConfig holds scan configuration. Style thresholds live in the
// project's own style document (setup.cfg etc.), not here — this file
// configures the tool, not the rules.
type LintConfig struct {
	Level        Level                   `yaml:"level"`
	CacheDir     string                  `yaml:"cache_dir"`
	TargetBranch string                  `yaml:"target_branch"`
	StyleFile    string                  `yaml:"style_file"` // explicit style document path
	Descriptor   string                  `yaml:"descriptor"` // explicit .ensime descriptor path
	Modules      map[string]ModuleConfig `yaml:"modules"`
}

// DefaultLintConfig returns production defaults.
func DefaultLintConfig() LintConfig {
	return LintConfig{
		Level:   LevelChanged,
		Modules: map[string]ModuleConfig{},
	}
}
