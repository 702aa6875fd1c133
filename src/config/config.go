package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".flint.yml"

// Config is the top-level flint configuration.
type Config struct {
	// RequiredVersion is a semver constraint the running flint must
	// satisfy, like tox's minversion. Empty means any.
	RequiredVersion string `yaml:"required_version"`

	Lint  LintConfig  `yaml:"lint"`
	Badge BadgeConfig `yaml:"badge"`
}

// BadgeConfig controls SVG status badge generation.
type BadgeConfig struct {
	Label    string  `yaml:"label"`
	FontPath string  `yaml:"font"` // optional TTF/OTF for measured widths
	FontSize float64 `yaml:"font_size"`
}

// Load reads configuration from a YAML file.
// If path is empty, it tries the default file.
// Returns sensible defaults if the file doesn't exist.
func Load(path string, runningVersion string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.checkRequiredVersion(runningVersion); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// checkRequiredVersion enforces the required_version constraint against
// the running build. Development builds ("dev") always pass so local
// source checkouts stay usable.
func (c *Config) checkRequiredVersion(running string) error {
	if c.RequiredVersion == "" || running == "" || running == "dev" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.RequiredVersion)
	if err != nil {
		return fmt.Errorf("required_version %q: %w", c.RequiredVersion, err)
	}
	v, err := semver.NewVersion(running)
	if err != nil {
		return fmt.Errorf("running version %q: %w", running, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("flint %s does not satisfy required_version %q", running, c.RequiredVersion)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Lint: DefaultLintConfig(),
		Badge: BadgeConfig{
			Label:    "style",
			FontSize: 11,
		},
	}
}
