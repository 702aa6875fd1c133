package style

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// pyprojectDoc maps the subset of pyproject.toml we read. Both [tool.flint]
// and [tool.flake8] are honored; flint wins when both exist.
type pyprojectDoc struct {
	Tool struct {
		Flint  *pyprojectTable `toml:"flint"`
		Flake8 *pyprojectTable `toml:"flake8"`
	} `toml:"tool"`
}

type pyprojectTable struct {
	MaxLineLength          int      `toml:"max-line-length"`
	MaxComplexity          int      `toml:"max-complexity"`
	ApplicationImportNames []string `toml:"application-import-names"`
	Exclude                []string `toml:"exclude"`
	Select                 []string `toml:"select"`
	Ignore                 []string `toml:"ignore"`
}

// parsePyproject reads style settings from a pyproject.toml document.
// Returns nil if no recognized tool table is present.
func parsePyproject(path string, data []byte) (*Config, error) {
	var doc pyprojectDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	table := doc.Tool.Flint
	section := "tool.flint"
	if table == nil {
		table = doc.Tool.Flake8
		section = "tool.flake8"
	}
	if table == nil {
		return nil, nil
	}

	cfg := Default()
	cfg.Source = path
	cfg.Sections = []string{section}

	if table.MaxLineLength != 0 {
		cfg.MaxLineLength = table.MaxLineLength
	}
	if table.MaxComplexity > 0 {
		cfg.MaxComplexity = table.MaxComplexity
	}
	cfg.ApplicationImportNames = table.ApplicationImportNames
	cfg.Exclude = table.Exclude
	cfg.Select = table.Select
	cfg.Ignore = table.Ignore

	return cfg, nil
}
