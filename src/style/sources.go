package style

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// candidateFiles is the discovery order, matching flake8's: the first file
// that actually contains a recognized section wins.
var candidateFiles = []string{"setup.cfg", "tox.ini", ".flake8", "pyproject.toml"}

// Discover finds and loads the style document for a project directory.
// When no candidate file carries a recognized section, defaults are
// returned with an empty Source.
func Discover(dir string) (*Config, error) {
	for _, name := range candidateFiles {
		path := filepath.Join(dir, name)
		cfg, err := loadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if cfg != nil {
			return cfg, nil
		}
	}
	return Default(), nil
}

// Load reads a style document from an explicit path. Unlike Discover, a
// file without any recognized section is an error here: the user pointed
// at it deliberately.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("%s: no [flake8], [pep8], or tool table found", path)
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".toml") {
		return parsePyproject(path, data)
	}
	return parseINI(path, data)
}
