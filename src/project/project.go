// Package project reads .ensime project descriptors: an s-expression plist
// of configuration values written by editor tooling. The descriptor names,
// among other things, the source roots a style scan should cover.
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is an immutable view of a parsed project descriptor. Keys keep
// their descriptor spelling minus the leading colon ("source-roots").
type Config struct {
	filepath string
	data     map[string]any
}

// Load parses the descriptor at path.
func Load(path string) (*Config, error) {
	real, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(real); err == nil {
		real = resolved
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	v, err := parseSexp(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: descriptor is not a property list", path)
	}

	data, err := plistToMap(list)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Config{filepath: real, data: data}, nil
}

// Filepath returns the canonical path of the descriptor file.
func (c *Config) Filepath() string { return c.filepath }

// Get returns the value for key, or nil.
func (c *Config) Get(key string) any { return c.data[key] }

// GetString returns the string value for key, or "".
func (c *Config) GetString(key string) string {
	s, _ := c.data[key].(string)
	return s
}

// Len returns the number of top-level keys.
func (c *Config) Len() int { return len(c.data) }

// Keys returns the top-level keys in unspecified order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

// SourceRoots collects source directory strings from the descriptor:
// top-level :source-roots plus :source-roots and :targets of any nested
// subproject entries.
func (c *Config) SourceRoots() []string {
	var roots []string
	roots = append(roots, stringItems(c.data["source-roots"])...)
	for _, key := range []string{"subprojects", "projects", "nest"} {
		nested, ok := c.data[key].([]map[string]any)
		if !ok {
			continue
		}
		for _, sub := range nested {
			roots = append(roots, stringItems(sub["source-roots"])...)
			roots = append(roots, stringItems(sub["targets"])...)
		}
	}
	return roots
}

// plistToMap turns a flat (:key value :key value ...) list into a map.
// A nested list whose first element is itself a list is treated as a list
// of subsidiary plists, mirroring how the descriptor nests subprojects.
func plistToMap(list []any) (map[string]any, error) {
	if len(list)%2 != 0 {
		return nil, fmt.Errorf("property list has odd length %d", len(list))
	}

	m := make(map[string]any, len(list)/2)
	for i := 0; i < len(list); i += 2 {
		key, ok := list[i].(Symbol)
		if !ok {
			return nil, fmt.Errorf("property key %v is not a symbol", list[i])
		}
		name := string(key)
		if len(name) > 0 && name[0] == ':' {
			name = name[1:]
		}

		value := list[i+1]
		if inner, ok := nestedPlists(value); ok {
			m[name] = inner
		} else {
			m[name] = value
		}
	}
	return m, nil
}

func nestedPlists(v any) ([]map[string]any, bool) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	if _, ok := list[0].([]any); !ok {
		return nil, false
	}
	nested := make([]map[string]any, 0, len(list))
	for _, item := range list {
		sub, ok := item.([]any)
		if !ok {
			return nil, false
		}
		m, err := plistToMap(sub)
		if err != nil {
			return nil, false
		}
		nested = append(nested, m)
	}
	return nested, true
}

func stringItems(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
