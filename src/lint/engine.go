package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/pyflint/flint/src/config"
	"github.com/pyflint/flint/src/style"
)

// Engine orchestrates check modules across the Python files of a tree.
// The style document supplies thresholds and exclusions; the tool config
// supplies module selection and options.
type Engine struct {
	Style   *style.Config
	Lint    config.LintConfig
	RootDir string
	Roots   []string // optional root-relative subdirectories to scan
	Modules []Module
	Cache   *Cache
	Verbose bool

	CacheHits   atomic.Int64
	CacheMisses atomic.Int64
}

// NewEngine creates an engine with the selected modules, each configured
// from the tool config and handed the style document.
func NewEngine(styleCfg *style.Config, lintCfg config.LintConfig, rootDir string, moduleNames, skipNames []string, verbose bool, cache *Cache) (*Engine, error) {
	if err := style.Validate(styleCfg); err != nil {
		return nil, err
	}

	skipSet := make(map[string]bool, len(skipNames))
	for _, name := range skipNames {
		skipSet[name] = true
	}

	var modules []Module
	if len(moduleNames) > 0 {
		// Explicit module selection.
		for _, name := range moduleNames {
			if skipSet[name] {
				continue
			}
			m, err := Get(name)
			if err != nil {
				return nil, err
			}
			if err := prepareModule(m, styleCfg, lintCfg, name); err != nil {
				return nil, err
			}
			modules = append(modules, m)
		}
	} else {
		// All default-enabled modules minus skipped and config-disabled.
		for _, name := range All() {
			if skipSet[name] {
				continue
			}
			m, err := Get(name)
			if err != nil {
				return nil, err
			}
			if mc, ok := lintCfg.Modules[name]; ok && mc.Enabled != nil && !*mc.Enabled {
				continue
			}
			if !m.DefaultEnabled() {
				continue
			}
			if err := prepareModule(m, styleCfg, lintCfg, name); err != nil {
				return nil, err
			}
			modules = append(modules, m)
		}
	}

	if len(modules) == 0 {
		return nil, fmt.Errorf("no check modules selected")
	}

	return &Engine{
		Style:   styleCfg,
		Lint:    lintCfg,
		RootDir: rootDir,
		Modules: modules,
		Cache:   cache,
		Verbose: verbose,
	}, nil
}

// ModuleStats holds per-module scan statistics.
type ModuleStats struct {
	Name     string
	Files    int
	Cached   int
	Findings int
	Critical int
	Warnings int
}

// Run executes all modules against the given files and returns findings.
func (e *Engine) Run(ctx context.Context, files []FileInfo) ([]Finding, error) {
	findings, _, err := e.RunWithStats(ctx, files)
	return findings, err
}

// RunWithStats executes all modules and returns findings plus per-module
// statistics. Findings for codes filtered out by the document's
// select/ignore lists are dropped here, after caching, so cache entries
// stay valid when only the filters change.
func (e *Engine) RunWithStats(ctx context.Context, files []FileInfo) ([]Finding, []ModuleStats, error) {
	var (
		mu       sync.Mutex
		findings []Finding
		wg       sync.WaitGroup
		errs     []error
	)

	sem := semaphore.NewWeighted(int64(runtime.NumCPU() * 2))

	modStats := make([]ModuleStats, len(e.Modules))
	for i, m := range e.Modules {
		modStats[i].Name = m.Name()
	}

	record := func(idx int, results []Finding, cached bool, err error) {
		mu.Lock()
		defer mu.Unlock()
		modStats[idx].Files++
		if cached {
			modStats[idx].Cached++
		}
		if err != nil {
			errs = append(errs, err)
			return
		}
		for _, r := range results {
			if !e.Style.Enabled(r.Code) {
				continue
			}
			modStats[idx].Findings++
			switch r.Severity {
			case SeverityCritical:
				modStats[idx].Critical++
			case SeverityWarning:
				modStats[idx].Warnings++
			}
			findings = append(findings, r)
		}
	}

	for _, file := range files {
		if e.isExcluded(file.Path) {
			continue
		}

		// Read content once per file for cache keying.
		var content []byte
		if e.Cache != nil && e.Cache.Enabled {
			var err error
			content, err = os.ReadFile(file.AbsPath)
			if err != nil {
				content = nil // non-fatal, run without cache for this file
			}
		}

		for mi, mod := range e.Modules {
			if err := sem.Acquire(ctx, 1); err != nil {
				// Drain in-flight checks; they append to findings via record.
				wg.Wait()
				return findings, modStats, err
			}
			wg.Add(1)
			go func(m Module, f FileInfo, data []byte, idx int) {
				defer wg.Done()
				defer sem.Release(1)

				if e.Cache != nil && e.Cache.Enabled && data != nil {
					key := e.Cache.Key(data, m.Name(), e.moduleConfigJSON(m.Name()))
					if cached, ok := e.Cache.Get(key); ok {
						e.CacheHits.Add(1)
						record(idx, cached, true, nil)
						return
					}
					e.CacheMisses.Add(1)

					results, err := m.Check(ctx, f)
					if err != nil {
						record(idx, nil, false, fmt.Errorf("%s: %s: %w", m.Name(), f.Path, err))
						return
					}
					record(idx, results, false, nil)
					if cacheErr := e.Cache.Put(key, results); cacheErr != nil && e.Verbose {
						fmt.Fprintf(os.Stderr, "cache: write failed for %s/%s: %v\n", m.Name(), f.Path, cacheErr)
					}
					return
				}

				results, err := m.Check(ctx, f)
				if err != nil {
					record(idx, nil, false, fmt.Errorf("%s: %s: %w", m.Name(), f.Path, err))
					return
				}
				record(idx, results, false, nil)
			}(mod, file, content, mi)
		}
	}

	wg.Wait()

	if len(errs) > 0 {
		return findings, modStats, fmt.Errorf("%d module errors (first: %w)", len(errs), errs[0])
	}
	return findings, modStats, nil
}

// CollectFiles walks the scan roots and returns FileInfo for Python
// sources, minus the document's exclusions.
func (e *Engine) CollectFiles() ([]FileInfo, error) {
	roots := e.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}

	var files []FileInfo
	seen := make(map[string]bool)

	for _, root := range roots {
		base := filepath.Join(e.RootDir, root)
		// Descriptor roots can name build outputs absent from a fresh
		// checkout.
		if _, statErr := os.Stat(base); statErr != nil {
			if e.Verbose {
				fmt.Fprintf(os.Stderr, "scan root %s: %v, skipping\n", root, statErr)
			}
			continue
		}
		err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(e.RootDir, path)
			if err != nil {
				return err
			}

			if d.IsDir() {
				name := filepath.Base(rel)
				if strings.HasPrefix(name, ".") && name != "." {
					return filepath.SkipDir
				}
				if e.isExcluded(rel) && rel != "." {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if filepath.Ext(path) != ".py" {
				return nil
			}
			if e.isExcluded(rel) || seen[rel] {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}
			seen[rel] = true
			files = append(files, FileInfo{
				Path:    rel,
				AbsPath: path,
				Size:    info.Size(),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// ModuleNames returns the names of all active modules in this engine.
func (e *Engine) ModuleNames() []string {
	names := make([]string, len(e.Modules))
	for i, m := range e.Modules {
		names[i] = m.Name()
	}
	return names
}

func (e *Engine) isExcluded(path string) bool {
	if len(e.Style.Exclude) == 0 {
		return false
	}
	normPath := strings.TrimPrefix(filepath.ToSlash(path), "./")
	for _, entry := range e.Style.Exclude {
		if matchExclude(entry, normPath) {
			return true
		}
	}
	return false
}

// prepareModule hands a module its options from the tool config and the
// style document.
func prepareModule(m Module, styleCfg *style.Config, lintCfg config.LintConfig, name string) error {
	if sm, ok := m.(StyleModule); ok {
		sm.ApplyStyle(styleCfg)
	}
	cm, ok := m.(ConfigurableModule)
	if !ok {
		return nil
	}
	mc, exists := lintCfg.Modules[name]
	if !exists || mc.Options == nil {
		// Call with nil so the module can apply defaults.
		return cm.Configure(nil)
	}
	return cm.Configure(mc.Options)
}

// moduleConfigJSON serializes the effective config a module runs with,
// for cache keying. Select/ignore filtering runs after cache retrieval,
// so the filter fields stay out of the key, as do the provenance fields.
func (e *Engine) moduleConfigJSON(name string) string {
	keyed := *e.Style
	keyed.Select = nil
	keyed.Ignore = nil
	keyed.Source = ""
	keyed.Sections = nil

	payload := struct {
		Style   style.Config        `json:"style"`
		Options config.ModuleConfig `json:"options"`
	}{Style: keyed, Options: e.Lint.Modules[name]}

	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}
