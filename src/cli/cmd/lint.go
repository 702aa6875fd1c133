package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyflint/flint/src/badge"
	"github.com/pyflint/flint/src/lint"
	_ "github.com/pyflint/flint/src/lint/modules" // register check modules
	"github.com/pyflint/flint/src/output"
	"github.com/pyflint/flint/src/project"
	"github.com/pyflint/flint/src/style"
	"github.com/pyflint/flint/src/version"
)

var (
	lintLevel    string
	lintModules  []string
	lintNoModule []string
	lintNoCache  bool
	lintAll      bool
	lintStrict   bool
	lintFormat   string
	lintBadge    string
)

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Run style checks against a Python tree",
	Long: `Run cache-aware, delta-only style checks.

Thresholds and exclusions come from the project's style document
(setup.cfg, tox.ini, .flake8, or pyproject.toml). Scan roots come from
an .ensime project descriptor when one is present.

By default, only changed files are scanned (--level changed).
Use --level full or --all to scan everything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringVar(&lintLevel, "level", "", "scan level: changed or full (default: from config, then changed)")
	lintCmd.Flags().StringSliceVar(&lintModules, "module", nil, "run only these modules (comma-separated)")
	lintCmd.Flags().StringSliceVar(&lintNoModule, "no-module", nil, "skip these modules (comma-separated)")
	lintCmd.Flags().BoolVar(&lintNoCache, "no-cache", false, "disable cache (clear and rescan)")
	lintCmd.Flags().BoolVar(&lintAll, "all", false, "scan all files (shorthand for --level full)")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "exit non-zero on warnings too, not just critical findings")
	lintCmd.Flags().StringVar(&lintFormat, "format", "", "emit a machine-readable report instead of text: json or yaml")
	lintCmd.Flags().StringVar(&lintBadge, "badge", "", "write an SVG status badge to this path after the scan")

	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	if lintAll {
		lintLevel = "full"
	}
	// CLI flag > config > default "changed"
	if lintLevel == "" && cfg.Lint.Level != "" {
		lintLevel = string(cfg.Lint.Level)
	}
	if lintLevel == "" {
		lintLevel = "changed"
	}
	if lintLevel != "changed" && lintLevel != "full" {
		return fmt.Errorf("unknown scan level %q (want changed or full)", lintLevel)
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	if len(args) > 0 {
		rootDir = args[0]
	}

	styleCfg, err := loadStyle(rootDir)
	if err != nil {
		return err
	}
	if verbose && styleCfg.Source != "" {
		fmt.Fprintf(os.Stderr, "style: %s\n", styleCfg.Source)
	}

	roots, err := descriptorRoots(rootDir)
	if err != nil {
		return err
	}

	cache := &lint.Cache{
		Dir:     lint.DefaultCacheDir(rootDir, cfg.Lint.CacheDir),
		Enabled: !lintNoCache,
	}
	if lintNoCache {
		if err := cache.Clear(); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "cache: clear failed: %v\n", err)
		}
	}

	engine, err := lint.NewEngine(styleCfg, cfg.Lint, rootDir, lintModules, lintNoModule, verbose, cache)
	if err != nil {
		return err
	}
	engine.Roots = roots

	if verbose {
		fmt.Fprintf(os.Stderr, "modules: %v\n", engine.ModuleNames())
	}

	files, err := engine.CollectFiles()
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}

	// Delta filtering unless scanning everything.
	if lintLevel != "full" {
		delta := &lint.Delta{RootDir: rootDir, TargetBranch: cfg.Lint.TargetBranch, Verbose: verbose}
		changedSet, deltaErr := delta.ChangedFiles(context.Background())
		if deltaErr != nil && verbose {
			fmt.Fprintf(os.Stderr, "delta: %v, falling back to full scan\n", deltaErr)
		}
		if changedSet != nil {
			allFiles := files
			files = lint.FilterByDelta(files, changedSet)
			if verbose {
				fmt.Fprintf(os.Stderr, "delta: %d/%d files changed\n", len(files), len(allFiles))
			}
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "scanning %d files\n", len(files))
	}

	findings, modStats, runErr := engine.RunWithStats(context.Background(), files)

	// Global sort for stable output.
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		return a.Message < b.Message
	})

	var critical, warning int
	for _, f := range findings {
		switch f.Severity {
		case lint.SeverityCritical:
			critical++
		case lint.SeverityWarning:
			warning++
		}
	}

	if lintFormat != "" {
		report := output.BuildReport(version.Version, findings, len(files), engine.ModuleNames())
		if err := output.WriteReport(os.Stdout, report, lintFormat); err != nil {
			return err
		}
	} else {
		w := os.Stdout
		printer := output.NewPrinter()

		output.SectionStart(w, "flint_lint", "Lint")
		if verbose {
			output.ModuleTable(w, modStats)
		}
		printer.Print(findings)
		printer.Summary(findings, len(files))
		output.SectionEnd(w, "flint_lint")
	}

	if lintBadge != "" {
		if err := writeBadgeFile(lintBadge, findings); err != nil {
			return err
		}
	}

	if verbose && cache.Enabled {
		fmt.Fprintf(os.Stderr, "cache: %d hits, %d misses\n",
			engine.CacheHits.Load(), engine.CacheMisses.Load())
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", runErr)
	}

	if critical > 0 {
		return fmt.Errorf("lint failed: %d critical findings", critical)
	}
	if lintStrict && warning > 0 {
		return fmt.Errorf("lint failed: %d warnings (strict mode)", warning)
	}
	return nil
}

// loadStyle resolves the style document: an explicit config path wins,
// otherwise the discovery order over the scan root.
func loadStyle(rootDir string) (*style.Config, error) {
	if cfg.Lint.StyleFile != "" {
		path := cfg.Lint.StyleFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(rootDir, path)
		}
		return style.Load(path)
	}
	return style.Discover(rootDir)
}

// descriptorRoots reads scan roots from the project's .ensime descriptor.
// Returns nil (scan everything under the root) when there is no
// descriptor or it names no source roots inside the tree.
func descriptorRoots(rootDir string) ([]string, error) {
	path := cfg.Lint.Descriptor
	explicit := path != ""
	if !explicit {
		path = filepath.Join(rootDir, ".ensime")
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, path)
	}

	proj, err := project.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading descriptor %s: %w", path, err)
	}

	var roots []string
	for _, r := range proj.SourceRoots() {
		if filepath.IsAbs(r) {
			rel, err := filepath.Rel(rootDir, r)
			if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				continue // outside the scan root
			}
			r = rel
		}
		roots = append(roots, r)
	}
	return roots, nil
}

func writeBadgeFile(path string, findings []lint.Finding) error {
	b := badge.ForFindings(badgeLabel(), findings)
	metrics, err := badge.Metrics(cfg.Badge.FontPath, badgeFontSize())
	if err != nil {
		return err
	}
	svg := badge.New(metrics).Generate(b)
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("writing badge %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "badge: wrote %s\n", path)
	}
	return nil
}

func badgeLabel() string {
	if cfg.Badge.Label != "" {
		return cfg.Badge.Label
	}
	return "style"
}

func badgeFontSize() float64 {
	if cfg.Badge.FontSize > 0 {
		return cfg.Badge.FontSize
	}
	return 11
}
