package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyflint/flint/src/badge"
	"github.com/pyflint/flint/src/lint"
)

var badgeOutput string

var badgeCmd = &cobra.Command{
	Use:   "badge [path]",
	Short: "Generate an SVG status badge",
	Long: `Run a full scan and render the result as a shields-style SVG
badge. Use --output - to write the SVG to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBadge,
}

func init() {
	badgeCmd.Flags().StringVarP(&badgeOutput, "output", "o", "badge.svg", "badge output path, or - for stdout")
	rootCmd.AddCommand(badgeCmd)
}

func runBadge(cmd *cobra.Command, args []string) error {
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
	roots, err := descriptorRoots(rootDir)
	if err != nil {
		return err
	}

	cache := &lint.Cache{Dir: lint.DefaultCacheDir(rootDir, cfg.Lint.CacheDir), Enabled: true}
	engine, err := lint.NewEngine(styleCfg, cfg.Lint, rootDir, nil, nil, verbose, cache)
	if err != nil {
		return err
	}
	engine.Roots = roots

	files, err := engine.CollectFiles()
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}

	findings, err := engine.Run(context.Background(), files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	if badgeOutput == "-" {
		b := badge.ForFindings(badgeLabel(), findings)
		metrics, err := badge.Metrics(cfg.Badge.FontPath, badgeFontSize())
		if err != nil {
			return err
		}
		fmt.Println(badge.New(metrics).Generate(b))
		return nil
	}
	return writeBadgeFile(badgeOutput, findings)
}
