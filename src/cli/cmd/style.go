package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pyflint/flint/src/style"
)

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Inspect the project's style document",
}

var styleShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print the effective style configuration",
	Long: `Print the effective style configuration after discovery and
section merging, as YAML. The path argument is the project directory
to discover in, or an explicit document file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveStyleArg(args)
		if err != nil {
			return err
		}

		if cfg.Source != "" {
			fmt.Printf("# source: %s\n", cfg.Source)
		} else {
			fmt.Println("# source: built-in defaults")
		}
		out, err := yaml.Marshal(styleView(cfg))
		if err != nil {
			return err
		}
		os.Stdout.Write(out)
		return nil
	},
}

var styleValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check the style document for errors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveStyleArg(args)
		if err != nil {
			return err
		}
		if err := style.Validate(cfg); err != nil {
			return err
		}
		if cfg.Source != "" {
			fmt.Printf("%s: ok\n", cfg.Source)
		} else {
			fmt.Println("built-in defaults: ok")
		}
		return nil
	},
}

func init() {
	styleCmd.AddCommand(styleShowCmd)
	styleCmd.AddCommand(styleValidateCmd)
	rootCmd.AddCommand(styleCmd)
}

// resolveStyleArg loads a style document from the optional path
// argument: a directory runs discovery, a file loads directly. Without
// an argument the working directory is discovered.
func resolveStyleArg(args []string) (*style.Config, error) {
	if len(args) == 0 {
		dir, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		return style.Discover(dir)
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return style.Discover(args[0])
	}
	return style.Load(args[0])
}

// styleView shapes a style config for display.
func styleView(cfg *style.Config) map[string]any {
	v := map[string]any{
		"max-line-length": cfg.MaxLineLength,
	}
	if cfg.MaxComplexity > 0 {
		v["max-complexity"] = cfg.MaxComplexity
	}
	if len(cfg.ApplicationImportNames) > 0 {
		v["application-import-names"] = cfg.ApplicationImportNames
	}
	if len(cfg.Exclude) > 0 {
		v["exclude"] = cfg.Exclude
	}
	if len(cfg.Select) > 0 {
		v["select"] = cfg.Select
	}
	if len(cfg.Ignore) > 0 {
		v["ignore"] = cfg.Ignore
	}
	return v
}
