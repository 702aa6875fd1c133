package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyflint/flint/src/config"
	"github.com/pyflint/flint/src/version"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "flint",
	Short: "Style checker for Python codebases",
	Long:  "Flint — cache-aware, delta-only style checking driven by setup.cfg.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version never needs config.
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile, version.Version)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .flint.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
