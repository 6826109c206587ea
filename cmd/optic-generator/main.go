// Package main provides the CLI entrypoint for optic-generator.
//
// optic-generator reads annotated Go type declarations (or YAML/JSON
// declaration files) and generates optic accessors plus Lens, Prism,
// Traversal and Review implementations next to them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"optic-generator/internal/config"
)

var (
	configPath    string
	verbose       bool
	prefix        string
	parallelism   int
	runtimeImport string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "optic-generator",
	Short: "Generate optics for annotated Go types",
	Long: `optic-generator derives optic accessors and Lens, Prism, Traversal and
Review implementations from annotated type declarations.

Annotate struct fields with optic tags, enum interfaces with //optic:enum and
their variants with //optic, //optic(ref) or //optic(mut), then run:

  optic-generator gen ./...`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultFile+" if present)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&prefix, "prefix", "", "accessor name prefix")
	pf.IntVar(&parallelism, "parallelism", 0, "concurrent derivation passes")
	pf.StringVar(&runtimeImport, "runtime-import", "", "import path of the optics runtime")

	rootCmd.AddCommand(genCmd, declCmd, checkCmd, watchCmd)
}

// setup loads the configuration, applies flags on top and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		loaded.Verbose = verbose
	}

	if flags.Changed("prefix") {
		loaded.Prefix = prefix
	}

	if flags.Changed("parallelism") {
		loaded.Parallelism = parallelism
	}

	if flags.Changed("runtime-import") {
		loaded.RuntimeImport = runtimeImport
	}

	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded

	zc := zap.NewProductionConfig()
	if cfg.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
