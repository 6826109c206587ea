package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"optic-generator/internal/declfile"
	"optic-generator/internal/gen"
)

var (
	genDryRun    bool
	genOutDir    string
	genDumpDecls string
)

var genCmd = &cobra.Command{
	Use:   "gen [packages or declaration files...]",
	Short: "Generate optics and write them next to their packages",
	Long: `Loads the given Go packages (patterns such as ./... are allowed) and
declaration files (.yaml, .yml, .json), derives optics and writes one
<package>_optics.go file per package.

Example:
  optic-generator gen ./internal/model
  optic-generator gen --dry-run ./...`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGen,
}

func init() {
	genCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "print generated files instead of writing them")
	genCmd.Flags().StringVarP(&genOutDir, "out", "o", "", "write every file into this directory")
	genCmd.Flags().StringVar(&genDumpDecls, "dump-decls", "", "also write the declarations read from Go source as YAML into this directory")
}

func runGen(cmd *cobra.Command, args []string) error {
	res, pkgs, genErr := runGeneration(cmdContext(cmd), cmd.ErrOrStderr(), args, genOutDir)
	if res == nil {
		return genErr
	}

	if genDumpDecls != "" {
		for _, p := range pkgs {
			path := filepath.Join(genDumpDecls, p.Name+".decls.yaml")

			if err := os.MkdirAll(genDumpDecls, 0o755); err != nil {
				return err
			}

			if err := declfile.WriteFile(declfile.FromDeclarations(p.Name, p.Decls), path); err != nil {
				return err
			}

			logger.Info("wrote declarations", zap.String("path", path))
		}
	}

	if genDryRun {
		out := cmd.OutOrStdout()
		for _, f := range res.Files {
			fmt.Fprintf(out, "=== %s ===\n%s\n", filepath.Join(f.Dir, f.Filename), f.Content)
		}

		return genErr
	}

	if err := writeResult(cmd, res, ""); err != nil {
		return err
	}

	return genErr
}

func writeResult(cmd *cobra.Command, res *gen.Result, outDir string) error {
	if err := gen.WriteFiles(res.Files, outDir); err != nil {
		return err
	}

	for _, f := range res.Files {
		path := filepath.Join(f.Dir, f.Filename)
		logger.Info("wrote file", zap.String("path", path), zap.Int("bytes", len(f.Content)))
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	return nil
}
