package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var declOutDir string

var declCmd = &cobra.Command{
	Use:   "decl <file>...",
	Short: "Generate optics from YAML or JSON declaration files",
	Long: `Reads declaration files and writes <package>_optics.go next to each file,
or into --out.

Example:
  optic-generator decl model/decls.yaml --out model`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecl,
}

func init() {
	declCmd.Flags().StringVarP(&declOutDir, "out", "o", "", "output directory (default: next to each file)")
}

func runDecl(cmd *cobra.Command, args []string) error {
	for _, a := range args {
		if !isDeclFile(a) {
			return fmt.Errorf("%s: expected a .yaml, .yml or .json declaration file", a)
		}
	}

	res, _, genErr := runGeneration(cmdContext(cmd), cmd.ErrOrStderr(), args, declOutDir)
	if res == nil {
		return genErr
	}

	if err := writeResult(cmd, res, ""); err != nil {
		return err
	}

	return genErr
}
