package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [packages or declaration files...]",
	Short: "Derive without writing and report problems and stale files",
	Long: `Runs the full derivation, prints diagnostics and fails if any error was
found or if a generated file on disk differs from what would be written.

Example:
  optic-generator check ./...`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	res, _, err := runGeneration(cmdContext(cmd), cmd.ErrOrStderr(), args, "")
	if err != nil {
		return err
	}

	var stale []string

	for _, f := range res.Files {
		path := filepath.Join(f.Dir, f.Filename)

		have, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if !bytes.Equal(have, f.Content) {
			stale = append(stale, path)
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: [stale_output] generated file is out of date\n", path)
		}
	}

	if len(stale) > 0 {
		return fmt.Errorf("%d generated file(s) out of date", len(stale))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d file(s) up to date\n", len(res.Files))

	return nil
}
