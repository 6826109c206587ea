package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"optic-generator/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file or dir>...",
	Short: "Regenerate whenever declaration files or package sources change",
	Long: `Watches declaration files and package directories and reruns gen for
them on every change. Generated files are ignored.

Example:
  optic-generator watch model/decls.yaml ./internal/model`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	targets := make([]string, len(args))
	for i, a := range args {
		targets[i] = a
		if !isDeclFile(a) && !strings.HasPrefix(a, ".") && !strings.HasPrefix(a, "/") {
			targets[i] = "./" + a
		}
	}

	regen := func(ctx context.Context, _ []string) error {
		res, _, genErr := runGeneration(ctx, cmd.ErrOrStderr(), targets, "")
		if res == nil {
			return genErr
		}

		if err := writeResult(cmd, res, ""); err != nil {
			return err
		}

		return genErr
	}

	if err := regen(ctx, nil); err != nil {
		logger.Error("initial generation failed", zap.Error(err))
	}

	w := watch.New(args,
		watch.WithLogger(logger),
		watch.WithFilter(func(p string) bool {
			if isDeclFile(p) {
				return true
			}

			return strings.HasSuffix(p, ".go") &&
				!strings.HasSuffix(p, "_test.go") &&
				!strings.HasSuffix(p, cfg.OutputSuffix)
		}))

	return w.Run(ctx, regen)
}
