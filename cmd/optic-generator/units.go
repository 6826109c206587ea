package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"optic-generator/internal/analyze"
	"optic-generator/internal/declfile"
	"optic-generator/internal/diagnostic"
	"optic-generator/internal/gen"
)

// isDeclFile reports whether arg names a declaration file rather than a
// package pattern.
func isDeclFile(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// loadUnits turns command arguments into generation units. Declaration
// files write next to themselves unless outDir is set.
func loadUnits(ctx context.Context, args []string, outDir string) ([]gen.Unit, []*analyze.Package, diagnostic.Diagnostics, error) {
	var (
		units    []gen.Unit
		pkgs     []*analyze.Package
		diags    diagnostic.Diagnostics
		patterns []string
	)

	for _, arg := range args {
		if !isDeclFile(arg) {
			patterns = append(patterns, arg)
			continue
		}

		f, err := declfile.LoadFile(arg)
		if err != nil {
			return nil, nil, diags, err
		}

		fd := declfile.Validate(f)
		for i := range fd.Errors {
			fd.Errors[i].Pos = arg
		}

		diags.Merge(*fd)

		if fd.HasErrors() {
			continue
		}

		dir := outDir
		if dir == "" {
			dir = filepath.Dir(arg)
		}

		u, err := gen.UnitFromFile(f, dir)
		if err != nil {
			return nil, nil, diags, err
		}

		units = append(units, u)
	}

	if len(patterns) > 0 {
		loader := analyze.NewLoader(analyze.Options{
			BuildTags:  cfg.BuildTags,
			SkipSuffix: cfg.OutputSuffix,
		}, logger)

		loaded, err := loader.Load(ctx, patterns...)
		if err != nil {
			return nil, nil, diags, err
		}

		for _, p := range loaded {
			diags.Merge(p.Diags)

			if p.Diags.HasErrors() {
				continue
			}

			u := gen.UnitFromPackage(p)
			if outDir != "" {
				u.Dir = outDir
			}

			units = append(units, u)
		}

		pkgs = loaded
	}

	return units, pkgs, diags, nil
}

// cmdContext returns the command context, or a background context for
// commands that were not started through Execute.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// runGeneration loads and derives args, printing diagnostics to errOut.
// When some units fail, the files of the others are still returned along
// with the error; a nil result means nothing could be generated.
func runGeneration(ctx context.Context, errOut io.Writer, args []string, outDir string) (*gen.Result, []*analyze.Package, error) {
	units, pkgs, diags, err := loadUnits(ctx, args, outDir)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("loaded units", zap.Int("units", len(units)))

	res, err := gen.NewGenerator(gen.ConfigFrom(cfg), logger).Generate(ctx, units)
	if err != nil {
		return nil, nil, err
	}

	diags.Merge(res.Diags)
	res.Diags = diags

	printDiagnostics(errOut, &res.Diags)

	if res.Diags.HasErrors() {
		return res, pkgs, fmt.Errorf("generation failed with %d error(s)", len(res.Diags.Errors))
	}

	return res, pkgs, nil
}

func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintf(w, "%s: %s\n", d.Severity, d)
	}
}
