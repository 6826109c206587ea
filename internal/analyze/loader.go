package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages. Only syntax
// is needed: directives live in comments and member types are kept as
// source expressions.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax

// Options configures a Loader.
type Options struct {
	// Dir is the directory patterns are resolved in; empty means the
	// current directory.
	Dir string
	// BuildTags are passed to the build system as -tags.
	BuildTags []string
	// SkipSuffix excludes files ending with it, typically previously
	// generated output.
	SkipSuffix string
}

// Loader loads Go packages and extracts their optic declarations.
type Loader struct {
	opts Options
	log  *zap.Logger
}

// NewLoader creates a Loader. A nil logger disables logging.
func NewLoader(opts Options, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}

	return &Loader{opts: opts, log: log}
}

// Load loads the packages matching patterns (e.g. "./...",
// "optic-generator/examples/shapes").
func (l *Loader) Load(ctx context.Context, patterns ...string) ([]*Package, error) {
	fset := token.NewFileSet()

	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     l.opts.Dir,
		Fset:    fset,
	}

	if len(l.opts.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(l.opts.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	out := make([]*Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		p := l.extract(fset, pkg)

		l.log.Debug("loaded package",
			zap.String("path", p.Path),
			zap.Int("decls", len(p.Decls)),
			zap.Int("errors", len(p.Diags.Errors)))

		out = append(out, p)
	}

	return out, nil
}

func (l *Loader) extract(fset *token.FileSet, pkg *packages.Package) *Package {
	var files []*ast.File

	for _, f := range pkg.Syntax {
		name := fset.Position(f.Package).Filename
		if l.opts.SkipSuffix != "" && strings.HasSuffix(name, l.opts.SkipSuffix) {
			continue
		}

		files = append(files, f)
	}

	p := Extract(fset, files)
	p.Path = pkg.PkgPath
	p.Name = pkg.Name

	if len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	return p
}
