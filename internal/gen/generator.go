package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"optic-generator/internal/common"
	"optic-generator/internal/config"
	"optic-generator/internal/decl"
	"optic-generator/internal/derive"
	"optic-generator/internal/diagnostic"
)

// Header is the first line of every generated file.
const Header = "// Code generated by optic-generator. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Prefix is prepended to member names to form accessor names.
	Prefix string
	// RuntimeImport is the import path of the optics runtime.
	RuntimeImport string
	// RuntimeAlias is the identifier generated code uses for the runtime.
	RuntimeAlias string
	// OutputSuffix names output files: <package><suffix>.
	OutputSuffix string
	// Parallelism bounds concurrent implementation passes.
	Parallelism int
	// DebugDir receives unformatted output when formatting fails; empty
	// means the system temp directory.
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return ConfigFrom(config.Default())
}

// ConfigFrom picks the generator settings out of the tool configuration.
func ConfigFrom(c config.Config) GeneratorConfig {
	return GeneratorConfig{
		Prefix:        c.Prefix,
		RuntimeImport: c.RuntimeImport,
		RuntimeAlias:  c.RuntimeAlias,
		OutputSuffix:  c.OutputSuffix,
		Parallelism:   c.Parallelism,
		DebugDir:      c.DebugDir,
	}
}

// Generator derives optics for generation units and renders their files.
type Generator struct {
	config GeneratorConfig
	log    *zap.Logger
}

// NewGenerator creates a new Generator. A nil logger disables logging.
func NewGenerator(cfg GeneratorConfig, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}

	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}

	return &Generator{config: cfg, log: log}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the unit the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "shapes_optics.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Result is the outcome of one generation run.
type Result struct {
	// Files holds one file per unit that produced output and had no errors.
	Files []GeneratedFile
	Diags diagnostic.Diagnostics
}

// Generate derives every unit. Derivation problems are reported as
// diagnostics and keep the affected unit from producing a file; the
// returned error is reserved for cancellation and internal failures.
func (g *Generator) Generate(ctx context.Context, units []Unit) (*Result, error) {
	res := &Result{}

	for _, u := range units {
		file, diags, err := g.generateUnit(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("generating package %s: %w", u.Package, err)
		}

		res.Diags.Merge(diags)

		if file != nil {
			res.Files = append(res.Files, *file)
		}
	}

	return res, nil
}

// unitBlocks holds the derivation output of one declaration.
type unitBlocks struct {
	decl   *decl.TypeDeclaration
	blocks [4]*derive.Block // indexed by slot()
	errs   [4]error
}

// slot orders blocks inside a declaration's section.
func slot(k decl.DerivationKind) int {
	switch k {
	case decl.DeriveOptic:
		return 0
	case decl.DeriveReview:
		return 1
	case decl.DerivePrism:
		return 2
	default:
		return 3
	}
}

func (g *Generator) generateUnit(ctx context.Context, u Unit) (*GeneratedFile, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	if g.log.Core().Enabled(zap.DebugLevel) {
		g.log.Debug("deriving package",
			zap.String("package", u.Package),
			zap.String("declarations", spew.Sdump(u.Decls)))
	}

	session := derive.NewSession(derive.Options{Prefix: g.config.Prefix, RuntimeAlias: g.config.RuntimeAlias})

	work := make([]*unitBlocks, len(u.Decls))
	for i, d := range u.Decls {
		work[i] = &unitBlocks{decl: d}
	}

	// Accessor definitions first, in order: the registry decides which
	// declaration defines a shared name.
	for _, w := range work {
		if !w.decl.Wants(decl.DeriveOptic) {
			continue
		}

		w.blocks[0], w.errs[0] = session.DeriveOptic(w.decl)
	}

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.config.Parallelism)

	for _, w := range work {
		for _, k := range []decl.DerivationKind{decl.DeriveReview, decl.DerivePrism, decl.DeriveLens} {
			if !w.decl.Wants(k) {
				continue
			}

			grp.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				i := slot(k)
				w.blocks[i], w.errs[i] = session.Derive(w.decl, k)

				return nil
			})
		}
	}

	if err := grp.Wait(); err != nil {
		return nil, diags, err
	}

	var sections []string

	for _, w := range work {
		for i, err := range w.errs {
			if err != nil {
				diags.Add(g.derivationDiagnostic(u, w.decl, err))
				continue
			}

			if b := w.blocks[i]; !b.Empty() {
				g.log.Debug("derived",
					zap.String("type", b.Owner),
					zap.Stringer("kind", b.Kind),
					zap.Strings("defined", b.Defined),
					zap.Int("funcs", len(b.Funcs)))

				sections = append(sections, b.Code)
			}
		}
	}

	diags.Merge(checkAccessors(u, session, work))

	if diags.HasErrors() || len(sections) == 0 {
		return nil, diags, nil
	}

	file, err := g.render(u, sections)
	if err != nil {
		return nil, diags, err
	}

	return file, diags, nil
}

func (g *Generator) derivationDiagnostic(u Unit, d *decl.TypeDeclaration, err error) diagnostic.Diagnostic {
	code := diagnostic.CodeDerive

	switch {
	case errors.Is(err, decl.ErrMalformedDirective):
		code = diagnostic.CodeMalformedDirective
	case errors.Is(err, derive.ErrShapeMismatch):
		code = diagnostic.CodeShapeMismatch
	case errors.Is(err, decl.ErrUnknownParam):
		code = diagnostic.CodeUnknownParam
	case errors.Is(err, derive.ErrRuntimeShadowed):
		code = diagnostic.CodeRuntimeShadowed
	}

	diag := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     code,
		Message:  err.Error(),
		Type:     d.Name,
	}

	if pos, ok := u.Positions[d.Name]; ok {
		diag.Pos = pos.String()
	}

	return diag
}

// importSpec is one line of the generated import block.
type importSpec struct {
	Alias string
	Path  string
}

func (s importSpec) String() string {
	if s.Alias != "" {
		return s.Alias + " " + `"` + s.Path + `"`
	}

	return `"` + s.Path + `"`
}

type fileData struct {
	Header   string
	Package  string
	Std      []importSpec
	Other    []importSpec
	Sections []string
}

var fileTemplate = template.Must(template.New("file").Parse(`{{.Header}}

package {{.Package}}

import (
{{- range .Std}}
	{{.}}
{{- end}}
{{- if and .Std .Other}}
{{end}}
{{- range .Other}}
	{{.}}
{{- end}}
)
{{range .Sections}}
{{.}}{{end}}`))

func (g *Generator) render(u Unit, sections []string) (*GeneratedFile, error) {
	filename := u.Package + g.config.OutputSuffix

	data := fileData{Header: Header, Package: u.Package, Sections: sections}
	data.Std, data.Other = g.imports(u)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		dir := g.config.DebugDir
		if dir == "" {
			dir = os.TempDir()
		}

		if p, werr := writeDebugUnformatted(dir, filename, buf.Bytes()); werr == nil && p != "" {
			g.log.Warn("wrote unformatted output", zap.String("path", p))
		}

		return nil, fmt.Errorf("formatting %s: %w", filename, err)
	}

	return &GeneratedFile{Dir: u.Dir, Filename: filename, Content: formatted}, nil
}

// imports collects the runtime, fmt and declaration imports, split into
// standard library and other paths. The runtime always goes with the other
// paths. Unused imports are pruned when formatting.
func (g *Generator) imports(u Unit) (std, other []importSpec) {
	seen := make(map[string]importSpec)

	add := func(spec importSpec) {
		if _, ok := seen[spec.Path]; !ok {
			seen[spec.Path] = spec
		}
	}

	rt := importSpec{Path: g.config.RuntimeImport}
	if common.PkgAlias(rt.Path) != g.config.RuntimeAlias {
		rt.Alias = g.config.RuntimeAlias
	}

	add(importSpec{Path: "fmt"})

	for _, d := range u.Decls {
		for _, imp := range d.Imports {
			spec := importSpec{Path: common.Unquote(imp)}
			if name, path, ok := strings.Cut(imp, " "); ok {
				spec = importSpec{Alias: name, Path: common.Unquote(path)}
			}

			add(spec)
		}
	}

	other = append(other, rt)
	delete(seen, rt.Path)

	for _, spec := range seen {
		if isStd(spec.Path) {
			std = append(std, spec)
		} else {
			other = append(other, spec)
		}
	}

	byPath := func(s []importSpec) {
		sort.Slice(s, func(i, j int) bool { return s[i].Path < s[j].Path })
	}

	byPath(std)
	byPath(other)

	return std, other
}

func isStd(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
