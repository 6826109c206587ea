package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strconv"

	"optic-generator/internal/common"
	"optic-generator/internal/decl"
	"optic-generator/internal/diagnostic"
	"optic-generator/internal/match"
)

const tagKey = "optic"

// typeSite is one type declaration as it appears in source.
type typeSite struct {
	spec *ast.TypeSpec
	dirs *directives
	file *ast.File
	pos  token.Position
}

// extractor turns the syntax of one package into declarations.
type extractor struct {
	fset  *token.FileSet
	sites map[string]*typeSite
	order []string
	owner map[string]string // variant name -> enum name
	pkg   *Package
}

// Extract reads the optic declarations of a package from its parsed files.
func Extract(fset *token.FileSet, files []*ast.File) *Package {
	x := &extractor{
		fset:  fset,
		sites: make(map[string]*typeSite),
		owner: make(map[string]string),
		pkg:   &Package{Positions: make(map[string]token.Position)},
	}

	if len(files) > 0 {
		x.pkg.Name = files[0].Name.Name
	}

	x.collect(files)
	x.claimVariants()

	x.pkg.Declared = append([]string(nil), x.order...)

	for _, name := range x.order {
		x.declare(x.sites[name])
	}

	return x.pkg
}

func (x *extractor) collect(files []*ast.File) {
	for _, f := range files {
		for _, d := range f.Decls {
			gen, ok := d.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, s := range gen.Specs {
				spec := s.(*ast.TypeSpec)

				doc := spec.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				site := &typeSite{
					spec: spec,
					dirs: parseDirectives(doc),
					file: f,
					pos:  x.fset.Position(spec.Pos()),
				}

				name := spec.Name.Name
				if prev, ok := x.sites[name]; ok {
					x.errorAt(site.pos, diagnostic.CodeDuplicateType,
						"type declared again, first declared at "+prev.pos.String(), name, "")

					continue
				}

				x.sites[name] = site
				x.order = append(x.order, name)
			}
		}
	}
}

// claimVariants records which struct types are variants of an enum.
func (x *extractor) claimVariants() {
	for _, name := range x.order {
		site := x.sites[name]
		if !site.dirs.enum {
			continue
		}

		for _, v := range site.dirs.variants {
			if other, ok := x.owner[v]; ok && other != name {
				x.errorAt(site.pos, diagnostic.CodeUnknownVariant,
					fmt.Sprintf("variant %s already belongs to enum %s", v, other), name, v)

				continue
			}

			x.owner[v] = name
		}
	}
}

func (x *extractor) declare(site *typeSite) {
	name := site.spec.Name.Name

	for _, p := range site.dirs.problems {
		x.errorAt(site.pos, p.code, p.msg, name, "")
	}

	if enum, ok := x.owner[name]; ok {
		// Variants are read through their enum.
		if _, isStruct := site.spec.Type.(*ast.StructType); !isStruct {
			x.errorAt(site.pos, diagnostic.CodeUnknownVariant,
				"variant of "+enum+" must be a struct type", enum, name)
		}

		return
	}

	if site.dirs.optic != nil {
		x.warnAt(site.pos, diagnostic.CodeUnusedAnnotation,
			"annotation on a type that no //optic:enum lists", name, "")
	}

	if site.dirs.enum {
		if _, isIface := site.spec.Type.(*ast.InterfaceType); !isIface {
			x.errorAt(site.pos, diagnostic.CodeUnsupportedShape,
				"//optic:enum belongs on an interface type", name, "")

			return
		}
	}

	var (
		shape   decl.Shape
		imports = fileImports(site.file)
	)

	switch t := site.spec.Type.(type) {
	case *ast.InterfaceType:
		if !site.dirs.enum {
			if site.dirs.derive == "" {
				return
			}

			shape = decl.UnsupportedShape{Name: "interface"}

			break
		}

		var more []string

		shape, more = x.enumShape(site)
		imports = common.AppendUnique(imports, more...)

	case *ast.StructType:
		s, annotated := structShape(t)
		if !annotated && site.dirs.derive == "" {
			return
		}

		shape = s

	case *ast.ArrayType:
		if len(site.dirs.index) == 0 && site.dirs.derive == "" {
			return
		}

		s, ok := x.arrayShape(site, t)
		if !ok {
			return
		}

		shape = s

	default:
		if site.dirs.empty() {
			return
		}

		shape = decl.UnsupportedShape{Name: exprKind(t)}
	}

	d := &decl.TypeDeclaration{
		Name:     name,
		Generics: typeParams(site.spec.TypeParams),
		Where:    site.dirs.where,
		Shape:    shape,
		Imports:  imports,
	}

	if site.dirs.derive != "" {
		kinds, err := decl.ParseDerivationList(site.dirs.derive)
		if err != nil {
			x.errorAt(site.pos, diagnostic.CodeMalformedDirective, err.Error(), name, "")
			return
		}

		d.Derive = kinds
	}

	x.pkg.Decls = append(x.pkg.Decls, d)
	x.pkg.Positions[name] = site.pos
}

func (x *extractor) enumShape(site *typeSite) (decl.EnumShape, []string) {
	enum := site.spec.Name.Name
	params := typeParams(site.spec.TypeParams)

	var (
		shape   decl.EnumShape
		imports []string
	)

	seen := make(map[string]bool, len(site.dirs.variants))

	for _, vname := range site.dirs.variants {
		if x.owner[vname] != enum || seen[vname] {
			continue
		}

		seen[vname] = true

		vs, ok := x.sites[vname]
		if !ok {
			x.errorAt(site.pos, diagnostic.CodeUnknownVariant,
				"variant "+vname+" is not declared in this package"+match.Hint(vname, x.structNames()), enum, vname)
			continue
		}

		st, ok := vs.spec.Type.(*ast.StructType)
		if !ok {
			continue
		}

		if got := typeParams(vs.spec.TypeParams); !sameParamNames(params, got) {
			x.errorAt(vs.pos, diagnostic.CodeUnknownVariant,
				"variant must declare the same type parameters as "+enum, enum, vname)

			continue
		}

		for _, p := range vs.dirs.problems {
			x.errorAt(vs.pos, p.code, p.msg, enum, vname)
		}

		v := decl.Variant{Name: vname, Optic: vs.dirs.optic}
		for _, f := range fieldNames(st.Fields) {
			v.Fields = append(v.Fields, decl.VariantField{Name: f.name, Type: f.typ})
		}

		shape.Variants = append(shape.Variants, v)
		imports = common.AppendUnique(imports, fileImports(vs.file)...)
	}

	return shape, imports
}

// structNames lists the struct types of the package in source order.
func (x *extractor) structNames() []string {
	var out []string

	for _, name := range x.order {
		if _, ok := x.sites[name].spec.Type.(*ast.StructType); ok {
			out = append(out, name)
		}
	}

	return out
}

func structShape(st *ast.StructType) (decl.NamedStructShape, bool) {
	var (
		shape     decl.NamedStructShape
		annotated bool
	)

	for _, f := range fieldNames(st.Fields) {
		field := decl.NamedField{Name: f.name, Type: f.typ}

		if payload, ok := f.tag.Lookup(tagKey); ok {
			field.Optic = decl.Annotate(decl.TagPayload(payload))
			annotated = true
		}

		shape.Fields = append(shape.Fields, field)
	}

	return shape, annotated
}

func (x *extractor) arrayShape(site *typeSite, at *ast.ArrayType) (decl.Shape, bool) {
	name := site.spec.Name.Name

	lit, ok := at.Len.(*ast.BasicLit)
	if !ok || lit.Kind != token.INT {
		if at.Len == nil {
			return decl.UnsupportedShape{Name: "slice"}, true
		}

		x.errorAt(site.pos, diagnostic.CodeUnsupportedShape, "array length must be an integer literal", name, "")

		return nil, false
	}

	n, err := strconv.ParseInt(lit.Value, 0, 32)
	if err != nil {
		x.errorAt(site.pos, diagnostic.CodeUnsupportedShape, "array length "+lit.Value+": "+err.Error(), name, "")
		return nil, false
	}

	elem := types.ExprString(at.Elt)

	// Fields past the derivation window can never be candidates.
	fields := make([]decl.PositionalField, min(n, decl.MaxPositionalIndex+1))
	for i := range fields {
		fields[i] = decl.PositionalField{Index: i, Type: elem}
	}

	for _, ix := range site.dirs.index {
		member := strconv.Itoa(ix.index)

		if int64(ix.index) >= n {
			x.errorAt(site.pos, diagnostic.CodeIndexOutOfRange,
				fmt.Sprintf("index %d outside array of length %d", ix.index, n), name, member)

			continue
		}

		if ix.index >= len(fields) {
			x.infoAt(site.pos, diagnostic.CodeIndexOutOfRange,
				fmt.Sprintf("only indices 0 to %d are derived", decl.MaxPositionalIndex), name, member)

			continue
		}

		fields[ix.index].Optic = decl.Annotate(ix.payload)
	}

	return decl.PositionalStructShape{Fields: fields}, true
}

type fieldInfo struct {
	name string
	typ  string
	tag  reflect.StructTag
}

// fieldNames flattens a field list, one entry per declared name. Embedded
// fields are named after their type.
func fieldNames(fl *ast.FieldList) []fieldInfo {
	if fl == nil {
		return nil
	}

	var out []fieldInfo

	for _, f := range fl.List {
		typ := types.ExprString(f.Type)

		var tag reflect.StructTag
		if f.Tag != nil {
			if s, err := strconv.Unquote(f.Tag.Value); err == nil {
				tag = reflect.StructTag(s)
			}
		}

		if len(f.Names) == 0 {
			out = append(out, fieldInfo{name: embeddedName(f.Type), typ: typ, tag: tag})
			continue
		}

		for _, n := range f.Names {
			out = append(out, fieldInfo{name: n.Name, typ: typ, tag: tag})
		}
	}

	return out
}

func embeddedName(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return types.ExprString(e)
	}
}

func typeParams(fl *ast.FieldList) []decl.GenericParam {
	var out []decl.GenericParam

	for _, f := range fieldNames(fl) {
		out = append(out, decl.GenericParam{Name: f.name, Constraint: f.typ})
	}

	return out
}

func sameParamNames(a, b []decl.GenericParam) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}

	return true
}

func exprKind(e ast.Expr) string {
	switch e.(type) {
	case *ast.MapType:
		return "map"
	case *ast.FuncType:
		return "func"
	case *ast.ChanType:
		return "chan"
	case *ast.StarExpr:
		return "pointer"
	default:
		return "named type"
	}
}

// fileImports lists the imports of f as "path" or "name path".
func fileImports(f *ast.File) []string {
	var out []string

	for _, imp := range f.Imports {
		path := common.Unquote(imp.Path.Value)

		switch {
		case imp.Name == nil:
			out = append(out, path)
		case imp.Name.Name == "_":
		default:
			out = append(out, imp.Name.Name+" "+path)
		}
	}

	return out
}

func (x *extractor) errorAt(pos token.Position, code, msg, typ, member string) {
	x.pkg.Diags.Add(diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     code,
		Message:  msg,
		Type:     typ,
		Member:   member,
		Pos:      pos.String(),
	})
}

func (x *extractor) warnAt(pos token.Position, code, msg, typ, member string) {
	x.pkg.Diags.Add(diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Code:     code,
		Message:  msg,
		Type:     typ,
		Member:   member,
		Pos:      pos.String(),
	})
}

func (x *extractor) infoAt(pos token.Position, code, msg, typ, member string) {
	x.pkg.Diags.Add(diagnostic.Diagnostic{
		Severity: diagnostic.SeverityInfo,
		Code:     code,
		Message:  msg,
		Type:     typ,
		Member:   member,
		Pos:      pos.String(),
	})
}
