package derive

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"optic-generator/internal/decl"
)

// parseDecls parses generated code as a file body and returns the names of
// its top-level functions and types.
func parseDecls(t *testing.T, code string) (funcs, types []string) {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "gen.go", "package p\n\n"+code, parser.ParseComments)
	require.NoError(t, err, code)

	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				funcs = append(funcs, d.Name.Name)
			}
		case *ast.GenDecl:
			for _, s := range d.Specs {
				if ts, ok := s.(*ast.TypeSpec); ok {
					types = append(types, ts.Name.Name)
				}
			}
		}
	}

	return funcs, types
}

func userDecl(payload string) *decl.TypeDeclaration {
	return &decl.TypeDeclaration{
		Name: "User",
		Shape: decl.NamedStructShape{Fields: []decl.NamedField{
			{Name: "id", Type: "int", Optic: decl.Annotate(payload)},
			{Name: "name", Type: "string"},
		}},
	}
}

func groupDecl() *decl.TypeDeclaration {
	return &decl.TypeDeclaration{
		Name: "Group",
		Shape: decl.NamedStructShape{Fields: []decl.NamedField{
			{Name: "id", Type: "int64", Optic: decl.Annotate("(ref)")},
			{Name: "members", Type: "[]User", Optic: decl.Annotate("")},
		}},
	}
}

func shapeDecl(payload string) *decl.TypeDeclaration {
	return &decl.TypeDeclaration{
		Name: "Shape",
		Shape: decl.EnumShape{Variants: []decl.Variant{
			{Name: "Circle", Fields: []decl.VariantField{{Name: "Radius", Type: "float64"}}, Optic: decl.Annotate(payload)},
			{Name: "Square", Fields: []decl.VariantField{{Name: "Side", Type: "float64"}}},
			{Name: "Dot", Optic: decl.Annotate("(ref)")},
		}},
	}
}

func resultDecl() *decl.TypeDeclaration {
	return &decl.TypeDeclaration{
		Name:     "Result",
		Generics: []decl.GenericParam{{Name: "T"}, {Name: "E", Constraint: "error"}},
		Shape: decl.EnumShape{Variants: []decl.Variant{
			{Name: "Ok", Fields: []decl.VariantField{{Name: "Value", Type: "T"}}, Optic: decl.Annotate("")},
			{Name: "Err", Fields: []decl.VariantField{{Name: "Err", Type: "E"}}, Optic: decl.Annotate("(mut)")},
		}},
	}
}

func octetDecl(n int, annotated ...int) *decl.TypeDeclaration {
	marks := make(map[int]bool, len(annotated))
	for _, i := range annotated {
		marks[i] = true
	}

	fields := make([]decl.PositionalField, n)
	for i := range fields {
		fields[i] = decl.PositionalField{Index: i, Type: "uint8"}
		if marks[i] {
			fields[i].Optic = decl.Annotate("(mut)")
		}
	}

	return &decl.TypeDeclaration{Name: "Octet", Shape: decl.PositionalStructShape{Fields: fields}}
}
