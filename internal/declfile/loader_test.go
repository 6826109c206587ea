package declfile

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optic-generator/internal/decl"
)

func wantShapes() []*decl.TypeDeclaration {
	return []*decl.TypeDeclaration{
		{
			Name: "User",
			Shape: decl.NamedStructShape{Fields: []decl.NamedField{
				{Name: "id", Type: "int", Optic: decl.Annotate("")},
				{Name: "created", Type: "time.Time", Optic: decl.Annotate("(ref)")},
				{Name: "notes", Type: "string"},
			}},
			Imports: []string{"time"},
		},
		{
			Name: "Shape",
			Shape: decl.EnumShape{Variants: []decl.Variant{
				{Name: "Circle", Fields: []decl.VariantField{{Name: "Radius", Type: "float64"}}, Optic: decl.Annotate("(mut)")},
				{Name: "Square", Fields: []decl.VariantField{{Name: "Side", Type: "float64"}}},
				{Name: "Dot", Optic: decl.Annotate("(ref)")},
			}},
			Derive:  []decl.DerivationKind{decl.DeriveOptic, decl.DerivePrism},
			Imports: []string{"time"},
		},
		{
			Name: "RGB",
			Shape: decl.PositionalStructShape{Fields: []decl.PositionalField{
				{Index: 0, Type: "uint8", Optic: decl.Annotate("(ref)")},
				{Index: 1, Type: "uint8"},
				{Index: 2, Type: "uint8", Optic: decl.Annotate("")},
			}},
			Imports: []string{"time"},
		},
		{
			Name:     "Pair",
			Generics: []decl.GenericParam{{Name: "K", Constraint: "comparable"}, {Name: "V"}},
			Where:    []decl.WherePredicate{{Param: "K", Constraint: "fmt.Stringer"}},
			Shape: decl.NamedStructShape{Fields: []decl.NamedField{
				{Name: "key", Type: "K", Optic: decl.Annotate("")},
				{Name: "value", Type: "V", Optic: decl.Annotate("(mut)")},
			}},
			Imports: []string{"time", "fmt"},
		},
	}
}

func TestLoadFile(t *testing.T) {
	for _, name := range []string{"shapes.yaml", "shapes.json"} {
		t.Run(name, func(t *testing.T) {
			f, err := LoadFile(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, "1", f.Version)
			assert.Equal(t, "shapes", f.Package)

			diags := Validate(f)
			require.NoError(t, diags.Error())
			assert.Empty(t, diags.Warnings)

			got, err := f.Declarations()
			require.NoError(t, err)

			if diff := cmp.Diff(wantShapes(), got); diff != "" {
				t.Errorf("declarations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read declaration file")
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("types: {"), FormatYAML)
	require.Error(t, err)

	_, err = Parse([]byte(`{"types": [`), FormatJSON)
	require.Error(t, err)

	_, err = Parse([]byte(`{"types": [{"name": "A", "derive": 3}]}`), FormatJSON)
	require.Error(t, err)
}

func TestStringOrArray(t *testing.T) {
	f, err := Parse([]byte(`
package: p
types:
  - name: A
    derive: [optic, lens]
    struct: []
  - name: B
    derive: "optic lens"
    struct: []
`), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, StringOrArray{"optic", "lens"}, f.Types[0].Derive)
	assert.Equal(t, StringOrArray{"optic", "lens"}, f.Types[1].Derive)
	assert.True(t, f.Types[1].Derive.Contains("lens"))
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatOf("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatOf("decls"))
}

func TestWriteFile_FromDeclarations(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			want := wantShapes()
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, WriteFile(FromDeclarations("shapes", want), path))

			f, err := LoadFile(path)
			require.NoError(t, err)
			require.NoError(t, Validate(f).Error())

			got, err := f.Declarations()
			require.NoError(t, err)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("declarations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
