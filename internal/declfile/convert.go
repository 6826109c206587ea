package declfile

import (
	"fmt"
	"strings"

	"optic-generator/internal/decl"
)

// Declarations converts the file into derivation inputs. The file should
// pass Validate first; Declarations only rejects what it cannot represent.
func (f *File) Declarations() ([]*decl.TypeDeclaration, error) {
	out := make([]*decl.TypeDeclaration, 0, len(f.Types))

	for i := range f.Types {
		d, err := f.Types[i].declaration(f.Imports)
		if err != nil {
			return nil, err
		}

		out = append(out, d)
	}

	return out, nil
}

func (t *TypeDef) declaration(fileImports []string) (*decl.TypeDeclaration, error) {
	d := &decl.TypeDeclaration{
		Name:    t.Name,
		Imports: append(append([]string(nil), fileImports...), t.Imports...),
	}

	for _, g := range t.Generics {
		d.Generics = append(d.Generics, decl.GenericParam{Name: g.Name, Constraint: g.Constraint})
	}

	for _, w := range t.Where {
		d.Where = append(d.Where, decl.WherePredicate{Param: w.Param, Constraint: w.Constraint})
	}

	if !t.Derive.IsEmpty() {
		kinds, err := decl.ParseDerivationList(strings.Join(t.Derive, ","))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name, err)
		}

		d.Derive = kinds
	}

	switch {
	case t.Struct != nil:
		var s decl.NamedStructShape
		for _, f := range t.Struct {
			s.Fields = append(s.Fields, decl.NamedField{Name: f.Name, Type: f.Type, Optic: annotation(f.Optic)})
		}

		d.Shape = s

	case t.Tuple != nil:
		var s decl.PositionalStructShape
		for i, e := range t.Tuple {
			s.Fields = append(s.Fields, decl.PositionalField{Index: i, Type: e.Type, Optic: annotation(e.Optic)})
		}

		d.Shape = s

	case t.Enum != nil:
		var s decl.EnumShape
		for _, v := range t.Enum {
			variant := decl.Variant{Name: v.Name, Optic: annotation(v.Optic)}
			for _, f := range v.Fields {
				variant.Fields = append(variant.Fields, decl.VariantField{Name: f.Name, Type: f.Type})
			}

			s.Variants = append(s.Variants, variant)
		}

		d.Shape = s

	case t.Union != nil:
		d.Shape = decl.UnsupportedShape{Name: "union"}

	default:
		return nil, fmt.Errorf("%s: no shape declared", t.Name)
	}

	return d, nil
}

func annotation(payload *string) *decl.OpticAnnotation {
	if payload == nil {
		return nil
	}

	return decl.Annotate(decl.TagPayload(*payload))
}

// FromDeclarations builds a declaration file describing decls, e.g. to
// snapshot what was read from Go source. Unsupported shapes are left out.
func FromDeclarations(pkg string, decls []*decl.TypeDeclaration) *File {
	f := &File{Version: "1", Package: pkg}

	for _, d := range decls {
		t := TypeDef{Name: d.Name, Imports: d.Imports}

		for _, g := range d.Generics {
			t.Generics = append(t.Generics, ParamDef{Name: g.Name, Constraint: g.Constraint})
		}

		for _, w := range d.Where {
			t.Where = append(t.Where, WhereDef{Param: w.Param, Constraint: w.Constraint})
		}

		for _, k := range d.Derive {
			t.Derive = append(t.Derive, strings.ToLower(k.String()))
		}

		switch s := d.Shape.(type) {
		case decl.NamedStructShape:
			t.Struct = []FieldDef{}
			for _, fl := range s.Fields {
				t.Struct = append(t.Struct, FieldDef{Name: fl.Name, Type: fl.Type, Optic: payload(fl.Optic)})
			}

		case decl.PositionalStructShape:
			t.Tuple = []ElemDef{}
			for _, fl := range s.Fields {
				t.Tuple = append(t.Tuple, ElemDef{Type: fl.Type, Optic: payload(fl.Optic)})
			}

		case decl.EnumShape:
			t.Enum = []VariantDef{}
			for _, v := range s.Variants {
				vd := VariantDef{Name: v.Name, Optic: payload(v.Optic)}
				for _, fl := range v.Fields {
					vd.Fields = append(vd.Fields, FieldDef{Name: fl.Name, Type: fl.Type})
				}

				t.Enum = append(t.Enum, vd)
			}

		case decl.UnsupportedShape:
			continue
		}

		f.Types = append(f.Types, t)
	}

	return f
}

func payload(a *decl.OpticAnnotation) *string {
	if a == nil {
		return nil
	}

	p := a.Payload

	return &p
}
