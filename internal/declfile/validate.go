package declfile

import (
	"fmt"
	"strconv"
	"strings"

	"optic-generator/internal/decl"
	"optic-generator/internal/diagnostic"
	"optic-generator/internal/match"
)

// Validate checks the structure of a declaration file. It does not derive
// anything; shape mismatches against requested derivations surface later.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "declaration file is nil", "", "")
		return res
	}

	if f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", f.Version), "", "")
	}

	if f.Package == "" {
		res.AddError("missing_package", "package name is required", "", "")
	}

	seen := make(map[string]struct{}, len(f.Types))

	for i := range f.Types {
		t := &f.Types[i]

		if t.Name == "" {
			res.AddError("missing_name", fmt.Sprintf("type #%d has no name", i+1), "", "")
			continue
		}

		if _, ok := seen[t.Name]; ok {
			res.AddError(diagnostic.CodeDuplicateType, "type declared more than once", t.Name, "")
			continue
		}

		seen[t.Name] = struct{}{}

		validateType(res, t)
	}

	return res
}

func validateType(res *diagnostic.Diagnostics, t *TypeDef) {
	keys := t.shapeKeys()

	switch len(keys) {
	case 0:
		res.AddError(diagnostic.CodeUnsupportedShape, "one of struct, tuple, enum or union is required", t.Name, "")
	case 1:
	default:
		res.AddError(diagnostic.CodeUnsupportedShape, "only one shape allowed, got "+strings.Join(keys, ", "), t.Name, "")
	}

	params := make(map[string]struct{}, len(t.Generics))
	for _, g := range t.Generics {
		if g.Name == "" {
			res.AddError("missing_name", "type parameter has no name", t.Name, "")
		}

		params[g.Name] = struct{}{}
	}

	for _, w := range t.Where {
		if _, ok := params[w.Param]; !ok {
			res.AddError(diagnostic.CodeInvalidWhere,
				fmt.Sprintf("%s is not a type parameter%s", w.Param, match.Hint(w.Param, paramNames(t.Generics))), t.Name, "")
		}

		if w.Constraint == "" {
			res.AddError(diagnostic.CodeInvalidWhere, "where predicate on "+w.Param+" has no constraint", t.Name, "")
		}
	}

	if _, err := decl.ParseDerivationList(strings.Join(t.Derive, ",")); err != nil {
		res.AddError(diagnostic.CodeMalformedDirective, err.Error(), t.Name, "")
	}

	validateFields(res, t.Name, t.Struct)
	validateFields(res, t.Name, t.Union)

	var elem string

	for i, e := range t.Tuple {
		member := strconv.Itoa(i)

		if e.Type == "" {
			res.AddError("missing_type", "element has no type", t.Name, member)
		} else if elem == "" {
			elem = e.Type
		} else if e.Type != elem {
			res.AddError(diagnostic.CodeUnsupportedShape,
				fmt.Sprintf("positional elements must share one type, got %s and %s", elem, e.Type), t.Name, member)
		}

		checkOptic(res, t.Name, member, e.Optic)

		if e.Optic != nil && i > decl.MaxPositionalIndex {
			res.AddInfo(diagnostic.CodeIndexOutOfRange,
				fmt.Sprintf("only indices 0 to %d are derived", decl.MaxPositionalIndex), t.Name, member)
		}
	}

	variants := make(map[string]struct{}, len(t.Enum))

	for _, v := range t.Enum {
		if v.Name == "" {
			res.AddError("missing_name", "variant has no name", t.Name, "")
			continue
		}

		if _, ok := variants[v.Name]; ok {
			res.AddError(diagnostic.CodeUnknownVariant, "variant declared more than once", t.Name, v.Name)
		}

		variants[v.Name] = struct{}{}

		validateFields(res, t.Name+"."+v.Name, v.Fields)
		checkOptic(res, t.Name, v.Name, v.Optic)
	}
}

func paramNames(params []ParamDef) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}

	return out
}

func validateFields(res *diagnostic.Diagnostics, owner string, fields []FieldDef) {
	names := make(map[string]struct{}, len(fields))

	for i, f := range fields {
		if f.Name == "" {
			res.AddError("missing_name", fmt.Sprintf("field #%d has no name", i+1), owner, "")
			continue
		}

		if _, ok := names[f.Name]; ok {
			res.AddError("duplicate_member", "field declared more than once", owner, f.Name)
		}

		names[f.Name] = struct{}{}

		if f.Type == "" {
			res.AddError("missing_type", "field has no type", owner, f.Name)
		}

		checkOptic(res, owner, f.Name, f.Optic)
	}
}

func checkOptic(res *diagnostic.Diagnostics, owner, member string, payload *string) {
	if payload == nil {
		return
	}

	if _, err := decl.ParseMutability(decl.TagPayload(*payload)); err != nil {
		res.AddError(diagnostic.CodeMalformedDirective, err.Error(), owner, member)
	}
}
