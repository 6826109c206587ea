package derive

import (
	"fmt"
	"strconv"
	"strings"

	"optic-generator/internal/common"
	"optic-generator/internal/decl"
)

// Block is the output of one derivation call: a run of Go declarations
// ready to be placed next to the owning type.
type Block struct {
	Kind    decl.DerivationKind
	Owner   string
	Code    string   // Concatenated declarations, empty when nothing was emitted
	Defined []string // Accessor types defined by this block
	Funcs   []string // Implementation functions defined by this block
	Uses    []string // Accessor names the implementations refer to
}

// Empty reports whether the block emitted nothing.
func (b *Block) Empty() bool {
	return b == nil || b.Code == ""
}

// Derive runs the entry point named by kind.
func (s *Session) Derive(d *decl.TypeDeclaration, kind decl.DerivationKind) (*Block, error) {
	switch kind {
	case decl.DeriveOptic:
		return s.DeriveOptic(d)
	case decl.DeriveReview:
		return s.DeriveReview(d)
	case decl.DerivePrism:
		return s.DerivePrism(d)
	case decl.DeriveLens:
		return s.DeriveLens(d)
	default:
		return nil, fmt.Errorf("unknown derivation %s", kind)
	}
}

// DeriveOptic emits accessor type definitions for every annotated member
// whose accessor name is not yet in the registry.
func (s *Session) DeriveOptic(d *decl.TypeDeclaration) (*Block, error) {
	path, err := Classify(d)
	if err != nil {
		return nil, err
	}

	ms := s.members(d)
	if _, err := resolveModes(d, ms); err != nil {
		return nil, err
	}

	tmpl := "structAccessor"
	if path == PathEnum {
		tmpl = "enumAccessor"
	}

	// Render before reserving so a failing call leaves the registry untouched.
	type pending struct {
		name string
		code string
	}

	var todo []pending

	for _, m := range ms {
		if s.registry.Contains(m.id.Name) {
			continue
		}

		code, err := render(tmpl, accessorData{Name: m.id.Name, Member: m.id.Member})
		if err != nil {
			return nil, memberError(d, m.id.Member, err)
		}

		todo = append(todo, pending{name: m.id.Name, code: code})
	}

	b := &Block{Kind: decl.DeriveOptic, Owner: d.Name}

	var parts []string

	for _, p := range todo {
		if !s.registry.TryReserve(p.name) {
			continue
		}

		parts = append(parts, p.code)
		b.Defined = append(b.Defined, p.name)
	}

	b.Code = join(parts)

	return b, nil
}

// DeriveLens emits lens-family implementations for the annotated fields of
// a struct.
func (s *Session) DeriveLens(d *decl.TypeDeclaration) (*Block, error) {
	path, err := Classify(d)
	if err != nil {
		return nil, err
	}

	if path != PathNamedStruct && path != PathPositionalStruct {
		return nil, shapeMismatch(d, decl.DeriveLens, "lenses are derived for structs and arrays only")
	}

	return s.deriveTiers(d, decl.DeriveLens, familyLens)
}

// DerivePrism emits prism-family implementations for the annotated variants
// of an enum.
func (s *Session) DerivePrism(d *decl.TypeDeclaration) (*Block, error) {
	path, err := Classify(d)
	if err != nil {
		return nil, err
	}

	if path != PathEnum {
		return nil, shapeMismatch(d, decl.DerivePrism, "prisms are derived for enums only")
	}

	return s.deriveTiers(d, decl.DerivePrism, familyPrism)
}

// DeriveReview emits one Review implementation per annotated variant of an
// enum, independent of the mutability mode.
func (s *Session) DeriveReview(d *decl.TypeDeclaration) (*Block, error) {
	path, err := Classify(d)
	if err != nil {
		return nil, err
	}

	if path != PathEnum {
		return nil, shapeMismatch(d, decl.DeriveReview, "reviews are derived for enums only")
	}

	params, err := s.typeParams(d)
	if err != nil {
		return nil, err
	}

	ms := s.members(d)
	if _, err := resolveModes(d, ms); err != nil {
		return nil, err
	}

	b := &Block{Kind: decl.DeriveReview, Owner: d.Name}

	var parts []string

	for _, m := range ms {
		sc := newScope(params, s.opts.RuntimeAlias)
		from := sc.fresh("From")
		inner := sc.fresh("Rv")
		recv := sc.fresh("o")
		src := sc.fresh("from")

		data := implData{
			Func:       d.Name + m.id.Name + "Review",
			Path:       d.Name + "." + m.id.Member,
			TypeParams: typeParams(params, from+" any", inner+" "+s.opts.RuntimeAlias+".Review["+from+", "+m.id.Target+"]"),
			Recv:       recv,
			Accessor:   s.accessorType(m.id.Name),
			Inner:      inner,
			RT:         s.opts.RuntimeAlias,
			Source:     d.TypeExpr(),
			From:       from,
			Src:        src,
		}

		variant := "&" + m.variant + d.TypeArgs()
		reviewed := recv + ".Optic.Review(" + src + ")"

		if m.unit {
			data.Body = []string{"_ = " + reviewed, "", "return " + variant + "{}"}
		} else {
			data.Body = []string{"return " + variant + "{" + m.field + ": " + reviewed + "}"}
		}

		code, err := render("review", data)
		if err != nil {
			return nil, memberError(d, m.id.Member, err)
		}

		parts = append(parts, code)
		b.Funcs = append(b.Funcs, data.Func)
		b.Uses = common.AppendUnique(b.Uses, m.id.Name)
	}

	b.Code = join(parts)

	return b, nil
}

// deriveTiers emits the tier-selected capabilities of every annotated member.
func (s *Session) deriveTiers(d *decl.TypeDeclaration, kind decl.DerivationKind, fam family) (*Block, error) {
	params, err := s.typeParams(d)
	if err != nil {
		return nil, err
	}

	ms := s.members(d)

	modes, err := resolveModes(d, ms)
	if err != nil {
		return nil, err
	}

	b := &Block{Kind: kind, Owner: d.Name}

	var parts []string

	for i, m := range ms {
		for _, tr := range traitsFor(fam, modes[i]) {
			data := s.implFor(d, params, m, tr, fam)

			code, err := render("impl", data)
			if err != nil {
				return nil, memberError(d, m.id.Member, err)
			}

			parts = append(parts, code)
			b.Funcs = append(b.Funcs, data.Func)
		}

		b.Uses = common.AppendUnique(b.Uses, m.id.Name)
	}

	b.Code = join(parts)

	return b, nil
}

// implFor fills the impl template for one capability of one member.
func (s *Session) implFor(d *decl.TypeDeclaration, params []decl.GenericParam, m member, tr trait, fam family) implData {
	sc := newScope(params, s.opts.RuntimeAlias)
	to := sc.fresh("To")
	inner := sc.fresh(tr.Inner)
	recv := sc.fresh("o")
	src := sc.fresh("source")

	rt := s.opts.RuntimeAlias
	owner := d.TypeExpr()

	param := owner
	if tr.ByPtr {
		param = "*" + owner
	}

	data := implData{
		Func:       d.Name + m.id.Name + tr.Method,
		Iface:      tr.Iface,
		Path:       d.Name + "." + m.id.Member,
		TypeParams: typeParams(params, to+" any", inner+" "+rt+"."+tr.Iface+"["+m.id.Target+", "+to+"]"),
		Recv:       recv,
		Accessor:   s.accessorType(m.id.Name),
		Inner:      inner,
		RT:         rt,
		Adapter:    tr.Adapter,
		Source:     owner,
		To:         to,
		Src:        src,
		Param:      param,
		Result:     fmt.Sprintf(tr.Result, to),
	}

	call := recv + ".Optic." + tr.Method

	if fam == familyLens {
		data.Body = []string{"return " + call + "(" + fieldAccess(m, src, tr.ByPtr) + ")"}
		return data
	}

	v := sc.fresh("v")
	ok := sc.fresh("ok")

	scrutinee := src
	if tr.ByPtr {
		scrutinee = "(*" + src + ")"
	}

	var access string

	switch {
	case m.unit && tr.ByPtr:
		access = "&struct{}{}"
	case m.unit:
		access = "struct{}{}"
	case tr.ByPtr:
		access = "&" + v + "." + m.field
	default:
		access = v + "." + m.field
	}

	data.Body = []string{
		"if " + v + ", " + ok + " := " + scrutinee + ".(*" + m.variant + d.TypeArgs() + "); " + ok + " && " + v + " != nil {",
		"\treturn " + call + "(" + access + ")",
		"}",
		"",
	}

	switch tr.Miss {
	case missZero:
		zero := sc.fresh("zero")
		data.Body = append(data.Body, "var "+zero+" "+to, "", "return "+zero+", false")
	case missNilPtr:
		data.Body = append(data.Body, "return nil, false")
	case missNil, missNever:
		data.Body = append(data.Body, "return nil")
	}

	return data
}

// typeParams returns the owner's type parameters with where predicates
// folded in. A parameter named like the runtime alias would hide the runtime
// package inside the generated signatures and is rejected.
func (s *Session) typeParams(d *decl.TypeDeclaration) ([]decl.GenericParam, error) {
	params, err := d.TypeParams()
	if err != nil {
		return nil, err
	}

	for _, p := range params {
		if p.Name == s.opts.RuntimeAlias {
			return nil, fmt.Errorf("%s: %w: %s", d.Name, ErrRuntimeShadowed, p.Name)
		}
	}

	return params, nil
}

// fieldAccess returns the expression that reaches a struct member from src.
func fieldAccess(m member, src string, byPtr bool) string {
	if m.field == "" {
		idx := strconv.Itoa(m.index)
		if byPtr {
			return "&(*" + src + ")[" + idx + "]"
		}

		return src + "[" + idx + "]"
	}

	if byPtr {
		return "&" + src + "." + m.field
	}

	return src + "." + m.field
}

func typeParams(owner []decl.GenericParam, extra ...string) string {
	parts := make([]string, 0, len(owner)+len(extra))
	for _, p := range owner {
		parts = append(parts, p.Name+" "+p.Constraint)
	}

	parts = append(parts, extra...)

	return strings.Join(parts, ", ")
}

func join(parts []string) string {
	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, "\n\n") + "\n"
}
