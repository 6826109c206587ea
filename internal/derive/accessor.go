package derive

import (
	"strconv"

	"optic-generator/internal/decl"
)

// AccessorIdentity is the derived identity of one annotated member.
type AccessorIdentity struct {
	Name   string // Accessor type name, e.g. "_id"
	Member string // Member name as written, e.g. "id", "3", "Circle"
	Target string // Declared type of the member (first field for variants)
	Owner  *decl.TypeDeclaration
}

// member is an annotated member together with how to reach it.
type member struct {
	id    AccessorIdentity
	optic *decl.OpticAnnotation

	field   string // struct field name, variant field name
	index   int    // positional index
	variant string // variant type name
	unit    bool   // variant without fields
}

// members lists the annotated members of d in declaration order. Positional
// fields past decl.MaxPositionalIndex are skipped.
func (s *Session) members(d *decl.TypeDeclaration) []member {
	var out []member

	switch sh := d.Shape.(type) {
	case decl.EnumShape:
		for _, v := range sh.Variants {
			if v.Optic == nil {
				continue
			}

			m := member{
				id:      AccessorIdentity{Name: s.opts.Prefix + v.Name, Member: v.Name, Owner: d},
				optic:   v.Optic,
				variant: v.Name,
			}

			if len(v.Fields) == 0 {
				m.unit = true
				m.id.Target = "struct{}"
			} else {
				m.field = v.Fields[0].Name
				m.id.Target = v.Fields[0].Type
			}

			out = append(out, m)
		}

	case decl.NamedStructShape:
		for _, f := range sh.Fields {
			if f.Optic == nil {
				continue
			}

			out = append(out, member{
				id:    AccessorIdentity{Name: s.opts.Prefix + f.Name, Member: f.Name, Target: f.Type, Owner: d},
				optic: f.Optic,
				field: f.Name,
			})
		}

	case decl.PositionalStructShape:
		for _, f := range sh.Fields {
			if f.Optic == nil || !f.Candidate() {
				continue
			}

			idx := strconv.Itoa(f.Index)
			out = append(out, member{
				id:    AccessorIdentity{Name: s.opts.Prefix + idx, Member: idx, Target: f.Type, Owner: d},
				optic: f.Optic,
				index: f.Index,
			})
		}

	case decl.UnsupportedShape:
	}

	return out
}

// Accessors returns the identities of the annotated members of d.
func (s *Session) Accessors(d *decl.TypeDeclaration) []AccessorIdentity {
	ms := s.members(d)

	out := make([]AccessorIdentity, len(ms))
	for i, m := range ms {
		out[i] = m.id
	}

	return out
}

// resolveModes parses every annotation of ms up front so that a malformed
// directive aborts the call before anything is emitted.
func resolveModes(d *decl.TypeDeclaration, ms []member) ([]decl.MutabilityMode, error) {
	modes := make([]decl.MutabilityMode, len(ms))

	for i, m := range ms {
		mode, err := m.optic.Resolve()
		if err != nil {
			return nil, memberError(d, m.id.Member, err)
		}

		modes[i] = mode
	}

	return modes, nil
}

// accessorType returns the Go type name implementations use for the
// accessor: either the generated type or a conventional runtime accessor.
func (s *Session) accessorType(name string) string {
	if rt, ok := s.registry.Builtin(name); ok {
		return s.opts.RuntimeAlias + "." + rt
	}

	return name
}
