package derive

import "optic-generator/internal/decl"

// family selects which capabilities a member supports.
type family int

const (
	familyPrism family = iota // partial: enum variants
	familyLens                // total: struct fields
)

// missKind describes what a partial capability returns when the variant
// does not match.
type missKind int

const (
	missNil     missKind = iota // nil slice
	missZero                    // zero value, false
	missNilPtr                  // nil pointer, false
	missNever                   // lens only, never misses
)

// trait is one capability: one runtime interface, one method, one adapter.
type trait struct {
	Iface   string // runtime interface, e.g. "TraversalRef"
	Method  string // method, e.g. "TraverseRef"
	Adapter string // runtime Func adapter, e.g. "TraverseRefFunc"
	Inner   string // base name of the inner optic type parameter
	ByPtr   bool   // source is passed as *S
	Result  string // result type with %s for the target parameter
	Miss    missKind
}

func (t trait) lensOnly() bool { return t.Miss == missNever }

// tier groups the capabilities unlocked by one mutability mode.
type tier struct {
	Mode   decl.MutabilityMode
	Traits []trait
}

// tiers is ordered from the smallest capability set to the largest.
var tiers = []tier{
	{Mode: decl.Ref, Traits: []trait{
		{Iface: "TraversalRef", Method: "TraverseRef", Adapter: "TraverseRefFunc", Inner: "Tr", ByPtr: true, Result: "[]%s", Miss: missNil},
		{Iface: "PrismRef", Method: "PmRef", Adapter: "PmRefFunc", Inner: "Pm", ByPtr: true, Result: "(%s, bool)", Miss: missZero},
		{Iface: "LensRef", Method: "ViewRef", Adapter: "ViewRefFunc", Inner: "Ls", ByPtr: true, Result: "%s", Miss: missNever},
	}},
	{Mode: decl.Mut, Traits: []trait{
		{Iface: "TraversalMut", Method: "TraverseMut", Adapter: "TraverseMutFunc", Inner: "Tr", ByPtr: true, Result: "[]*%s", Miss: missNil},
		{Iface: "PrismMut", Method: "PmMut", Adapter: "PmMutFunc", Inner: "Pm", ByPtr: true, Result: "(*%s, bool)", Miss: missNilPtr},
		{Iface: "LensMut", Method: "ViewMut", Adapter: "ViewMutFunc", Inner: "Ls", ByPtr: true, Result: "*%s", Miss: missNever},
	}},
	{Mode: decl.Move, Traits: []trait{
		{Iface: "Traversal", Method: "Traverse", Adapter: "TraverseFunc", Inner: "Tr", ByPtr: false, Result: "[]%s", Miss: missNil},
		{Iface: "Prism", Method: "Pm", Adapter: "PmFunc", Inner: "Pm", ByPtr: false, Result: "(%s, bool)", Miss: missZero},
		{Iface: "Lens", Method: "View", Adapter: "ViewFunc", Inner: "Ls", ByPtr: false, Result: "%s", Miss: missNever},
	}},
}

// traitsFor returns the capabilities a member of the given family and mode
// receives, smallest tier first.
func traitsFor(f family, mode decl.MutabilityMode) []trait {
	var out []trait

	for _, t := range tiers {
		if !mode.Includes(t.Mode) {
			continue
		}

		for _, tr := range t.Traits {
			if f == familyPrism && tr.lensOnly() {
				continue
			}

			out = append(out, tr)
		}
	}

	return out
}
