// Package optics is the runtime vocabulary targeted by optic-generator.
//
// Every optic capability is a single-method generic interface over a source
// type S and a target type A. Capabilities come in three tiers:
//
//   - Ref: read through a *S without consuming it (TraverseRef, PmRef, ViewRef)
//   - Mut: obtain pointers into a *S (TraverseMut, PmMut, ViewMut)
//   - Move: consume an S by value (Traverse, Pm, View)
//
// and three families: traversals yield zero or more targets, prisms yield
// zero or one, lenses yield exactly one. Review is the construction-only
// inverse of a prism.
//
// Generated code binds an accessor to an owner type by returning one of the
// Func adapters in this package, in the same way http.HandlerFunc adapts a
// function to http.Handler. Because each adapter implements the capability it
// was built for, adapters can be wrapped by outer accessors and chained
// through any depth of nesting. Inside the package that holds the generated
// code:
//
//	name := User_nameViewRef[string](_name[optics.Id[string]]{})
//	owner := Account_ownerViewRef[string](_owner[optics.ViewRefFunc[User, string]]{Optic: name})
//	owner.ViewRef(&account) // account.owner.name
package optics
