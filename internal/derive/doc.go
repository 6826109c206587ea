// Package derive turns one annotated declaration into Go source for optic
// accessors and their implementations.
//
// There are four entry points, one per optic family:
//
//   - DeriveOptic emits accessor type definitions, consulting the session
//     registry so that each accessor name is defined once per session.
//   - DeriveReview emits construction-only implementations for enum variants.
//   - DerivePrism emits partial implementations for enum variants.
//   - DeriveLens emits total implementations for struct fields.
//
// Review, Prism and Lens never define accessor types; they assume DeriveOptic
// already ran for the same members, here or in another declaration that
// shares the names.
//
// # Capability tiers
//
// The mutability mode of a member selects how many tiers are emitted:
//
//	mode   lens family                         prism family
//	ref    TraverseRef PmRef ViewRef           TraverseRef PmRef
//	mut    + TraverseMut PmMut ViewMut         + TraverseMut PmMut
//	move   + Traverse Pm View                  + Traverse Pm
//
// Each implementation is a generic function named Owner+Accessor+Method that
// binds an accessor value to the owner and returns the matching optics Func
// adapter. Lens and prism share one template; they differ only in how the
// member is reached and what a miss returns.
package derive
