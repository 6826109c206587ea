// Package decl holds the attributed declaration model that optic derivation
// works on.
//
// A TypeDeclaration is produced by a front end (Go source or a declaration
// file) and consumed by package derive. Declarations are ephemeral: they are
// built fresh for each generation run and carry no derivation state.
//
// # Shapes
//
// Shape is a closed sum. The only implementations are EnumShape,
// NamedStructShape, PositionalStructShape and UnsupportedShape; switches over
// a Shape are expected to handle all four.
//
//   - EnumShape: a Go sealed interface whose variants are struct types held by
//     pointer. The first field of a variant is the delegation target.
//   - NamedStructShape: a Go struct with named (or embedded) fields.
//   - PositionalStructShape: a Go array type; element i is positional field i.
//     Only indices 0 through MaxPositionalIndex are derivation candidates.
//   - UnsupportedShape: anything the front end recognised but no derivation
//     supports (unions, plain interfaces, aliases).
package decl
