// Package gen turns optic declarations into Go source files.
//
// Generation approach uses the derive package for the declarations and
// text/template + golang.org/x/tools/imports for the file around them.
//
// One generation unit is one output package. Each unit gets its own
// derivation session:
//   - Accessor definitions are derived sequentially in declaration order,
//     so the first declaration owning a name defines it
//   - Review, prism and lens implementations are derived concurrently
//   - Blocks are reassembled in declaration order, so output is stable
package gen
