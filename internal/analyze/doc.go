// Package analyze is the Go source front end of the optic generator.
//
// It loads packages with golang.org/x/tools/go/packages and reads type
// declarations and their optic directives from the syntax trees:
//
//	type User struct {
//		id   int    `optic:"ref"`
//		name string `optic:""`
//	}
//
//	//optic:enum Circle Square
//	type Shape interface{ isShape() }
//
//	//optic(mut)
//	type Circle struct{ Radius float64 }
//
//	//optic:index 0 (ref)
//	//optic:index 2
//	type RGB [3]uint8
//
// Key types:
//   - Loader: loads packages and extracts declarations
//   - Package: declarations and diagnostics of one package
package analyze
