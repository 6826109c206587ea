package gen

import (
	"go/token"

	"optic-generator/internal/analyze"
	"optic-generator/internal/decl"
	"optic-generator/internal/declfile"
)

// Unit is one output package and the declarations to derive into it.
type Unit struct {
	// Package is the Go package name of the output file.
	Package string
	// Dir is where the output file is written.
	Dir string
	// Decls are derived in order.
	Decls []*decl.TypeDeclaration
	// Positions optionally maps declaration names to source positions.
	Positions map[string]token.Position
	// Declared lists type names that already exist in the package and may
	// stand in for accessors the unit does not define itself.
	Declared []string
}

// UnitFromPackage builds a unit writing next to a loaded Go package.
func UnitFromPackage(p *analyze.Package) Unit {
	return Unit{
		Package:   p.Name,
		Dir:       p.Dir,
		Decls:     p.Decls,
		Positions: p.Positions,
		Declared:  p.Declared,
	}
}

// UnitFromFile builds a unit from a declaration file, writing into dir.
func UnitFromFile(f *declfile.File, dir string) (Unit, error) {
	decls, err := f.Declarations()
	if err != nil {
		return Unit{}, err
	}

	return Unit{Package: f.Package, Dir: dir, Decls: decls}, nil
}
