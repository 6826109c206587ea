package analyze

import (
	"go/token"

	"optic-generator/internal/decl"
	"optic-generator/internal/diagnostic"
)

// Package is one loaded Go package and the declarations found in it.
type Package struct {
	Path  string // Import path
	Name  string // Package name
	Dir   string // Directory holding the package sources
	Decls []*decl.TypeDeclaration
	Diags diagnostic.Diagnostics
	// Positions maps declaration names to where they are declared.
	Positions map[string]token.Position
	// Declared lists every type name declared in the package sources,
	// annotated or not.
	Declared []string
}

// Decl returns the declaration named name, or nil.
func (p *Package) Decl(name string) *decl.TypeDeclaration {
	for _, d := range p.Decls {
		if d.Name == name {
			return d
		}
	}

	return nil
}
