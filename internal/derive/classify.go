package derive

import (
	"errors"
	"fmt"

	"optic-generator/internal/decl"
)

// Path is the derivation path selected for a declaration.
type Path int

const (
	PathInvalid Path = iota
	PathEnum
	PathNamedStruct
	PathPositionalStruct
)

// String returns a readable path name.
func (p Path) String() string {
	switch p {
	case PathEnum:
		return "enum"
	case PathNamedStruct:
		return "named struct"
	case PathPositionalStruct:
		return "positional struct"
	default:
		return "invalid"
	}
}

// Classify selects the derivation path for d. Unsupported shapes are
// rejected with ErrShapeMismatch.
func Classify(d *decl.TypeDeclaration) (Path, error) {
	if d == nil {
		return PathInvalid, errors.New("nil declaration")
	}

	switch s := d.Shape.(type) {
	case decl.EnumShape:
		return PathEnum, nil
	case decl.NamedStructShape:
		return PathNamedStruct, nil
	case decl.PositionalStructShape:
		return PathPositionalStruct, nil
	case decl.UnsupportedShape:
		return PathInvalid, fmt.Errorf("%w: %s is a %s; only enums and structs can derive optics",
			ErrShapeMismatch, d.Name, s.Kind())
	case nil:
		return PathInvalid, fmt.Errorf("%w: %s has no shape", ErrShapeMismatch, d.Name)
	default:
		return PathInvalid, fmt.Errorf("%w: %s has unrecognised shape %T", ErrShapeMismatch, d.Name, s)
	}
}
