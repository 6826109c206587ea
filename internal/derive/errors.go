package derive

import (
	"errors"
	"fmt"

	"optic-generator/internal/decl"
)

// ErrShapeMismatch is returned when an entry point is asked to derive from a
// shape it does not support.
var ErrShapeMismatch = errors.New("shape mismatch")

// ErrRuntimeShadowed is returned when an owner type parameter has the name
// generated code uses for the optics runtime.
var ErrRuntimeShadowed = errors.New("type parameter shadows the optics runtime")

func shapeMismatch(d *decl.TypeDeclaration, kind decl.DerivationKind, want string) error {
	got := "nil"
	if d.Shape != nil {
		got = d.Shape.Kind()
	}

	return fmt.Errorf("%w: cannot derive %s for %s (%s); %s", ErrShapeMismatch, kind, d.Name, got, want)
}

func memberError(d *decl.TypeDeclaration, member string, err error) error {
	return fmt.Errorf("%s.%s: %w", d.Name, member, err)
}
