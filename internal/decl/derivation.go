package decl

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=DerivationKind -trimprefix=Derive -output=derivation_string.go

// DerivationKind names one derivation entry point.
type DerivationKind int

const (
	_ DerivationKind = iota

	DeriveOptic  // accessor type definitions
	DeriveReview // construction-only inverse of a prism
	DerivePrism  // partial optics over enum variants
	DeriveLens   // total optics over struct fields
)

// DefaultDerive returns the entry points run when a declaration does not
// list any.
func DefaultDerive(s Shape) []DerivationKind {
	switch s.(type) {
	case EnumShape:
		return []DerivationKind{DeriveOptic, DeriveReview, DerivePrism}
	case NamedStructShape, PositionalStructShape:
		return []DerivationKind{DeriveOptic, DeriveLens}
	case UnsupportedShape:
		return nil
	default:
		return nil
	}
}

// ParseDerivationKind parses a case-insensitive entry point name.
func ParseDerivationKind(s string) (DerivationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "optic":
		return DeriveOptic, nil
	case "review":
		return DeriveReview, nil
	case "prism":
		return DerivePrism, nil
	case "lens":
		return DeriveLens, nil
	default:
		return 0, fmt.Errorf("unknown derivation %q: expected optic, review, prism or lens", s)
	}
}

// ParseDerivationList parses a comma or space separated list.
func ParseDerivationList(s string) ([]DerivationKind, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })

	out := make([]DerivationKind, 0, len(fields))
	for _, f := range fields {
		k, err := ParseDerivationKind(f)
		if err != nil {
			return nil, err
		}

		out = append(out, k)
	}

	return out, nil
}
