package decl

import (
	"errors"
	"fmt"
	"strings"
)

// MaxPositionalIndex is the last positional field index that is considered
// for derivation. Later fields are silently skipped.
const MaxPositionalIndex = 6

// ErrUnknownParam is returned when a where predicate names a type parameter
// the declaration does not have.
var ErrUnknownParam = errors.New("where predicate on undeclared type parameter")

// TypeDeclaration is the subject of one derivation.
type TypeDeclaration struct {
	Name     string           // e.g., "Pair"
	Generics []GenericParam   // Ordered type parameters
	Where    []WherePredicate // Extra constraints, folded into Generics on output
	Shape    Shape            // Exactly one shape per declaration
	Derive   []DerivationKind // Entry points to run; empty means DefaultDerive
	Imports  []string         // Import paths referenced by member types
}

// GenericParam is one type parameter of the owning type.
type GenericParam struct {
	Name       string
	Constraint string // Go constraint expression; empty means "any"
}

// WherePredicate adds a constraint to a declared type parameter.
type WherePredicate struct {
	Param      string
	Constraint string
}

// String returns the predicate in "Param: Constraint" form.
func (w WherePredicate) String() string {
	return w.Param + ": " + w.Constraint
}

// TypeExpr returns the instantiated type expression of the declaration,
// e.g. "Pair[K, V]" or "User".
func (d *TypeDeclaration) TypeExpr() string {
	if len(d.Generics) == 0 {
		return d.Name
	}

	names := make([]string, len(d.Generics))
	for i, g := range d.Generics {
		names[i] = g.Name
	}

	return d.Name + "[" + strings.Join(names, ", ") + "]"
}

// TypeArgs returns the "[K, V]" suffix used to instantiate variant types, or
// an empty string for non-generic declarations.
func (d *TypeDeclaration) TypeArgs() string {
	return strings.TrimPrefix(d.TypeExpr(), d.Name)
}

// TypeParams returns the generic parameters with where predicates folded
// into their constraints.
func (d *TypeDeclaration) TypeParams() ([]GenericParam, error) {
	extra := make(map[string][]string)

	for _, w := range d.Where {
		found := false

		for _, g := range d.Generics {
			if g.Name == w.Param {
				found = true
				break
			}
		}

		if !found {
			return nil, fmt.Errorf("%s: %w: %s", d.Name, ErrUnknownParam, w)
		}

		extra[w.Param] = append(extra[w.Param], w.Constraint)
	}

	out := make([]GenericParam, len(d.Generics))
	for i, g := range d.Generics {
		out[i] = GenericParam{Name: g.Name, Constraint: foldConstraint(g.Constraint, extra[g.Name])}
	}

	return out, nil
}

func foldConstraint(base string, preds []string) string {
	base = strings.TrimSpace(base)
	if base == "any" || base == "interface{}" {
		base = ""
	}

	var terms []string
	if base != "" {
		terms = append(terms, base)
	}

	terms = append(terms, preds...)

	switch len(terms) {
	case 0:
		return "any"
	case 1:
		return terms[0]
	default:
		return "interface{ " + strings.Join(terms, "; ") + " }"
	}
}

// Kinds returns the derivation entry points requested for the declaration.
func (d *TypeDeclaration) Kinds() []DerivationKind {
	if len(d.Derive) > 0 {
		return d.Derive
	}

	return DefaultDerive(d.Shape)
}

// Wants reports whether the declaration requests the given entry point.
func (d *TypeDeclaration) Wants(k DerivationKind) bool {
	for _, have := range d.Kinds() {
		if have == k {
			return true
		}
	}

	return false
}

// Shape is the closed set of declaration shapes.
type Shape interface {
	shape()
	// Kind returns a short name used in messages ("enum", "struct", ...).
	Kind() string
}

// EnumShape is a tagged union.
type EnumShape struct {
	Variants []Variant
}

// NamedStructShape is a record with named fields.
type NamedStructShape struct {
	Fields []NamedField
}

// PositionalStructShape is a record addressed by index.
type PositionalStructShape struct {
	Fields []PositionalField
}

// UnsupportedShape records a shape no derivation accepts.
type UnsupportedShape struct {
	Name string // e.g., "union", "interface", "alias"
}

func (EnumShape) shape()             {}
func (NamedStructShape) shape()      {}
func (PositionalStructShape) shape() {}
func (UnsupportedShape) shape()      {}

func (EnumShape) Kind() string             { return "enum" }
func (NamedStructShape) Kind() string      { return "struct" }
func (PositionalStructShape) Kind() string { return "positional struct" }

func (s UnsupportedShape) Kind() string {
	if s.Name == "" {
		return "unknown"
	}

	return s.Name
}

// Variant is one alternative of an enum.
type Variant struct {
	Name   string
	Fields []VariantField // Only the first field is consumed
	Optic  *OpticAnnotation
}

// VariantField is an associated field of a variant.
type VariantField struct {
	Name string
	Type string
}

// NamedField is a struct field.
type NamedField struct {
	Name  string
	Type  string
	Optic *OpticAnnotation
}

// PositionalField is an array element addressed by index.
type PositionalField struct {
	Index int
	Type  string
	Optic *OpticAnnotation
}

// Candidate reports whether the field lies inside the derivation window.
func (f PositionalField) Candidate() bool {
	return f.Index >= 0 && f.Index <= MaxPositionalIndex
}

// OpticAnnotation marks a member as a derivation target.
type OpticAnnotation struct {
	Payload string         // Raw payload as written, e.g. "(mut)"
	Mode    MutabilityMode // Preset mode; zero means parse Payload
}

// Resolve returns the preset mode, or parses the payload.
func (a *OpticAnnotation) Resolve() (MutabilityMode, error) {
	if a.Mode != 0 {
		return a.Mode, nil
	}

	return ParseMutability(a.Payload)
}

// Annotate builds an annotation from a raw payload.
func Annotate(payload string) *OpticAnnotation {
	return &OpticAnnotation{Payload: payload}
}
