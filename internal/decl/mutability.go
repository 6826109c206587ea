package decl

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=MutabilityMode -output=mutability_string.go

// MutabilityMode is the capability tier requested for a derived optic.
// Modes are ordered: every tier includes the tiers below it.
type MutabilityMode int

const (
	_ MutabilityMode = iota // zero value is invalid

	Ref  // read-only view
	Mut  // read-only and mutable views
	Move // read-only, mutable and owning views
)

// ErrMalformedDirective is returned for annotation payloads that are not one
// of the three legal forms.
var ErrMalformedDirective = errors.New("malformed optic directive")

// Includes reports whether mode m grants tier t.
func (m MutabilityMode) Includes(t MutabilityMode) bool {
	return t >= Ref && t <= m
}

// ParseMutability parses an annotation payload. The empty payload means
// Move; "(ref)" and "(mut)" select the smaller tiers.
func ParseMutability(payload string) (MutabilityMode, error) {
	p := strings.TrimSpace(payload)
	if p == "" {
		return Move, nil
	}

	if strings.HasPrefix(p, "(") && strings.HasSuffix(p, ")") {
		switch strings.TrimSpace(p[1 : len(p)-1]) {
		case "ref":
			return Ref, nil
		case "mut":
			return Mut, nil
		}
	}

	return 0, fmt.Errorf("%w %q: only optic, optic(ref) or optic(mut) are allowed", ErrMalformedDirective, payload)
}

// TagPayload converts a struct tag value into a directive payload: a bare
// keyword such as "mut" becomes "(mut)".
func TagPayload(tag string) string {
	t := strings.TrimSpace(tag)
	if t == "" || strings.HasPrefix(t, "(") {
		return t
	}

	return "(" + t + ")"
}
