package diagnostic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"optic-generator/internal/common"
)

// Diagnostic codes.
const (
	CodeMalformedDirective = "malformed_directive"
	CodeShapeMismatch      = "shape_mismatch"
	CodeUnknownParam       = "unknown_param"
	CodeMissingAccessor    = "missing_accessor"
	CodeDuplicateType      = "duplicate_type"
	CodeUnknownVariant     = "unknown_variant"
	CodeIndexOutOfRange    = "index_out_of_range"
	CodeUnsupportedShape   = "unsupported_shape"
	CodeDerive             = "derive"
	CodeInvalidWhere       = "invalid_where"
	CodeUnknownDirective   = "unknown_directive"
	CodeUnusedAnnotation   = "unused_annotation"
	CodeRuntimeShadowed    = "runtime_shadowed"
)

// Diagnostics holds everything reported during one run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding, e.g. "missing_accessor".
	Code    string
	Message string
	// Type is the owning declaration (if any).
	Type string
	// Member is the field, index or variant (if any).
	Member string
	// Pos is a file:line position when the finding came from source.
	Pos string
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError records an error.
func (d *Diagnostics) AddError(code, message, typ, member string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Type:     typ,
		Member:   member,
	})
}

// AddWarning records a warning.
func (d *Diagnostics) AddWarning(code, message, typ, member string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Type:     typ,
		Member:   member,
	})
}

// AddInfo records a note.
func (d *Diagnostics) AddInfo(code, message, typ, member string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Type:     typ,
		Member:   member,
	})
}

// Add records an already built diagnostic under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors reports whether any error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends other into d.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first, each group ordered by type
// and member.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))

	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		sorted := append([]Diagnostic(nil), group...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Type != sorted[j].Type {
				return sorted[i].Type < sorted[j].Type
			}

			return sorted[i].Member < sorted[j].Member
		})

		out = append(out, sorted...)
	}

	return out
}

// Error joins all error diagnostics into one error, or returns nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String formats the diagnostic as "pos: Type.member: [code] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos != "" {
		prefix = append(prefix, d.Pos)
	}

	switch {
	case d.Type != "" && d.Member != "":
		prefix = append(prefix, d.Type+"."+d.Member)
	case d.Type != "":
		prefix = append(prefix, d.Type)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, ": ") + ": " + msg
	}

	return msg
}
