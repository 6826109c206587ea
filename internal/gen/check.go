package gen

import (
	"optic-generator/internal/derive"
	"optic-generator/internal/diagnostic"
)

// checkAccessors reports implementations that refer to accessors which the
// session never defined and the package does not declare by hand.
func checkAccessors(u Unit, s *derive.Session, work []*unitBlocks) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	declared := make(map[string]struct{}, len(u.Declared))
	for _, name := range u.Declared {
		declared[name] = struct{}{}
	}

	reported := make(map[string]struct{})

	for _, w := range work {
		for _, b := range w.blocks[1:] {
			if b == nil {
				continue
			}

			for _, name := range b.Uses {
				if s.Registry().Contains(name) {
					continue
				}

				if _, ok := declared[name]; ok {
					continue
				}

				if _, ok := reported[name]; ok {
					continue
				}

				reported[name] = struct{}{}

				diag := diagnostic.Diagnostic{
					Severity: diagnostic.SeverityWarning,
					Code:     diagnostic.CodeMissingAccessor,
					Message:  "accessor " + name + " is used but never defined; derive optic for " + w.decl.Name + " or declare it",
					Type:     w.decl.Name,
				}

				if pos, ok := u.Positions[w.decl.Name]; ok {
					diag.Pos = pos.String()
				}

				diags.Add(diag)
			}
		}
	}

	return diags
}
