package analysis

import (
	"fmt"

	"github.com/unbound-force/casevet/internal/diagnostic"
)

// emitFinding renders a finding into a diagnostic, applying the
// effective severities. Findings whose check is off are dropped
// here, not in the validator, so the validator stays severity-blind.
func (a *analyzer) emitFinding(desc *SourceDescriptor, f Finding) {
	id, msg := renderFinding(desc, f)
	sev, on := a.severities[id]
	if !on {
		return
	}
	pos := a.pkg.Fset.Position(f.Pos)
	a.diags = append(a.diags, diagnostic.Diagnostic{
		ID:       id,
		Severity: sev,
		Message:  msg,
		File:     pos.Filename,
		Line:     pos.Line,
		Col:      pos.Column,
	})
}

func renderFinding(desc *SourceDescriptor, f Finding) (diagnostic.ID, string) {
	switch f.Kind {
	case FindingMissing:
		return diagnostic.SourceMissing,
			fmt.Sprintf("case source %q not found in %s", f.Name, scopeLabel(desc.Scope))
	case FindingLiteralName:
		return diagnostic.LiteralSourceName,
			fmt.Sprintf("source %q is named by a string literal; use a named constant so renames stay in sync", f.Name)
	case FindingNotIterable:
		return diagnostic.SourceNotIterable,
			fmt.Sprintf("case source %q has type %s, which yields no cases; use a slice, array, map, channel, or iter.Seq", f.Name, f.Type)
	case FindingNotAccessible:
		return diagnostic.SourceNotAccessible,
			fmt.Sprintf("source method %q has a pointer receiver and is outside the by-value provider's method set; pass the provider as a pointer", f.Name)
	case FindingArgCount:
		return diagnostic.SourceArgCountMismatch,
			fmt.Sprintf("case source %q takes %d argument(s) but %d supplied", f.Name, f.Want, f.Got)
	case FindingArgsOnStored:
		return diagnostic.ArgsOnStoredSource,
			fmt.Sprintf("case source %q is a stored value and takes no arguments (%d supplied)", f.Name, f.Got)
	}
	panic(fmt.Sprintf("unhandled finding kind %d", f.Kind))
}

func scopeLabel(s Scope) string {
	if s.Provider != nil {
		return "type " + s.Provider.Obj().Name()
	}
	return "package " + s.Pkg.Name()
}
