package analysis

import (
	"fmt"
	"go/ast"
	"go/types"

	"github.com/unbound-force/casevet/internal/diagnostic"
	"github.com/unbound-force/casevet/internal/rewrite"
)

// isClassicCall reports whether call invokes one of the deprecated
// two-value verify helpers.
func (a *analyzer) isClassicCall(call *ast.CallExpr) bool {
	fn := calleeFunc(a.pkg.TypesInfo, call)
	if fn == nil || fn.Pkg() == nil || !a.verifyPkgs[fn.Pkg().Path()] {
		return false
	}
	_, ok := rewrite.StrategyFor(fn.Name())
	return ok
}

// checkClassic emits the deprecation diagnostic for a classic verify
// call, attaching the constraint-form rewrite when the call site's
// source can be read and the call has the shape the strategy
// handles.
func (a *analyzer) checkClassic(occ Occurrence) {
	m, ok := a.classicMatch(occ.Call)
	if !ok {
		return
	}
	strat, ok := rewrite.StrategyFor(m.Func)
	if !ok {
		return
	}
	sev, on := a.severities[strat.DiagID]
	if !on {
		return
	}

	pos := a.pkg.Fset.Position(occ.Call.Pos())
	d := diagnostic.Diagnostic{
		ID:       strat.DiagID,
		Severity: sev,
		Message: fmt.Sprintf("%s.%s is deprecated; use %s.That with a constraint",
			m.Qualifier, m.Func, m.Qualifier),
		File: pos.Filename,
		Line: pos.Line,
		Col:  pos.Column,
	}

	if src, err := a.src(pos.Filename); err == nil {
		if fix, ok := rewrite.BuildFix(src, a.pkg.Fset, m); ok {
			d.Fixes = []diagnostic.Fix{fix}
		}
	}
	a.diags = append(a.diags, d)
}

// classicMatch captures the call-site spelling of a classic verify
// call: the qualifier as written, the function name, and the source
// text of a generic type argument.
func (a *analyzer) classicMatch(call *ast.CallExpr) (rewrite.Match, bool) {
	fun := ast.Unparen(call.Fun)

	var typeArg ast.Expr
	switch f := fun.(type) {
	case *ast.IndexExpr:
		typeArg = f.Index
		fun = ast.Unparen(f.X)
	case *ast.IndexListExpr:
		if len(f.Indices) != 1 {
			return rewrite.Match{}, false
		}
		typeArg = f.Indices[0]
		fun = ast.Unparen(f.X)
	}

	sel, ok := fun.(*ast.SelectorExpr)
	if !ok {
		// Dot-imported classic calls have no qualifier to rewrite
		// against; report without a fix by declining the match.
		return rewrite.Match{}, false
	}
	qual, ok := ast.Unparen(sel.X).(*ast.Ident)
	if !ok {
		return rewrite.Match{}, false
	}

	fn, _ := a.pkg.TypesInfo.Uses[sel.Sel].(*types.Func)
	if fn == nil {
		return rewrite.Match{}, false
	}

	m := rewrite.Match{Call: call, Qualifier: qual.Name, Func: fn.Name()}
	if typeArg != nil {
		text, err := a.exprText(typeArg)
		if err != nil {
			return rewrite.Match{}, false
		}
		m.TypeArg = text
	}
	return m, true
}

// exprText returns the expression's source text verbatim.
func (a *analyzer) exprText(expr ast.Expr) (string, error) {
	start := a.pkg.Fset.Position(expr.Pos())
	end := a.pkg.Fset.Position(expr.End())
	src, err := a.src(start.Filename)
	if err != nil {
		return "", err
	}
	if start.Offset < 0 || end.Offset > len(src) || start.Offset >= end.Offset {
		return "", fmt.Errorf("expression span out of range in %s", start.Filename)
	}
	return string(src[start.Offset:end.Offset]), nil
}
