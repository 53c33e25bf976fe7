package analysis

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// Occurrence is one casesource.From call found in a package's
// syntax. Captured once from the tree and never mutated.
type Occurrence struct {
	Call *ast.CallExpr
	File *ast.File
	Pkg  *packages.Package
}

// Scope identifies where a source name is resolved: the occurrence's
// package, plus the provider type when the From call supplied one.
// Pkg is always set.
type Scope struct {
	Pkg *types.Package

	// Provider is the named provider type, nil for package scope.
	Provider *types.Named

	// ByValue reports that the provider was supplied as a value
	// rather than a pointer, restricting the reachable method set.
	ByValue bool
}

// SourceDescriptor is the normalized intent of one From call.
type SourceDescriptor struct {
	Scope Scope

	// Name is the source name; HasName is false for the
	// provider-as-source form.
	Name    string
	HasName bool

	// NamePos anchors diagnostics at the name argument. For the
	// provider-as-source form it anchors at the provider argument.
	NamePos token.Pos

	// IsStringLiteral is true only when the name argument's syntax
	// is itself a string literal token, not a constant reference
	// that folds to the same string.
	IsStringLiteral bool

	// ExtraArgCount is the declared number of extra invocation
	// arguments: 0 when no Args argument is present, the element
	// count for an explicit Args(...) call or slice literal, and
	// nil when the argument has a shape whose count cannot be read
	// statically (which suppresses the count check).
	ExtraArgCount *int
}

// Extract normalizes an occurrence into a SourceDescriptor.
// Argument shapes this analysis cannot read — a computed name, a
// missing argument list, trailing junk — yield nil: the occurrence
// is left unanalyzed rather than misreported.
func (a *analyzer) Extract(occ Occurrence) *SourceDescriptor {
	args := occ.Call.Args
	if len(args) == 0 {
		return nil
	}

	info := occ.Pkg.TypesInfo
	desc := &SourceDescriptor{
		Scope: Scope{Pkg: occ.Pkg.Types},
	}

	rest := args
	if _, ok := foldString(info, rest[0]); !ok {
		named, byValue := providerType(info, rest[0])
		if named == nil {
			return nil
		}
		desc.Scope.Provider = named
		desc.Scope.ByValue = byValue
		desc.NamePos = rest[0].Pos()
		rest = rest[1:]
	}

	if len(rest) > 0 {
		name, ok := foldString(info, rest[0])
		if !ok {
			return nil
		}
		desc.Name = name
		desc.HasName = true
		desc.NamePos = rest[0].Pos()
		desc.IsStringLiteral = isStringLiteral(rest[0])
		rest = rest[1:]
	} else if desc.Scope.Provider == nil {
		return nil
	}

	zero := 0
	desc.ExtraArgCount = &zero
	if len(rest) > 0 {
		desc.ExtraArgCount = a.extraArgCount(occ, rest[0])
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return nil
	}
	return desc
}

// foldString returns the compile-time constant string value of expr,
// using the type checker's constant folding.
func foldString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}
	return constant.StringVal(tv.Value), true
}

// isStringLiteral reports whether expr's syntax is a string literal
// token, unwrapping parentheses.
func isStringLiteral(expr ast.Expr) bool {
	expr = ast.Unparen(expr)
	lit, ok := expr.(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}

// providerType returns the named type of a provider argument, and
// whether the provider was supplied by value. A pointer to a named
// type counts as a provider with the full method set.
func providerType(info *types.Info, expr ast.Expr) (*types.Named, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Type == nil {
		return nil, false
	}
	t := types.Unalias(tv.Type)
	if ptr, ok := t.(*types.Pointer); ok {
		if named, ok := types.Unalias(ptr.Elem()).(*types.Named); ok {
			return named, false
		}
		return nil, false
	}
	if named, ok := t.(*types.Named); ok {
		return named, true
	}
	return nil, false
}

// extraArgCount reads the declared element count of an extra-args
// argument. Only explicit constructions — a casesource.Args call or
// a slice literal — have a statically known count; anything else is
// unknown (nil), which suppresses the count check rather than
// flagging it.
func (a *analyzer) extraArgCount(occ Occurrence, expr ast.Expr) *int {
	expr = ast.Unparen(expr)
	switch e := expr.(type) {
	case *ast.CallExpr:
		if a.isSourcePkgFunc(occ.Pkg.TypesInfo, e, "Args") {
			n := len(e.Args)
			return &n
		}
	case *ast.CompositeLit:
		n := len(e.Elts)
		return &n
	}
	return nil
}
