// Package analysis checks casesource declarations and classic verify
// calls in loaded packages, producing diagnostics and suggested
// fixes.
package analysis

import (
	"context"
	"fmt"
	"go/ast"
	"go/types"
	"os"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/unbound-force/casevet/internal/diagnostic"
	"github.com/unbound-force/casevet/internal/loader"
)

// Canonical import paths recognized by default. Forks and vendored
// copies can extend the lists through Options.
const (
	DefaultSourcePackage = "github.com/unbound-force/casevet/pkg/casesource"
	DefaultVerifyPackage = "github.com/unbound-force/casevet/pkg/verify"
)

// Options configures an analysis run.
type Options struct {
	// SourcePackages are the import paths treated as the casesource
	// package.
	SourcePackages []string

	// VerifyPackages are the import paths treated as the verify
	// package.
	VerifyPackages []string

	// Checks maps check slugs to severity overrides ("off", "info",
	// "warning", "error"), layered over the catalog defaults.
	Checks map[string]string
}

// DefaultOptions returns the options used when no configuration is
// present.
func DefaultOptions() Options {
	return Options{
		SourcePackages: []string{DefaultSourcePackage},
		VerifyPackages: []string{DefaultVerifyPackage},
	}
}

type analyzer struct {
	pkg        *packages.Package
	severities map[diagnostic.ID]diagnostic.Severity
	srcPkgs    map[string]bool
	verifyPkgs map[string]bool

	// srcCache holds file contents for fix construction, read once
	// per file.
	srcCache map[string][]byte

	diags []diagnostic.Diagnostic
}

// Analyze checks a single loaded package. Cancellation is observed
// between occurrences: on a cancelled context the diagnostics
// collected so far are returned together with the context's error.
func Analyze(ctx context.Context, pkg *packages.Package, opts Options) ([]diagnostic.Diagnostic, error) {
	severities, err := diagnostic.Resolve(opts.Checks)
	if err != nil {
		return nil, err
	}

	a := &analyzer{
		pkg:        pkg,
		severities: severities,
		srcPkgs:    pathSet(opts.SourcePackages, DefaultSourcePackage),
		verifyPkgs: pathSet(opts.VerifyPackages, DefaultVerifyPackage),
		srcCache:   make(map[string][]byte),
	}

	occs, classics := a.collect()
	for _, occ := range occs {
		if err := ctx.Err(); err != nil {
			return a.sorted(), err
		}
		a.checkSource(occ)
	}
	for _, call := range classics {
		if err := ctx.Err(); err != nil {
			return a.sorted(), err
		}
		a.checkClassic(call)
	}
	return a.sorted(), nil
}

// LoadAndAnalyze loads the packages under dir matching patterns and
// analyzes each, returning the merged diagnostics.
func LoadAndAnalyze(ctx context.Context, dir string, patterns []string, opts Options) ([]diagnostic.Diagnostic, error) {
	pkgs, err := loader.Load(dir, patterns...)
	if err != nil {
		return nil, err
	}

	var all []diagnostic.Diagnostic
	for _, pkg := range pkgs {
		diags, err := Analyze(ctx, pkg, opts)
		all = append(all, diags...)
		if err != nil {
			return all, err
		}
	}
	return all, nil
}

func pathSet(paths []string, fallback string) map[string]bool {
	set := make(map[string]bool)
	for _, p := range paths {
		set[p] = true
	}
	if len(set) == 0 {
		set[fallback] = true
	}
	return set
}

// collect walks the package syntax once, gathering From occurrences
// and classic verify calls in source order.
func (a *analyzer) collect() ([]Occurrence, []Occurrence) {
	var occs, classics []Occurrence
	for _, file := range a.pkg.Syntax {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			switch {
			case a.isSourcePkgFunc(a.pkg.TypesInfo, call, "From"):
				occs = append(occs, Occurrence{Call: call, File: file, Pkg: a.pkg})
			case a.isClassicCall(call):
				classics = append(classics, Occurrence{Call: call, File: file, Pkg: a.pkg})
			}
			return true
		})
	}
	return occs, classics
}

// checkSource runs the extract/resolve/validate pipeline for one
// From occurrence.
func (a *analyzer) checkSource(occ Occurrence) {
	desc := a.Extract(occ)
	if desc == nil {
		return
	}
	var member *Member
	if desc.HasName {
		member = Resolve(desc.Scope, desc.Name)
	}
	for _, f := range Validate(desc, member) {
		a.emitFinding(desc, f)
	}
}

// isSourcePkgFunc reports whether call invokes the named function of
// a recognized casesource package.
func (a *analyzer) isSourcePkgFunc(info *types.Info, call *ast.CallExpr, name string) bool {
	fn := calleeFunc(info, call)
	return fn != nil && fn.Name() == name &&
		fn.Pkg() != nil && a.srcPkgs[fn.Pkg().Path()]
}

// calleeFunc resolves a call's callee to its declared function,
// looking through selectors, dot imports, and generic instantiation.
func calleeFunc(info *types.Info, call *ast.CallExpr) *types.Func {
	fun := ast.Unparen(call.Fun)
	switch f := fun.(type) {
	case *ast.IndexExpr:
		fun = f.X
	case *ast.IndexListExpr:
		fun = f.X
	}

	var id *ast.Ident
	switch f := ast.Unparen(fun).(type) {
	case *ast.SelectorExpr:
		id = f.Sel
	case *ast.Ident:
		id = f
	default:
		return nil
	}
	fn, _ := info.Uses[id].(*types.Func)
	return fn
}

// src returns the file's source bytes, cached per analyzer.
func (a *analyzer) src(filename string) ([]byte, error) {
	if b, ok := a.srcCache[filename]; ok {
		return b, nil
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	a.srcCache[filename] = b
	return b, nil
}

// sorted returns the collected diagnostics in a deterministic order:
// by file, position, then ID.
func (a *analyzer) sorted() []diagnostic.Diagnostic {
	sort.SliceStable(a.diags, func(i, j int) bool {
		x, y := a.diags[i], a.diags[j]
		if x.File != y.File {
			return x.File < y.File
		}
		if x.Line != y.Line {
			return x.Line < y.Line
		}
		if x.Col != y.Col {
			return x.Col < y.Col
		}
		return x.ID < y.ID
	})
	return a.diags
}
