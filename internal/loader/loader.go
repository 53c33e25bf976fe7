// Package loader wraps go/packages to load Go packages, including
// their test files, with full type information for static analysis.
package loader

import (
	"fmt"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode is the set of flags needed for type-aware analysis of
// test files.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes

// Load loads the packages matching the given patterns with test
// files included. It returns one package per import path, preferring
// the test-augmented variant, and skips the synthesized test
// binaries. Loading or type-checking failures are returned as a
// single error listing every package-level problem.
func Load(dir string, patterns ...string) ([]*packages.Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Mode:  LoadMode,
		Dir:   dir,
		Tests: true,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages %v: %w", patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %v", patterns)
	}

	var errs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e.Error())
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("packages have errors:\n  %s", strings.Join(errs, "\n  "))
	}

	return dedupe(pkgs), nil
}

// dedupe keeps one package per import path. With Tests enabled the
// driver returns both the plain and the test-augmented variant of a
// package; the variant with more compiled files carries the test
// syntax, so it wins. The "pkg.test" main binaries are dropped.
func dedupe(pkgs []*packages.Package) []*packages.Package {
	byPath := make(map[string]*packages.Package)
	var order []string

	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.PkgPath, ".test") {
			continue
		}
		prev, seen := byPath[pkg.PkgPath]
		if !seen {
			byPath[pkg.PkgPath] = pkg
			order = append(order, pkg.PkgPath)
			continue
		}
		if len(pkg.CompiledGoFiles) > len(prev.CompiledGoFiles) {
			byPath[pkg.PkgPath] = pkg
		}
	}

	out := make([]*packages.Package, 0, len(order))
	for _, path := range order {
		out = append(out, byPath[path])
	}
	return out
}

// HasTestSyntax reports whether the package's syntax includes at
// least one _test.go file.
func HasTestSyntax(pkg *packages.Package) bool {
	for _, f := range pkg.CompiledGoFiles {
		if strings.HasSuffix(f, "_test.go") {
			return true
		}
	}
	return false
}
