package loader

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// analysisFixture points at a fixture package maintained by the
// analysis tests; loading it exercises the full load path.
func analysisFixture(name string) string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "analysis", "testdata", "src", name)
}

func TestLoad_PlainPackage(t *testing.T) {
	pkgs, err := Load(analysisFixture("sources"), ".")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("loaded %d packages, want 1", len(pkgs))
	}
	if pkgs[0].TypesInfo == nil {
		t.Error("package loaded without type info")
	}
}

func TestLoad_TestAugmentedVariantWins(t *testing.T) {
	pkgs, err := Load(analysisFixture("classiccalls"), ".")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("loaded %d packages, want 1 after dedupe", len(pkgs))
	}
	if !HasTestSyntax(pkgs[0]) {
		t.Error("dedupe should keep the variant carrying test files")
	}
	if strings.HasSuffix(pkgs[0].PkgPath, ".test") {
		t.Errorf("test binary package leaked through: %s", pkgs[0].PkgPath)
	}
}

func TestLoad_NoPackages(t *testing.T) {
	if _, err := Load(t.TempDir(), "."); err == nil {
		t.Fatal("expected error for a directory with no Go files")
	}
}
