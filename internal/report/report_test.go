package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/unbound-force/casevet/internal/diagnostic"
)

func sampleDiags() []diagnostic.Diagnostic {
	return []diagnostic.Diagnostic{
		{
			ID:       diagnostic.SourceMissing,
			Severity: diagnostic.SeverityError,
			Message:  `case source "missing" not found in package demo`,
			File:     "demo/demo_test.go",
			Line:     14,
			Col:      7,
		},
		{
			ID:       diagnostic.LiteralSourceName,
			Severity: diagnostic.SeverityWarning,
			Message:  `source "primes" is named by a string literal; use a named constant so renames stay in sync`,
			File:     "demo/demo_test.go",
			Line:     21,
			Col:      7,
		},
		{
			ID:       diagnostic.ClassicEqual,
			Severity: diagnostic.SeverityInfo,
			Message:  "verify.Equal is deprecated; use verify.That with a constraint",
			File:     "demo/other_test.go",
			Line:     9,
			Col:      2,
			Fixes: []diagnostic.Fix{{
				Title: "rewrite to verify.That with Equals",
				Edits: []diagnostic.TextEdit{{
					File:    "demo/other_test.go",
					Start:   120,
					End:     132,
					NewText: "verify.That",
					OldText: "verify.Equal",
				}},
			}},
		},
	}
}

func TestWriteJSON_Structure(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleDiags()); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	var out JSONReport
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if out.Version == "" {
		t.Error("version missing")
	}
	if len(out.Diagnostics) != 3 {
		t.Errorf("diagnostics = %d, want 3", len(out.Diagnostics))
	}
	if out.Summary.Total != 3 || out.Summary.Errors != 1 ||
		out.Summary.Warnings != 1 || out.Summary.Infos != 1 || out.Summary.Fixable != 1 {
		t.Errorf("summary = %+v", out.Summary)
	}
}

func TestWriteJSON_EmptyDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	if strings.Contains(buf.String(), `"diagnostics": null`) {
		t.Error("diagnostics should encode as an empty array, not null")
	}
}

func TestWriteJSON_ValidAgainstSchema(t *testing.T) {
	// Compile the embedded JSON Schema.
	sch, err := jsonschema.UnmarshalJSON(strings.NewReader(Schema))
	if err != nil {
		t.Fatalf("failed to parse schema JSON: %v", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", sch); err != nil {
		t.Fatalf("failed to add schema resource: %v", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		t.Fatalf("failed to compile schema: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleDiags()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if err := compiled.Validate(inst); err != nil {
		t.Errorf("JSON output does not conform to schema:\n%v", err)
	}
}

func TestWriteText_GroupsAndSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleDiags()); err != nil {
		t.Fatalf("WriteText error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"demo/demo_test.go",
		"demo/other_test.go",
		"CV1001",
		"CV2001",
		"3 problem(s)",
		"1 fixable",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestWriteText_NoProblems(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, nil); err != nil {
		t.Fatalf("WriteText error: %v", err)
	}
	if !strings.Contains(buf.String(), "No problems found") {
		t.Errorf("empty report = %q", buf.String())
	}
}

func TestSeverityStyleCoversAll(t *testing.T) {
	s := DefaultStyles()
	for _, sev := range []diagnostic.Severity{
		diagnostic.SeverityError,
		diagnostic.SeverityWarning,
		diagnostic.SeverityInfo,
		diagnostic.SeverityOff,
	} {
		// Must not panic and must return a usable style.
		_ = s.SeverityStyle(sev).Render(sev.String())
	}
}
