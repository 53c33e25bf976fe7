// Package report provides output formatters for casevet diagnostics
// in JSON and human-readable text formats.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/casevet/internal/diagnostic"
)

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version     string                  `json:"version"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
	Summary     Summary                 `json:"summary"`
}

// Summary aggregates counts across the diagnostics.
type Summary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Fixable  int `json:"fixable"`
}

// WriteJSON writes diagnostics as formatted JSON to the writer.
func WriteJSON(w io.Writer, diags []diagnostic.Diagnostic) error {
	if diags == nil {
		diags = []diagnostic.Diagnostic{}
	}
	report := JSONReport{
		Version:     "0.1.0",
		Diagnostics: diags,
		Summary:     summarize(diags),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func summarize(diags []diagnostic.Diagnostic) Summary {
	s := Summary{Total: len(diags)}
	for _, d := range diags {
		switch d.Severity {
		case diagnostic.SeverityError:
			s.Errors++
		case diagnostic.SeverityWarning:
			s.Warnings++
		case diagnostic.SeverityInfo:
			s.Infos++
		}
		if len(d.Fixes) > 0 {
			s.Fixable++
		}
	}
	return s
}
