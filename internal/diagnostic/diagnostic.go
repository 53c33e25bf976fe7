// Package diagnostic defines the diagnostic data model for casevet:
// severities, stable descriptor IDs, the immutable descriptor catalog,
// and the suggested-fix types carried by fixable diagnostics.
package diagnostic

import (
	"encoding/json"
	"fmt"
)

// Severity is the reporting level of a diagnostic.
type Severity int

// Severity levels, ordered from least to most severe. SeverityOff
// disables a check entirely.
const (
	SeverityOff Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// MarshalJSON encodes the severity as its string name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its string name, so JSON
// reports round-trip through the package's own types.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a config string to a Severity. "warn" is
// accepted as an alias for "warning".
func ParseSeverity(v string) (Severity, error) {
	switch v {
	case "off":
		return SeverityOff, nil
	case "info":
		return SeverityInfo, nil
	case "warn", "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return SeverityOff, fmt.Errorf("unknown severity %q: must be off, info, warning, or error", v)
}

// ID is a stable diagnostic identifier (e.g. "CV1001"). IDs never
// change meaning across releases; retired IDs are not reused.
type ID string

// TextEdit replaces the byte range [Start, End) of File with NewText.
// OldText, when non-empty, is the text the range is expected to hold;
// the fix engine refuses to apply an edit whose target has drifted.
type TextEdit struct {
	File    string `json:"file"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	NewText string `json:"new_text"`
	OldText string `json:"old_text,omitempty"`
}

// Fix is a suggested automated rewrite attached to a diagnostic.
type Fix struct {
	Title string     `json:"title"`
	Edits []TextEdit `json:"edits"`
}

// Diagnostic is one reported finding, anchored at a source position.
type Diagnostic struct {
	// ID identifies the check that produced this diagnostic.
	ID ID `json:"id"`

	// Severity is the effective severity after config overrides.
	Severity Severity `json:"severity"`

	// Message is the rendered, human-readable message.
	Message string `json:"message"`

	// File, Line, and Col anchor the diagnostic in source.
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col"`

	// Fixes holds zero or more suggested rewrites.
	Fixes []Fix `json:"fixes,omitempty"`
}

// Location formats the anchor as "file:line:col".
func (d Diagnostic) Location() string {
	return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Col)
}
