package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/unbound-force/casevet/internal/diagnostic"
)

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for per-file section headers.
	Header lipgloss.Style

	// Error, Warning, and Info color-code diagnostic severities.
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// Fixable marks diagnostics that carry a suggested fix.
	Fixable lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		Fixable: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),

		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// SeverityStyle returns the style for a severity.
func (s Styles) SeverityStyle(sev diagnostic.Severity) lipgloss.Style {
	switch sev {
	case diagnostic.SeverityError:
		return s.Error
	case diagnostic.SeverityWarning:
		return s.Warning
	case diagnostic.SeverityInfo:
		return s.Info
	default:
		return s.Muted
	}
}
