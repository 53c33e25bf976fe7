package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/casevet/internal/diagnostic"
)

// WriteText writes diagnostics as human-readable styled text, one
// table per file. Output uses lipgloss for color when the output is
// a TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, diags []diagnostic.Diagnostic) error {
	s := DefaultStyles()

	if len(diags) == 0 {
		fmt.Fprintln(w, s.Muted.Render("No problems found."))
		return nil
	}

	for i, group := range groupByFile(diags) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeFileGroup(w, group, s)
	}

	fmt.Fprintf(w, "\n%s\n", s.Header.Render(summaryLine(diags)))
	return nil
}

type fileGroup struct {
	file  string
	diags []diagnostic.Diagnostic
}

// groupByFile splits diagnostics into per-file runs, preserving the
// analyzer's sorted order.
func groupByFile(diags []diagnostic.Diagnostic) []fileGroup {
	var groups []fileGroup
	for _, d := range diags {
		if len(groups) == 0 || groups[len(groups)-1].file != d.File {
			groups = append(groups, fileGroup{file: d.File})
		}
		last := &groups[len(groups)-1]
		last.diags = append(last.diags, d)
	}
	return groups
}

func writeFileGroup(w io.Writer, g fileGroup, s Styles) {
	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== %s ===", g.file)))

	const maxMsg = 52
	rows := make([][]string, 0, len(g.diags))
	for _, d := range g.diags {
		msg := d.Message
		if len(msg) > maxMsg {
			msg = msg[:maxMsg-3] + "..."
		}
		fix := ""
		if len(d.Fixes) > 0 {
			fix = "fix"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d:%d", d.Line, d.Col),
			string(d.ID),
			d.Severity.String(),
			msg,
			fix,
		})
	}

	t := table.New().
		Width(96).
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if row >= 0 && row < len(g.diags) {
				switch col {
				case 2:
					return s.SeverityStyle(g.diags[row].Severity)
				case 4:
					return s.Fixable
				}
			}
			return s.TableCell
		}).
		Headers("POS", "ID", "SEVERITY", "MESSAGE", "FIX").
		Rows(rows...)

	fmt.Fprintln(w, t)
}

func summaryLine(diags []diagnostic.Diagnostic) string {
	counts := make(map[diagnostic.Severity]int)
	fixable := 0
	for _, d := range diags {
		counts[d.Severity]++
		if len(d.Fixes) > 0 {
			fixable++
		}
	}
	return fmt.Sprintf("%d problem(s): %d error(s), %d warning(s), %d info — %d fixable",
		len(diags),
		counts[diagnostic.SeverityError],
		counts[diagnostic.SeverityWarning],
		counts[diagnostic.SeverityInfo],
		fixable)
}
