package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/casevet/internal/diagnostic"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// checkModel is the Bubble Tea model for browsing diagnostics.
type checkModel struct {
	diags    []diagnostic.Diagnostic
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
	content  string
}

func newCheckModel(diags []diagnostic.Diagnostic) checkModel {
	h := help.New()
	content := renderCheckContent(diags)
	return checkModel{
		diags:   diags,
		help:    h,
		keys:    defaultKeyMap,
		content: content,
	}
}

func renderCheckContent(diags []diagnostic.Diagnostic) string {
	var sb strings.Builder

	fixable := 0
	for _, d := range diags {
		if len(d.Fixes) > 0 {
			fixable++
		}
	}

	sb.WriteString(titleStyle.Render(
		fmt.Sprintf("Casevet: %d problem(s), %d fixable", len(diags), fixable)))
	sb.WriteString("\n\n")

	if len(diags) == 0 {
		sb.WriteString(statusStyle.Render("No problems found."))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, group := range groupDiagsByFile(diags) {
		sb.WriteString(tuiHeaderStyle.Render(fmt.Sprintf("=== %s ===", group.file)))
		sb.WriteString("\n")

		rows := make([][]string, 0, len(group.diags))
		for _, d := range group.diags {
			msg := d.Message
			if len(msg) > 50 {
				msg = msg[:47] + "..."
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d:%d", d.Line, d.Col),
				string(d.ID),
				d.Severity.String(),
				msg,
			})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(tuiBorderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return tuiHeaderStyle
				}
				if col == 2 && row >= 0 && row < len(rows) {
					switch rows[row][2] {
					case "error":
						return errorStyle
					case "warning":
						return warningStyle
					case "info":
						return infoStyle
					}
				}
				return lipgloss.NewStyle()
			}).
			Headers("POS", "ID", "SEVERITY", "MESSAGE").
			Rows(rows...)

		sb.WriteString(t.String())
		sb.WriteString("\n\n")
	}

	return sb.String()
}

type diagGroup struct {
	file  string
	diags []diagnostic.Diagnostic
}

func groupDiagsByFile(diags []diagnostic.Diagnostic) []diagGroup {
	var groups []diagGroup
	for _, d := range diags {
		if len(groups) == 0 || groups[len(groups)-1].file != d.File {
			groups = append(groups, diagGroup{file: d.File})
		}
		last := &groups[len(groups)-1]
		last.diags = append(last.diags, d)
	}
	return groups
}

func (m checkModel) Init() tea.Cmd {
	return nil
}

func (m checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 0
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m checkModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.viewport.View() + "\n" + footer
}

// runInteractiveCheck launches the Bubble Tea TUI for browsing
// diagnostics.
func runInteractiveCheck(diags []diagnostic.Diagnostic) error {
	model := newCheckModel(diags)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
