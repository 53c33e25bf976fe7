package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unbound-force/casevet/internal/diagnostic"
)

func tuiDiags() []diagnostic.Diagnostic {
	return []diagnostic.Diagnostic{
		{
			ID:       diagnostic.SourceMissing,
			Severity: diagnostic.SeverityError,
			Message:  `case source "missing" not found in package demo`,
			File:     "demo_test.go",
			Line:     10,
			Col:      5,
		},
		{
			ID:       diagnostic.ClassicEqual,
			Severity: diagnostic.SeverityInfo,
			Message:  "verify.Equal is deprecated; use verify.That with a constraint",
			File:     "other_test.go",
			Line:     4,
			Col:      2,
			Fixes:    []diagnostic.Fix{{Title: "rewrite"}},
		},
	}
}

func TestRenderCheckContent(t *testing.T) {
	content := renderCheckContent(tuiDiags())

	for _, want := range []string{
		"2 problem(s), 1 fixable",
		"demo_test.go",
		"other_test.go",
		"CV1001",
		"CV2001",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("content should contain %q", want)
		}
	}
}

func TestRenderCheckContent_Empty(t *testing.T) {
	content := renderCheckContent(nil)
	if !strings.Contains(content, "No problems found") {
		t.Errorf("empty content = %q", content)
	}
}

func TestCheckModel_QuitKey(t *testing.T) {
	m := newCheckModel(tuiDiags())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("command = %v, want tea.Quit", msg)
	}
}

func TestCheckModel_WindowSizeReady(t *testing.T) {
	m := newCheckModel(tuiDiags())
	if m.ready {
		t.Fatal("model should not be ready before the first WindowSizeMsg")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	cm, ok := updated.(checkModel)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	if !cm.ready {
		t.Error("model should be ready after WindowSizeMsg")
	}
	if view := cm.View(); view == "Initializing..." {
		t.Error("View should render content once ready")
	}
}
