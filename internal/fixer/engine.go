// Package fixer applies the suggested fixes attached to diagnostics,
// rewriting the affected files in place.
package fixer

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/unbound-force/casevet/internal/diagnostic"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Mode selects which fixes to apply.
type Mode uint8

const (
	// ModeAll applies every applicable fix.
	ModeAll Mode = iota

	// ModeID applies only fixes attached to diagnostics with the
	// target ID.
	ModeID

	// ModeFirst applies only the first fix in the deterministic
	// order.
	ModeFirst
)

// Options configures an apply run.
type Options struct {
	Mode     Mode
	TargetID diagnostic.ID

	// DryRun stages every edit and reports the outcome without
	// writing any file.
	DryRun bool
}

// Applied records one successfully applied fix.
type Applied struct {
	DiagID    diagnostic.ID
	Title     string
	File      string
	Line      int
	EditCount int
}

// Skipped records a fix that could not be applied, with the reason.
type Skipped struct {
	DiagID diagnostic.ID
	Title  string
	Reason string
}

// FileChange summarizes the edits written to one file.
type FileChange struct {
	Path      string
	EditCount int
}

// Result aggregates an apply run.
type Result struct {
	Applied []Applied
	Skipped []Skipped
	Changed []FileChange
}

type candidate struct {
	diag  diagnostic.Diagnostic
	fix   diagnostic.Fix
	order int
}

// Apply selects fixes from the diagnostics per opts and applies them.
// Fixes are applied in deterministic order; a fix whose edits overlap
// an already-applied edit, or whose recorded old text no longer
// matches the file, is skipped rather than applied blind.
func Apply(diags []diagnostic.Diagnostic, opts Options) (*Result, error) {
	result := &Result{}

	candidates := gather(diags, opts, result)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)
	if opts.Mode == ModeFirst {
		candidates = candidates[:1]
	}

	if err := applyAll(candidates, opts, result); err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gather collects fix candidates, filtering by mode and recording
// empty fixes as skips. Insertion order is kept for stable sorting.
func gather(diags []diagnostic.Diagnostic, opts Options, result *Result) []candidate {
	var cands []candidate
	order := 0
	for _, d := range diags {
		if opts.Mode == ModeID && d.ID != opts.TargetID {
			continue
		}
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				result.Skipped = append(result.Skipped, Skipped{
					DiagID: d.ID,
					Title:  f.Title,
					Reason: "fix has no edits",
				})
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates orders candidates by file, position, diagnostic ID,
// then insertion order, so repeated runs apply fixes identically.
func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		di, dj := cands[i].diag, cands[j].diag
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Col != dj.Col {
			return di.Col < dj.Col
		}
		if di.ID != dj.ID {
			return di.ID < dj.ID
		}
		return cands[i].order < cands[j].order
	})
}

// applyAll stages each candidate against in-memory file buffers,
// then writes the dirty buffers back (unless DryRun).
func applyAll(cands []candidate, opts Options, result *Result) error {
	buffers := make(map[string][]byte)
	appliedEdits := make(map[string][]diagnostic.TextEdit)
	editCount := make(map[string]int)

	for _, cand := range cands {
		staged, reason := stage(cand, buffers, appliedEdits)
		if reason != "" {
			result.Skipped = append(result.Skipped, Skipped{
				DiagID: cand.diag.ID,
				Title:  cand.fix.Title,
				Reason: reason,
			})
			continue
		}

		total := 0
		for path, s := range staged {
			buffers[path] = s.buf
			appliedEdits[path] = s.applied
			editCount[path] += len(s.edits)
			total += len(s.edits)
		}
		result.Applied = append(result.Applied, Applied{
			DiagID:    cand.diag.ID,
			Title:     cand.fix.Title,
			File:      cand.diag.File,
			Line:      cand.diag.Line,
			EditCount: total,
		})
	}

	if len(result.Applied) == 0 {
		return nil
	}

	paths := make([]string, 0, len(editCount))
	for path := range editCount {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		result.Changed = append(result.Changed, FileChange{
			Path:      path,
			EditCount: editCount[path],
		})
		if opts.DryRun {
			continue
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, buffers[path], mode); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

type stagedFile struct {
	buf     []byte
	edits   []diagnostic.TextEdit
	applied []diagnostic.TextEdit
}

// stage applies one fix's edits to copies of the current buffers.
// It returns a non-empty reason instead of partial results when any
// edit cannot be applied, so a fix lands atomically or not at all.
func stage(cand candidate, buffers map[string][]byte, appliedEdits map[string][]diagnostic.TextEdit) (map[string]stagedFile, string) {
	buckets := make(map[string][]diagnostic.TextEdit)
	for _, e := range cand.fix.Edits {
		buckets[e.File] = append(buckets[e.File], e)
	}

	staged := make(map[string]stagedFile, len(buckets))
	for path, edits := range buckets {
		if conflicts(appliedEdits[path], edits) {
			return nil, fmt.Sprintf("conflicts with previously applied edits in %s", path)
		}

		base := buffers[path]
		if base == nil {
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Sprintf("read %s: %v", path, err)
			}
			base = content
		}
		working := append([]byte(nil), base...)
		applied := append([]diagnostic.TextEdit(nil), appliedEdits[path]...)

		// Apply back to front within the fix so earlier offsets stay
		// valid; offsets relative to the original file are shifted by
		// the deltas of everything already applied before them.
		sorted := append([]diagnostic.TextEdit(nil), edits...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Start == sorted[j].Start {
				return sorted[i].End > sorted[j].End
			}
			return sorted[i].Start > sorted[j].Start
		})

		for _, edit := range sorted {
			start := edit.Start + delta(applied, edit.Start)
			end := edit.End + delta(applied, edit.End)
			if start < 0 || end < start || end > len(working) {
				return nil, "edit span out of range"
			}
			if edit.OldText != "" && string(working[start:end]) != edit.OldText {
				return nil, "file changed since analysis; existing text does not match"
			}
			suffix := append([]byte(nil), working[end:]...)
			working = append(append(working[:start], []byte(edit.NewText)...), suffix...)
			applied = insertSorted(applied, edit)
		}

		staged[path] = stagedFile{buf: working, edits: sorted, applied: applied}
	}
	return staged, ""
}

func conflicts(existing, edits []diagnostic.TextEdit) bool {
	for _, prev := range existing {
		for _, e := range edits {
			if overlap(prev, e) {
				return true
			}
		}
	}
	return false
}

// overlap treats spans as half-open [Start, End). Two insertions at
// the same point do not conflict; an insertion inside a replaced
// span does.
func overlap(a, b diagnostic.TextEdit) bool {
	if a.Start == a.End && b.Start == b.End {
		return false
	}
	if a.Start == a.End {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// delta returns the offset shift at pos produced by the edits
// already applied before it, in original-file coordinates.
func delta(applied []diagnostic.TextEdit, pos int) int {
	d := 0
	for _, e := range applied {
		if e.Start > pos {
			break
		}
		if e.End <= pos {
			d += len(e.NewText) - (e.End - e.Start)
		}
	}
	return d
}

func insertSorted(edits []diagnostic.TextEdit, edit diagnostic.TextEdit) []diagnostic.TextEdit {
	i := sort.Search(len(edits), func(i int) bool {
		if edits[i].Start == edit.Start {
			return edits[i].End >= edit.End
		}
		return edits[i].Start > edit.Start
	})
	edits = append(edits, diagnostic.TextEdit{})
	copy(edits[i+1:], edits[i:])
	edits[i] = edit
	return edits
}
