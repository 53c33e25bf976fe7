// Package rewrite reconstructs call argument lists while preserving
// the original source formatting, and builds the constraint-form
// replacements for deprecated classic verify calls.
package rewrite

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/unbound-force/casevet/internal/diagnostic"
)

// singleLineSep is the separator synthesized for single-line
// argument lists.
const singleLineSep = ", "

// List is the decomposed text of one call's argument list: the
// trivia after the opening parenthesis, each argument's exact source
// text, the separator (comma plus trailing trivia) before each
// argument after the first, and the trivia before the closing
// parenthesis (which may include a trailing comma).
type List struct {
	file  string
	start int // byte offset just past '('
	end   int // byte offset of ')'

	open  string
	args  []string
	seps  []string // len(args)-1; seps[i] precedes args[i+1]
	close string
}

// Parse decomposes call's argument list against the file source it
// was parsed from. The fset must be the one that produced call.
func Parse(src []byte, fset *token.FileSet, call *ast.CallExpr) (*List, error) {
	lparen := fset.Position(call.Lparen)
	rparen := fset.Position(call.Rparen)
	if lparen.Offset < 0 || rparen.Offset > len(src) || lparen.Offset >= rparen.Offset {
		return nil, fmt.Errorf("call span [%d, %d) out of range for %d-byte source",
			lparen.Offset, rparen.Offset, len(src))
	}

	l := &List{
		file:  lparen.Filename,
		start: lparen.Offset + 1,
		end:   rparen.Offset,
	}

	if len(call.Args) == 0 {
		l.open = string(src[l.start:l.end])
		return l, nil
	}

	offs := func(p token.Pos) int { return fset.Position(p).Offset }

	first := call.Args[0]
	l.open = string(src[l.start:offs(first.Pos())])

	for i, arg := range call.Args {
		l.args = append(l.args, string(src[offs(arg.Pos()):offs(arg.End())]))
		if i+1 < len(call.Args) {
			next := call.Args[i+1]
			l.seps = append(l.seps, string(src[offs(arg.End()):offs(next.Pos())]))
		}
	}
	l.close = string(src[offs(call.Args[len(call.Args)-1].End()):l.end])
	return l, nil
}

// Len returns the number of arguments in the original list.
func (l *List) Len() int { return len(l.args) }

// Arg returns the exact source text of the i-th original argument.
func (l *List) Arg(i int) string { return l.args[i] }

// Slot is one position in a rebuilt argument list: either an
// argument carried over from the original list (orig >= 0, keeping
// its source text and, when rebuilt, its original separator) or a
// freshly synthesized one with no formatting history.
type Slot struct {
	text string
	orig int
}

// Carried returns a slot reusing the i-th original argument.
func (l *List) Carried(i int) Slot { return Slot{text: l.args[i], orig: i} }

// Synth returns a slot holding newly built argument text.
func Synth(text string) Slot { return Slot{text: text, orig: -1} }

// Rebuild produces the replacement text for the region between the
// call's parentheses.
//
// When the slot count equals the original argument count the
// original separators are reused verbatim, so rebuilding with
// unchanged slots round-trips to the original text. When the counts
// differ, each carried slot after the first reuses the separator
// that preceded it in the original list; synthesized slots get the
// separator style chosen by synthSep.
//
// Rebuild is a pure function of the List and the slots.
func (l *List) Rebuild(slots []Slot) string {
	if len(slots) == 0 {
		return l.open + l.close
	}

	var sb strings.Builder
	sb.WriteString(l.open)

	if len(slots) == len(l.args) {
		for i, s := range slots {
			if i > 0 {
				sb.WriteString(l.seps[i-1])
			}
			sb.WriteString(s.text)
		}
		sb.WriteString(l.close)
		return sb.String()
	}

	sep := l.synthSep()
	for i, s := range slots {
		if i > 0 {
			if s.orig > 0 && s.orig-1 < len(l.seps) {
				sb.WriteString(l.seps[s.orig-1])
			} else {
				sb.WriteString(sep)
			}
		}
		sb.WriteString(s.text)
	}
	sb.WriteString(l.close)
	return sb.String()
}

// synthSep picks the one separator style used for every synthesized
// slot in a count-changing rebuild: the first newline-bearing trivia
// found scanning the open-delimiter trivia and then each original
// separator in order, or the single-line ", " when the whole list
// sits on one line.
func (l *List) synthSep() string {
	if i := strings.IndexByte(l.open, '\n'); i >= 0 {
		return "," + l.open[i:]
	}
	for _, s := range l.seps {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			return "," + s[i:]
		}
	}
	return singleLineSep
}

// Edit packages a rebuilt argument list as a text edit replacing the
// original region between the parentheses.
func (l *List) Edit(slots []Slot) diagnostic.TextEdit {
	old := l.original()
	return diagnostic.TextEdit{
		File:    l.file,
		Start:   l.start,
		End:     l.end,
		NewText: l.Rebuild(slots),
		OldText: old,
	}
}

// original reassembles the untouched argument list text.
func (l *List) original() string {
	var sb strings.Builder
	sb.WriteString(l.open)
	for i, a := range l.args {
		if i > 0 {
			sb.WriteString(l.seps[i-1])
		}
		sb.WriteString(a)
	}
	sb.WriteString(l.close)
	return sb.String()
}
