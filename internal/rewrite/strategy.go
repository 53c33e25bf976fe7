package rewrite

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/unbound-force/casevet/internal/diagnostic"
)

// Match is a recognized classic verify call: the callee's package
// qualifier as written at the call site, the classic function name,
// and the source text of the generic type argument when the call
// uses the type-argument shape.
type Match struct {
	Call      *ast.CallExpr
	Qualifier string
	Func      string
	TypeArg   string
}

// Strategy builds the constraint-form replacement for one family of
// classic calls. BuildSlots returns the new argument slots, or false
// when the call's shape is not the one the strategy handles (e.g. a
// message argument was appended).
type Strategy struct {
	// Funcs lists the classic function names this strategy handles.
	Funcs []string

	// DiagID is the diagnostic the strategy's fix attaches to.
	DiagID diagnostic.ID

	// Title is the fix title shown to the user.
	Title string

	// BuildSlots constructs the replacement argument list. The
	// relocated actual argument is carried with its original
	// formatting; the constraint expression is synthesized.
	BuildSlots func(m Match, l *List) ([]Slot, bool)
}

// strategies is the static strategy table, one entry per classic
// call pattern. Each produces verify.That(t, actual, constraint).
var strategies = []Strategy{
	{
		Funcs:  []string{"Equal"},
		DiagID: diagnostic.ClassicEqual,
		Title:  "rewrite to verify.That with Equals",
		BuildSlots: func(m Match, l *List) ([]Slot, bool) {
			if l.Len() != 3 {
				return nil, false
			}
			return []Slot{
				l.Carried(0),
				l.Carried(2),
				Synth(fmt.Sprintf("%s.Equals(%s)", m.Qualifier, l.Arg(1))),
			}, true
		},
	},
	{
		Funcs:  []string{"IsType", "IsTypeOf"},
		DiagID: diagnostic.ClassicIsType,
		Title:  "rewrite to verify.That with a type constraint",
		BuildSlots: func(m Match, l *List) ([]Slot, bool) {
			// Two shapes: IsType[T](t, actual) carries the type as
			// a type argument; IsTypeOf(t, expected, actual)
			// carries it as a sample value.
			switch {
			case m.Func == "IsType" && m.TypeArg != "" && l.Len() == 2:
				return []Slot{
					l.Carried(0),
					l.Carried(1),
					Synth(fmt.Sprintf("%s.TypeOf[%s]()", m.Qualifier, m.TypeArg)),
				}, true
			case m.Func == "IsTypeOf" && l.Len() == 3:
				return []Slot{
					l.Carried(0),
					l.Carried(2),
					Synth(fmt.Sprintf("%s.SameTypeAs(%s)", m.Qualifier, l.Arg(1))),
				}, true
			}
			return nil, false
		},
	},
	{
		Funcs:  []string{"Nil", "NotNil"},
		DiagID: diagnostic.ClassicNil,
		Title:  "rewrite to verify.That with IsNil",
		BuildSlots: func(m Match, l *List) ([]Slot, bool) {
			if l.Len() != 2 {
				return nil, false
			}
			constraint := fmt.Sprintf("%s.IsNil()", m.Qualifier)
			if m.Func == "NotNil" {
				constraint = fmt.Sprintf("%s.Not(%s)", m.Qualifier, constraint)
			}
			return []Slot{
				l.Carried(0),
				l.Carried(1),
				Synth(constraint),
			}, true
		},
	},
}

// StrategyFor returns the strategy handling the named classic
// function.
func StrategyFor(funcName string) (Strategy, bool) {
	for _, s := range strategies {
		for _, f := range s.Funcs {
			if f == funcName {
				return s, true
			}
		}
	}
	return Strategy{}, false
}

// BuildFix constructs the suggested fix for a matched classic call:
// one edit swapping the callee for That (dropping any type
// argument), one edit splicing the rebuilt argument list.
func BuildFix(src []byte, fset *token.FileSet, m Match) (diagnostic.Fix, bool) {
	strat, ok := StrategyFor(m.Func)
	if !ok {
		return diagnostic.Fix{}, false
	}

	list, err := Parse(src, fset, m.Call)
	if err != nil {
		return diagnostic.Fix{}, false
	}
	slots, ok := strat.BuildSlots(m, list)
	if !ok {
		return diagnostic.Fix{}, false
	}

	funStart := fset.Position(m.Call.Fun.Pos()).Offset
	funEnd := fset.Position(m.Call.Fun.End()).Offset
	if funStart < 0 || funEnd > len(src) || funStart >= funEnd {
		return diagnostic.Fix{}, false
	}

	return diagnostic.Fix{
		Title: strat.Title,
		Edits: []diagnostic.TextEdit{
			{
				File:    fset.Position(m.Call.Fun.Pos()).Filename,
				Start:   funStart,
				End:     funEnd,
				NewText: m.Qualifier + ".That",
				OldText: string(src[funStart:funEnd]),
			},
			list.Edit(slots),
		},
	}, true
}
