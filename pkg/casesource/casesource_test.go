package casesource_test

import (
	"iter"
	"strings"
	"testing"

	"github.com/unbound-force/casevet/pkg/casesource"
)

const registeredName = "registered-pairs"

var pairs = []casesource.Case{
	casesource.C("one", 1, "one"),
	casesource.C("two", 2, "two"),
}

func init() {
	casesource.Provide(registeredName, pairs)
}

func TestRun_RegisteredSource(t *testing.T) {
	var seen []string
	casesource.From(registeredName).Run(t, func(t *testing.T, c casesource.Case) {
		seen = append(seen, c.Name)
		if len(c.Args) != 2 {
			t.Errorf("case %q has %d args, want 2", c.Name, len(c.Args))
		}
	})
	if got := strings.Join(seen, ","); got != "one,two" {
		t.Errorf("ran cases %q, want one,two", got)
	}
}

type providers struct {
	Stored []casesource.Case
}

func (providers) Fixed() []casesource.Case {
	return []casesource.Case{casesource.C("fixed", 42)}
}

func (providers) Build(n int) []casesource.Case {
	out := make([]casesource.Case, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, casesource.C("built", i))
	}
	return out
}

func (*providers) PtrOnly() []casesource.Case {
	return []casesource.Case{casesource.C("ptr", 0)}
}

func TestRun_ProviderField(t *testing.T) {
	p := providers{Stored: []casesource.Case{casesource.C("stored", 7)}}
	ran := 0
	casesource.From(p, "Stored").Run(t, func(t *testing.T, c casesource.Case) {
		ran++
		if c.Args[0] != 7 {
			t.Errorf("arg = %v, want 7", c.Args[0])
		}
	})
	if ran != 1 {
		t.Errorf("ran %d cases, want 1", ran)
	}
}

func TestRun_ProviderMethod(t *testing.T) {
	ran := 0
	casesource.From(providers{}, "Fixed").Run(t, func(t *testing.T, c casesource.Case) {
		ran++
	})
	if ran != 1 {
		t.Errorf("ran %d cases, want 1", ran)
	}
}

func TestRun_MethodWithArgs(t *testing.T) {
	ran := 0
	casesource.From(providers{}, "Build", casesource.Args(3)).
		Run(t, func(t *testing.T, c casesource.Case) { ran++ })
	if ran != 3 {
		t.Errorf("ran %d cases, want 3", ran)
	}
}

func TestRun_PointerProviderSeesPtrMethods(t *testing.T) {
	ran := 0
	casesource.From(&providers{}, "PtrOnly").
		Run(t, func(t *testing.T, c casesource.Case) { ran++ })
	if ran != 1 {
		t.Errorf("ran %d cases, want 1", ran)
	}
}

// pairSeq is an iterator source.
func pairSeq() iter.Seq[casesource.Case] {
	return func(yield func(casesource.Case) bool) {
		for _, c := range pairs {
			if !yield(c) {
				return
			}
		}
	}
}

func TestRun_SeqSource(t *testing.T) {
	casesource.Provide("pair-seq", pairSeq())
	ran := 0
	casesource.From("pair-seq").Run(t, func(t *testing.T, c casesource.Case) { ran++ })
	if ran != len(pairs) {
		t.Errorf("ran %d cases, want %d", ran, len(pairs))
	}
}

func TestRun_ProviderAsSource(t *testing.T) {
	type primes []casesource.Case
	src := primes{casesource.C("two", 2), casesource.C("three", 3)}
	ran := 0
	casesource.From(src).Run(t, func(t *testing.T, c casesource.Case) { ran++ })
	if ran != 2 {
		t.Errorf("ran %d cases, want 2", ran)
	}
}

func TestResolve_MissingRegisteredSource(t *testing.T) {
	_, err := casesource.ResolveCases(casesource.From("never-registered"))
	if err == nil || !strings.Contains(err.Error(), "never-registered") {
		t.Errorf("expected a lookup error naming the source, got %v", err)
	}
}

func TestResolve_PtrMethodInvisibleByValue(t *testing.T) {
	// The value method set does not include pointer-receiver
	// methods, so resolution fails the same way the static
	// source-not-accessible check predicts.
	_, err := casesource.ResolveCases(casesource.From(providers{}, "PtrOnly"))
	if err == nil || !strings.Contains(err.Error(), "PtrOnly") {
		t.Errorf("expected an accessibility error, got %v", err)
	}
}

func TestResolve_ArgCountMismatch(t *testing.T) {
	_, err := casesource.ResolveCases(casesource.From(providers{}, "Build"))
	if err == nil || !strings.Contains(err.Error(), "argument") {
		t.Errorf("expected an argument-count error, got %v", err)
	}
}

func TestResolve_MalformedFrom(t *testing.T) {
	_, err := casesource.ResolveCases(casesource.From())
	if err == nil {
		t.Error("expected an error for an empty From call")
	}
}
