// Package sources is a test fixture exercising every case-source
// declaration form: registered package sources, provider fields and
// methods, and the provider-as-source form, both well-formed and
// deliberately broken.
package sources

import "github.com/unbound-force/casevet/pkg/casesource"

const primesName = "primes"

const scalarName = "scalar"

const (
	casesName  = "Cases"
	storedName = "Stored"
	hiddenName = "Hidden"
	buildName  = "Build"
)

var primes = []casesource.Case{
	casesource.C("two", 2),
	casesource.C("three", 3),
}

var scalar = 42

func init() {
	casesource.Provide(primesName, primes)
	casesource.Provide(scalarName, scalar)
}

func build(n int) []casesource.Case {
	out := make([]casesource.Case, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, casesource.C("case", i))
	}
	return out
}

// Providers bundles sources of every member kind.
type Providers struct {
	Stored []casesource.Case
}

func (Providers) Cases() []casesource.Case {
	return []casesource.Case{casesource.C("one", 1)}
}

func (*Providers) Hidden() []casesource.Case {
	return []casesource.Case{casesource.C("hidden", 0)}
}

func (Providers) Build(n int) []casesource.Case {
	return build(n)
}

// Primes is iterable itself, usable as a provider-as-source.
type Primes []casesource.Case

// Opaque yields no cases.
type Opaque struct{}

func computedName() string { return primesName }

func declarations() {
	_ = casesource.From(primesName)                               // ok
	_ = casesource.From("missing")                                // source missing
	_ = casesource.From("primes")                                 // literal name
	_ = casesource.From(scalarName)                               // stored source not iterable
	_ = casesource.From(Providers{}, casesName)                     // ok
	_ = casesource.From(Providers{}, storedName)                    // ok
	_ = casesource.From(&Providers{}, hiddenName)                   // ok, pointer provider
	_ = casesource.From(Providers{}, "Hidden")                      // literal name, pointer receiver by-value
	_ = casesource.From(Providers{}, buildName, casesource.Args(8)) // ok
	_ = casesource.From(Providers{}, buildName)                     // argument count mismatch
	_ = casesource.From(Providers{}, storedName, casesource.Args(1)) // args on a stored source
	_ = casesource.From(Primes{})                                 // ok, provider as source
	_ = casesource.From(Opaque{})                                 // provider not iterable
	_ = casesource.From(computedName())                           // unanalyzable, skipped
	_ = casesource.From()                                         // unanalyzable, skipped
}
