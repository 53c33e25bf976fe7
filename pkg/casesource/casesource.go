// Package casesource runs table tests whose cases come from a
// declared source: a registered package-level provider, or a field,
// method, or the value itself of a provider struct.
//
//	casesource.From("primes").Run(t, body)
//	casesource.From(Providers{}, "Cases").Run(t, body)
//	casesource.From(Providers{}, "Build", casesource.Args(8)).Run(t, body)
//	casesource.From(Primes{}).Run(t, body)
//
// The coupling between a From call and its source is a name; the
// casevet tool checks those names statically.
package casesource

import (
	"fmt"
	"iter"
	"reflect"
	"sync"
	"testing"
)

// Case is one test case: a subtest name and the case's arguments.
type Case struct {
	Name string
	Args []any
}

// C builds a Case.
func C(name string, args ...any) Case {
	return Case{Name: name, Args: args}
}

// ExtraArgs carries invocation arguments for function and method
// sources. Built with Args so the argument list stays a single
// positional value in the From call.
type ExtraArgs []any

// Args collects extra invocation arguments for a source function.
func Args(vs ...any) ExtraArgs { return ExtraArgs(vs) }

// registry holds package-level sources registered with Provide.
var registry = struct {
	sync.RWMutex
	m map[string]any
}{m: make(map[string]any)}

// Provide registers a package-level case source under name.
// Conventionally called from init with the declaration itself:
//
//	func init() { casesource.Provide("primes", primes) }
//
// so the registered name matches a declaration casevet can resolve.
func Provide(name string, src any) {
	registry.Lock()
	defer registry.Unlock()
	registry.m[name] = src
}

// lookup fetches a registered source.
func lookup(name string) (any, bool) {
	registry.RLock()
	defer registry.RUnlock()
	src, ok := registry.m[name]
	return src, ok
}

// Source is a declared case source, built by From and consumed by
// Run. Malformed From calls are held as errors and reported when
// the source is run, so a bad declaration fails the test rather
// than panicking at file scope.
type Source struct {
	provider any
	name     string
	hasName  bool
	extra    ExtraArgs
	err      error
}

// From declares where a test's cases come from. The argument list
// is: an optional provider struct value, an optional source name,
// and optional ExtraArgs. With no provider the name refers to a
// source registered with Provide; with a provider and no name the
// provider value itself is iterated.
func From(spec ...any) Source {
	var s Source
	if len(spec) == 0 {
		s.err = fmt.Errorf("casesource: From requires at least one argument")
		return s
	}

	rest := spec
	if _, isName := rest[0].(string); !isName {
		if _, isExtra := rest[0].(ExtraArgs); !isExtra {
			s.provider = rest[0]
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		if name, ok := rest[0].(string); ok {
			s.name = name
			s.hasName = true
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		if extra, ok := rest[0].(ExtraArgs); ok {
			s.extra = extra
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		s.err = fmt.Errorf("casesource: unexpected From argument %v", rest[0])
	}
	if s.provider == nil && !s.hasName {
		s.err = fmt.Errorf("casesource: From requires a provider or a source name")
	}
	return s
}

// Run resolves the source and runs body once per case as a subtest.
func (s Source) Run(t *testing.T, body func(t *testing.T, c Case)) {
	t.Helper()
	if s.err != nil {
		t.Fatal(s.err)
	}

	cases, err := s.resolve()
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			body(t, c)
		})
	}
}

// resolve produces the case list for this source.
func (s Source) resolve() ([]Case, error) {
	if s.provider == nil {
		src, ok := lookup(s.name)
		if !ok {
			return nil, fmt.Errorf("casesource: no source registered as %q", s.name)
		}
		return cases(src, s.extra, s.name)
	}
	if !s.hasName {
		return cases(s.provider, s.extra, reflect.TypeOf(s.provider).String())
	}
	return memberCases(s.provider, s.name, s.extra)
}

// memberCases resolves a named field or method on the provider
// value. Reflection sees the value's method set only, so a
// pointer-receiver source method on a by-value provider is not
// found — the condition casevet's source-not-accessible check
// reports statically.
func memberCases(provider any, name string, extra ExtraArgs) ([]Case, error) {
	v := reflect.ValueOf(provider)

	if m := v.MethodByName(name); m.IsValid() {
		return cases(m.Interface(), extra, name)
	}
	if v.Kind() == reflect.Struct {
		if f := v.FieldByName(name); f.IsValid() {
			return cases(f.Interface(), extra, name)
		}
	}
	return nil, fmt.Errorf("casesource: %v has no accessible field or method %q",
		reflect.TypeOf(provider), name)
}

// cases turns a source value into its case list. Functions are
// invoked with the extra arguments; the result (or the value
// itself) must be a []Case, a [N]Case, or an iter.Seq[Case].
func cases(src any, extra ExtraArgs, name string) ([]Case, error) {
	if fn, ok := src.(func() []Case); ok && len(extra) == 0 {
		return fn(), nil
	}

	v := reflect.ValueOf(src)
	if v.Kind() == reflect.Func && !isSeq(v.Type()) {
		out, err := call(v, extra, name)
		if err != nil {
			return nil, err
		}
		v = out
	}

	switch {
	case v.Kind() == reflect.Slice || v.Kind() == reflect.Array:
		out := make([]Case, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			c, ok := v.Index(i).Interface().(Case)
			if !ok {
				return nil, fmt.Errorf("casesource: %s element %d is %T, not Case",
					name, i, v.Index(i).Interface())
			}
			out = append(out, c)
		}
		return out, nil
	case isSeq(v.Type()):
		seq, ok := v.Interface().(iter.Seq[Case])
		if !ok {
			seq = iter.Seq[Case](v.Convert(reflect.TypeOf(iter.Seq[Case](nil))).
				Interface().(iter.Seq[Case]))
		}
		var out []Case
		for c := range seq {
			out = append(out, c)
		}
		return out, nil
	}
	return nil, fmt.Errorf("casesource: %s has non-iterable type %v", name, v.Type())
}

// call invokes a source function with the declared extra arguments.
func call(fn reflect.Value, extra ExtraArgs, name string) (reflect.Value, error) {
	ft := fn.Type()
	if ft.NumIn() != len(extra) {
		return reflect.Value{}, fmt.Errorf(
			"casesource: %s takes %d argument(s), %d supplied", name, ft.NumIn(), len(extra))
	}
	if ft.NumOut() == 0 {
		return reflect.Value{}, fmt.Errorf("casesource: %s returns nothing", name)
	}
	in := make([]reflect.Value, len(extra))
	for i, a := range extra {
		av := reflect.ValueOf(a)
		if av.IsValid() && av.Type().ConvertibleTo(ft.In(i)) {
			av = av.Convert(ft.In(i))
		}
		in[i] = av
	}
	return fn.Call(in)[0], nil
}

// isSeq reports whether t has the iter.Seq[Case] shape:
// func(yield func(Case) bool).
func isSeq(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	y := t.In(0)
	return y.Kind() == reflect.Func && y.NumIn() == 1 && y.NumOut() == 1 &&
		y.In(0) == reflect.TypeOf(Case{}) && y.Out(0).Kind() == reflect.Bool
}
