// Package verify is a small constraint-style assertion library.
//
// The preferred form is a single That call with a constraint:
//
//	verify.That(t, got, verify.Equals(want))
//	verify.That(t, err, verify.IsNil())
//	verify.That(t, v, verify.TypeOf[*Config]())
//
// The classic two-value helpers (Equal, IsType, IsTypeOf, Nil,
// NotNil) remain for compatibility; casevet reports their call sites
// and offers the constraint-form rewrite.
package verify

import (
	"fmt"
	"reflect"
)

// TestingT is the subset of *testing.T That reports through.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
}

// Constraint checks an actual value. Describe renders the
// expectation for failure messages.
type Constraint interface {
	Check(actual any) bool
	Describe() string
}

// That asserts that actual satisfies c, reporting a test error when
// it does not. It returns whether the constraint held.
func That(t TestingT, actual any, c Constraint) bool {
	t.Helper()
	if c.Check(actual) {
		return true
	}
	t.Errorf("verify: got %v, want %s", actual, c.Describe())
	return false
}

type equalsConstraint struct{ expected any }

func (c equalsConstraint) Check(actual any) bool {
	return reflect.DeepEqual(actual, c.expected)
}

func (c equalsConstraint) Describe() string {
	return fmt.Sprintf("equal to %v", c.expected)
}

// Equals matches values deeply equal to expected.
func Equals(expected any) Constraint {
	return equalsConstraint{expected: expected}
}

type typeConstraint struct{ want reflect.Type }

func (c typeConstraint) Check(actual any) bool {
	return actual != nil && reflect.TypeOf(actual) == c.want
}

func (c typeConstraint) Describe() string {
	return fmt.Sprintf("of type %v", c.want)
}

// TypeOf matches values whose dynamic type is exactly T.
func TypeOf[T any]() Constraint {
	return typeConstraint{want: reflect.TypeOf((*T)(nil)).Elem()}
}

// SameTypeAs matches values sharing sample's dynamic type.
func SameTypeAs(sample any) Constraint {
	return typeConstraint{want: reflect.TypeOf(sample)}
}

type nilConstraint struct{}

func (nilConstraint) Check(actual any) bool {
	if actual == nil {
		return true
	}
	v := reflect.ValueOf(actual)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	}
	return false
}

func (nilConstraint) Describe() string { return "nil" }

// IsNil matches nil values, including typed nil pointers, slices,
// maps, channels, and functions.
func IsNil() Constraint { return nilConstraint{} }

type notConstraint struct{ inner Constraint }

func (c notConstraint) Check(actual any) bool { return !c.inner.Check(actual) }

func (c notConstraint) Describe() string {
	return "not " + c.inner.Describe()
}

// Not inverts a constraint.
func Not(c Constraint) Constraint { return notConstraint{inner: c} }

// Equal asserts deep equality of expected and actual.
//
// Deprecated: use That with Equals.
func Equal(t TestingT, expected, actual any) bool {
	t.Helper()
	return That(t, actual, Equals(expected))
}

// IsType asserts that actual's dynamic type is exactly T.
//
// Deprecated: use That with TypeOf.
func IsType[T any](t TestingT, actual any) bool {
	t.Helper()
	return That(t, actual, TypeOf[T]())
}

// IsTypeOf asserts that actual shares expected's dynamic type.
//
// Deprecated: use That with SameTypeAs.
func IsTypeOf(t TestingT, expected, actual any) bool {
	t.Helper()
	return That(t, actual, SameTypeAs(expected))
}

// Nil asserts that actual is nil.
//
// Deprecated: use That with IsNil.
func Nil(t TestingT, actual any) bool {
	t.Helper()
	return That(t, actual, IsNil())
}

// NotNil asserts that actual is not nil.
//
// Deprecated: use That with Not(IsNil()).
func NotNil(t TestingT, actual any) bool {
	t.Helper()
	return That(t, actual, Not(IsNil()))
}
