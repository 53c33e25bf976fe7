package verify_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/unbound-force/casevet/pkg/verify"
)

// recorder captures failures instead of failing the real test.
type recorder struct {
	failures []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestThat_Pass(t *testing.T) {
	var r recorder
	if !verify.That(&r, 4, verify.Equals(4)) {
		t.Error("That returned false for a satisfied constraint")
	}
	if len(r.failures) != 0 {
		t.Errorf("unexpected failures: %v", r.failures)
	}
}

func TestThat_FailureMessage(t *testing.T) {
	var r recorder
	if verify.That(&r, 4, verify.Equals(5)) {
		t.Error("That returned true for an unsatisfied constraint")
	}
	if len(r.failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(r.failures))
	}
	if !strings.Contains(r.failures[0], "equal to 5") {
		t.Errorf("failure should describe the constraint, got %q", r.failures[0])
	}
}

func TestEquals_DeepEquality(t *testing.T) {
	var r recorder
	if !verify.That(&r, []int{1, 2}, verify.Equals([]int{1, 2})) {
		t.Error("Equals should compare slices deeply")
	}
}

func TestTypeOf(t *testing.T) {
	var r recorder
	type widget struct{}

	if !verify.That(&r, &widget{}, verify.TypeOf[*widget]()) {
		t.Error("TypeOf[*widget] should match *widget")
	}
	if verify.That(&r, widget{}, verify.TypeOf[*widget]()) {
		t.Error("TypeOf[*widget] should not match widget value")
	}
}

func TestSameTypeAs(t *testing.T) {
	var r recorder
	if !verify.That(&r, 3, verify.SameTypeAs(7)) {
		t.Error("SameTypeAs(int) should match int")
	}
	if verify.That(&r, int64(3), verify.SameTypeAs(7)) {
		t.Error("SameTypeAs(int) should not match int64")
	}
}

func TestIsNil_TypedNil(t *testing.T) {
	var r recorder
	var p *int
	var m map[string]int
	var fn func()

	for _, v := range []any{nil, p, m, fn} {
		if !verify.That(&r, v, verify.IsNil()) {
			t.Errorf("IsNil should match %T(%v)", v, v)
		}
	}
	if verify.That(&r, 0, verify.IsNil()) {
		t.Error("IsNil should not match a zero int")
	}
}

func TestNot(t *testing.T) {
	var r recorder
	if !verify.That(&r, 1, verify.Not(verify.IsNil())) {
		t.Error("Not(IsNil) should match a non-nil value")
	}
	c := verify.Not(verify.Equals(3))
	if !strings.Contains(c.Describe(), "not ") {
		t.Errorf("Describe = %q, want a negated description", c.Describe())
	}
}

func TestClassicHelpersDelegate(t *testing.T) {
	var r recorder

	verify.Equal(&r, 4, 4)
	verify.IsType[int](&r, 1)
	verify.IsTypeOf(&r, "a", "b")
	verify.Nil(&r, nil)
	verify.NotNil(&r, 1)
	if len(r.failures) != 0 {
		t.Errorf("unexpected failures: %v", r.failures)
	}

	verify.Equal(&r, 4, 5)
	if len(r.failures) != 1 {
		t.Errorf("classic Equal should report through That, failures = %d", len(r.failures))
	}
}
