package classiccalls

import (
	"testing"

	"github.com/unbound-force/casevet/pkg/verify"
)

func TestClassicShapes(t *testing.T) {
	w := Make(3)

	verify.Equal(t, 4, Add(2, 2))
	verify.IsType[*Widget](t, w)
	verify.IsTypeOf(t, &Widget{}, w)
	verify.Nil(t, error(nil))
	verify.NotNil(t, w)
}

func TestConstraintForm(t *testing.T) {
	verify.That(t, Add(1, 2), verify.Equals(3))
}

func TestMultilineClassic(t *testing.T) {
	verify.Equal(
		t,
		4,
		Add(2, 2),
	)
}
