// Package classiccalls is a test fixture containing deprecated
// classic verify calls in every rewritable shape.
package classiccalls

// Widget is a sample value for type assertions.
type Widget struct {
	Size int
}

// Make builds a widget.
func Make(size int) *Widget {
	return &Widget{Size: size}
}

// Add returns the sum of two integers.
func Add(a, b int) int {
	return a + b
}
