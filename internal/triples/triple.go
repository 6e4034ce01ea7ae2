// Package triples enumerates primitive Pythagorean triples in non-decreasing
// order of their hypotenuse. It provides the ternary-tree expansion rule and
// a lazy, pull-based generator built on a min-priority frontier.
package triples

import "fmt"

// Triple is a primitive Pythagorean triple stored hypotenuse first, so that
// the natural ordering (C, then B, then A) ranks triples by hypotenuse.
//
// A valid Triple satisfies A < B < C, A² + B² = C² and gcd(A, B, C) = 1.
// Triples are plain values and carry no identity beyond their contents.
type Triple struct {
	// C is the hypotenuse.
	C int64
	// B is the longer leg.
	B int64
	// A is the shorter leg.
	A int64
}

// Root is the seed of the generating tree, (3, 4, 5) stored as (5, 4, 3).
var Root = Triple{C: 5, B: 4, A: 3}

// Less reports whether t orders before u: by C, then B, then A.
func (t Triple) Less(u Triple) bool {
	if t.C != u.C {
		return t.C < u.C
	}
	if t.B != u.B {
		return t.B < u.B
	}
	return t.A < u.A
}

// Legs returns the two legs in ascending order.
func (t Triple) Legs() (a, b int64) {
	return t.A, t.B
}

// Perimeter returns A + B + C.
func (t Triple) Perimeter() int64 {
	return t.A + t.B + t.C
}

// Area returns A·B/2. One leg of a primitive triple is always even, so the
// halving is exact and is applied before the product.
func (t Triple) Area() int64 {
	if t.A%2 == 0 {
		return (t.A / 2) * t.B
	}
	return t.A * (t.B / 2)
}

// Valid checks the primitive Pythagorean triple invariants.
func (t Triple) Valid() bool {
	if t.A <= 0 || t.A >= t.B || t.B >= t.C {
		return false
	}
	if t.A*t.A+t.B*t.B != t.C*t.C {
		return false
	}
	return gcd(gcd(t.A, t.B), t.C) == 1
}

// String renders the triple hypotenuse first, e.g. "(5, 4, 3)".
func (t Triple) String() string {
	return fmt.Sprintf("(%d, %d, %d)", t.C, t.B, t.A)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
