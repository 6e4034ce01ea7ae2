package triples

// Expand returns the three children of t in the ternary tree of primitive
// Pythagorean triples rooted at (5, 4, 3). Starting from Root, repeated
// expansion reaches every primitive triple exactly once.
//
// With a2 = 2a, b2 = 2b, c2 = 2c and c3 = 3c the children are:
//
//	(-a2+b2+c3, -a2+b+c2, -a+b2+c2)
//	( a2-b2+c3,  a2-b+c2,  a-b2+c2)
//	( a2+b2+c3,  a2+b+c2,  a+b2+c2)
//
// The recurrence does not preserve leg order, so each child is normalized
// to keep B > A. Every child's C is strictly greater than t.C.
func Expand(t Triple) [3]Triple {
	a, b, c := t.A, t.B, t.C
	a2, b2, c2 := 2*a, 2*b, 2*c
	c3 := 3 * c

	return [3]Triple{
		normalize(-a2+b2+c3, -a2+b+c2, -a+b2+c2),
		normalize(a2-b2+c3, a2-b+c2, a-b2+c2),
		normalize(a2+b2+c3, a2+b+c2, a+b2+c2),
	}
}

func normalize(c, x, y int64) Triple {
	if x < y {
		return Triple{C: c, B: y, A: x}
	}
	return Triple{C: c, B: x, A: y}
}
