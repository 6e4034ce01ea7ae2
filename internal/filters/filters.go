// Package filters provides named puzzle predicates for the triple generator.
// Each filter is built from a single integer argument and maps an accepted
// triple to a Solution, possibly scaled to a non-primitive multiple that
// satisfies the constraint.
package filters

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/agbru/triplegen/internal/triples"
)

// Solution is the value emitted by a filter for an accepted triple.
type Solution struct {
	// Triple is the primitive triple that was accepted.
	Triple triples.Triple `json:"-"`
	// Scale is the multiplier applied to Triple (1 for the primitive itself).
	Scale int64 `json:"scale"`
	// A, B and C are the scaled legs and hypotenuse.
	A int64 `json:"a"`
	B int64 `json:"b"`
	C int64 `json:"c"`
	// Perimeter is A + B + C.
	Perimeter int64 `json:"perimeter"`
	// Area is A·B/2.
	Area int64 `json:"area"`
}

// NewSolution scales t by k and fills in the derived values. It reports
// false when k is not positive or a scaled value does not fit an int64.
func NewSolution(t triples.Triple, k int64) (Solution, bool) {
	if k <= 0 {
		return Solution{}, false
	}
	// The perimeter exceeds every side, so it alone bounds A, B and C.
	p, ok := mul(k, t.Perimeter())
	if !ok {
		return Solution{}, false
	}
	even, odd := t.A, t.B
	if even%2 != 0 {
		even, odd = odd, even
	}
	area, ok := mul(k*(even/2), k*odd)
	if !ok {
		return Solution{}, false
	}
	return Solution{
		Triple:    t,
		Scale:     k,
		A:         k * t.A,
		B:         k * t.B,
		C:         k * t.C,
		Perimeter: p,
		Area:      area,
	}, true
}

// mul returns x·y for non-negative x and y, or false if it overflows.
func mul(x, y int64) (int64, bool) {
	hi, lo := bits.Mul64(uint64(x), uint64(y))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}

// accept is the predicate result for a triple scaled by k; a solution that
// cannot be represented rejects the triple.
func accept(t triples.Triple, k int64) (bool, Solution) {
	s, ok := NewSolution(t, k)
	return ok, s
}

// Builder turns a filter argument into a predicate.
type Builder func(arg int64) (triples.Predicate[Solution], error)

// All accepts every triple unscaled. The argument is ignored.
func All(int64) (triples.Predicate[Solution], error) {
	return func(t triples.Triple) (bool, Solution) {
		return accept(t, 1)
	}, nil
}

// Perimeter accepts the primitive triple whose perimeter equals arg.
func Perimeter(arg int64) (triples.Predicate[Solution], error) {
	if arg <= 0 {
		return nil, argError("perimeter", arg)
	}
	return func(t triples.Triple) (bool, Solution) {
		if t.Perimeter() != arg {
			return false, Solution{}
		}
		return accept(t, 1)
	}, nil
}

// PerimeterDivides accepts triples whose perimeter divides arg and scales
// them so that the scaled perimeter equals arg exactly. With arg = 1000 it
// yields 200² + 375² = 425². A triple whose scaled area would overflow is
// rejected.
func PerimeterDivides(arg int64) (triples.Predicate[Solution], error) {
	if arg <= 0 {
		return nil, argError("perimeter-divides", arg)
	}
	return func(t triples.Triple) (bool, Solution) {
		p := t.Perimeter()
		if arg%p != 0 {
			return false, Solution{}
		}
		return accept(t, arg/p)
	}, nil
}

// MinHypotenuse accepts triples with C >= arg.
func MinHypotenuse(arg int64) (triples.Predicate[Solution], error) {
	return func(t triples.Triple) (bool, Solution) {
		if t.C < arg {
			return false, Solution{}
		}
		return accept(t, 1)
	}, nil
}

// Leg accepts triples with a leg equal to arg.
func Leg(arg int64) (triples.Predicate[Solution], error) {
	if arg <= 0 {
		return nil, argError("leg", arg)
	}
	return func(t triples.Triple) (bool, Solution) {
		if a, b := t.Legs(); a != arg && b != arg {
			return false, Solution{}
		}
		return accept(t, 1)
	}, nil
}

// AreaMultiple accepts triples whose area is a multiple of arg. The
// remainder is taken on the full 128-bit product so large legs cannot
// overflow it.
func AreaMultiple(arg int64) (triples.Predicate[Solution], error) {
	if arg <= 0 {
		return nil, argError("area-multiple", arg)
	}
	m := uint64(arg)
	return func(t triples.Triple) (bool, Solution) {
		a, b := t.Legs()
		x, y := uint64(a), uint64(b)
		if x%2 == 0 {
			x /= 2
		} else {
			y /= 2
		}
		hi, lo := bits.Mul64(x, y)
		if bits.Rem64(hi, lo, m) != 0 {
			return false, Solution{}
		}
		return accept(t, 1)
	}, nil
}

func argError(name string, arg int64) error {
	return fmt.Errorf("%w: filter %q needs a positive argument, got %d", triples.ErrInvalidPredicate, name, arg)
}
