package triples

import (
	"sort"
	"testing"
)

// bruteForceTriples returns every primitive triple with C <= bound, sorted by
// Triple.Less. It is the oracle the generator is checked against.
func bruteForceTriples(bound int64) []Triple {
	var out []Triple
	for c := int64(1); c <= bound; c++ {
		for a := int64(1); a < c; a++ {
			for b := a + 1; b < c; b++ {
				if a*a+b*b == c*c && gcd(a, b) == 1 {
					out = append(out, Triple{C: c, B: b, A: a})
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// drain pulls every remaining value from g.
func drain[T any](t *testing.T, g *Generator[T]) []T {
	t.Helper()
	var out []T
	for {
		v, ok := g.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// recordingObserver keeps every event it receives.
type recordingObserver struct {
	events []ProgressEvent
}

func (r *recordingObserver) Update(ev ProgressEvent) {
	r.events = append(r.events, ev)
}
