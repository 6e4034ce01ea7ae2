package triples

import (
	"fmt"
	"iter"
)

// Predicate fuses a filter and a map: it reports whether a triple is
// accepted and, if so, the value to emit in its place.
type Predicate[T any] func(Triple) (bool, T)

// Generator lazily enumerates primitive Pythagorean triples with hypotenuse
// at most a fixed bound, in non-decreasing order of hypotenuse.
//
// Each extraction pops the smallest triple from the frontier, pushes those of
// its three children that fit within the bound, and hands the popped triple
// to the predicate. Children only grow along any path of the tree, so a
// child pruned at the bound never has a descendant within it.
//
// Once the frontier is empty the generator is exhausted and stays so; a new
// Generator must be built to iterate again.
//
// Thread Safety:
// Generator is NOT safe for concurrent use. Each goroutine should own its
// generator.
//
// Example:
//
//	gen, err := triples.New(100)
//	if err != nil {
//	    return err
//	}
//	for t := range gen.All() {
//	    fmt.Println(t)
//	}
type Generator[T any] struct {
	bound     int64
	frontier  *frontier
	predicate Predicate[T]
	exhausted bool
	extracted uint64
	index     int
	subject   *ProgressSubject
}

// New creates a generator over every primitive triple with C <= bound.
// Each call to Next performs exactly one extraction.
//
// Parameters:
//   - bound: The largest hypotenuse to enumerate (MinBound..MaxBound).
//   - opts: Optional observers and index.
//
// Returns:
//   - *Generator[Triple]: A generator seeded with Root.
//   - error: ErrInvalidBound if bound is out of range.
func New(bound int64, opts ...Option) (*Generator[Triple], error) {
	return newGenerator(bound, identity, opts)
}

// NewFiltered creates a generator that only emits values accepted by pred.
// Rejected triples are skipped; each Next keeps extracting until pred
// accepts one or the frontier runs out.
//
// Parameters:
//   - bound: The largest hypotenuse to enumerate (MinBound..MaxBound).
//   - pred: The filter+map applied to every extracted triple.
//   - opts: Optional observers and index.
//
// Returns:
//   - *Generator[T]: A generator seeded with Root.
//   - error: ErrInvalidBound or ErrInvalidPredicate.
func NewFiltered[T any](bound int64, pred Predicate[T], opts ...Option) (*Generator[T], error) {
	if pred == nil {
		return nil, fmt.Errorf("%w: predicate is nil", ErrInvalidPredicate)
	}
	return newGenerator(bound, pred, opts)
}

func newGenerator[T any](bound int64, pred Predicate[T], opts []Option) (*Generator[T], error) {
	if bound < MinBound {
		return nil, fmt.Errorf("%w: %d is below the minimum %d", ErrInvalidBound, bound, MinBound)
	}
	if bound > MaxBound {
		return nil, fmt.Errorf("%w: %d exceeds the maximum %d", ErrInvalidBound, bound, MaxBound)
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	g := &Generator[T]{
		bound:     bound,
		frontier:  newFrontier(Root),
		predicate: pred,
		index:     s.index,
	}
	if len(s.observers) > 0 {
		g.subject = NewProgressSubject()
		for _, o := range s.observers {
			g.subject.Register(o)
		}
	}
	return g, nil
}

func identity(t Triple) (bool, Triple) { return true, t }

// Next returns the next accepted value. The boolean is false once the
// generator is exhausted, and stays false on every later call.
func (g *Generator[T]) Next() (T, bool) {
	for {
		t, ok := g.popAndExpand()
		if !ok {
			var zero T
			return zero, false
		}
		if accept, v := g.predicate(t); accept {
			return v, true
		}
	}
}

// All returns a single-use iterator over the remaining values. Breaking out
// of the range loop leaves the generator where it stopped.
func (g *Generator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := g.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// popAndExpand removes the smallest triple from the frontier, re-inserts its
// in-bound children and returns it.
func (g *Generator[T]) popAndExpand() (Triple, bool) {
	if g.exhausted {
		return Triple{}, false
	}
	if g.frontier.Len() == 0 {
		g.exhausted = true
		g.notify(ProgressEvent{Index: g.index, Progress: 1.0, Extracted: g.extracted, Exhausted: true})
		return Triple{}, false
	}

	t := g.frontier.pop()
	for _, child := range Expand(t) {
		if child.C <= g.bound {
			g.frontier.push(child)
		}
	}
	g.extracted++

	g.notify(ProgressEvent{
		Index:     g.index,
		Triple:    t,
		Progress:  float64(t.C) / float64(g.bound),
		Frontier:  g.frontier.Len(),
		Extracted: g.extracted,
	})
	return t, true
}

func (g *Generator[T]) notify(ev ProgressEvent) {
	if g.subject != nil {
		g.subject.Notify(ev)
	}
}

// Bound returns the configured hypotenuse bound.
func (g *Generator[T]) Bound() int64 { return g.bound }

// Exhausted reports whether the generator has signalled the end of its
// sequence. A generator whose frontier just emptied is not exhausted until
// the next extraction attempt observes it.
func (g *Generator[T]) Exhausted() bool { return g.exhausted }

// FrontierLen returns the number of triples awaiting extraction.
func (g *Generator[T]) FrontierLen() int { return g.frontier.Len() }

// Extracted returns how many triples have been popped so far, accepted or not.
func (g *Generator[T]) Extracted() uint64 { return g.extracted }
